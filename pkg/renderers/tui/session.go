package tui

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
)

// Form is the slice of the form engine a session drives. Any *form.Form[T]
// satisfies it.
type Form interface {
	Keys() []string
	Control(key string) (control.Control, bool)
	Validate(options ...form.ValidateOption) bool
	DataJSON() ([]byte, error)
}

// Session collects values for a bound form over terminal prompts and loops
// validation until the form passes or the correction budget runs out.
type Session struct {
	form        Form
	driver      PromptDriver
	labels      map[string]string
	help        map[string]string
	multiline   map[string]bool
	maxAttempts int
}

// NewSession builds a session with the survey driver and three correction
// rounds by default.
func NewSession(f Form, options ...Option) (*Session, error) {
	if f == nil {
		return nil, ErrFormRequired
	}

	s := &Session{
		form:        f,
		driver:      newSurveyDriver(),
		maxAttempts: 3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Run prompts every visible field once, validates, and re-prompts failing
// fields until the form is valid. Returns ErrAttemptsExceeded when the form
// is still invalid after the configured correction rounds.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, key := range s.form.Keys() {
		ctrl, ok := s.form.Control(key)
		if !ok || !ctrl.Visible() {
			continue
		}
		if err := s.promptControl(ctx, key, ctrl); err != nil {
			return err
		}
	}

	if s.form.Validate() {
		return nil
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := s.reportFailures(ctx); err != nil {
			return err
		}
		for _, key := range s.form.Keys() {
			ctrl, ok := s.form.Control(key)
			if !ok || !ctrl.Visible() || ctrl.CustomValidity() == "" {
				continue
			}
			if err := s.promptControl(ctx, key, ctrl); err != nil {
				return err
			}
		}
		if s.form.Validate() {
			return nil
		}
	}
	return ErrAttemptsExceeded
}

// Validate writes the current control values through the validation pipeline
// without prompting.
func (s *Session) Validate() bool {
	return s.form.Validate()
}

// Native adapts the session into the platform-form contract so a terminal
// form can be attached where a widget would be: ReportValidity prints the
// failing messages through the driver, Submit validates and prints the
// serialized data.
func (s *Session) Native() control.NativeForm {
	return nativeSession{s: s}
}

type nativeSession struct {
	s *Session
}

func (n nativeSession) Submit() bool {
	if !n.s.form.Validate() {
		return false
	}
	payload, err := n.s.form.DataJSON()
	if err != nil {
		return false
	}
	return n.s.driver.Info(context.Background(), string(payload)) == nil
}

func (n nativeSession) Reset() {
	for _, key := range n.s.form.Keys() {
		if ctrl, ok := n.s.form.Control(key); ok {
			ctrl.Clear()
		}
	}
}

func (n nativeSession) CheckValidity() bool {
	return n.s.form.Validate(form.WithoutStateUpdate())
}

func (n nativeSession) ReportValidity() bool {
	if n.s.form.Validate() {
		return true
	}
	_ = n.s.reportFailures(context.Background())
	return false
}

func (n nativeSession) Focus() {}

func (s *Session) reportFailures(ctx context.Context) error {
	for _, key := range s.form.Keys() {
		ctrl, ok := s.form.Control(key)
		if !ok || !ctrl.Visible() {
			continue
		}
		if msg := ctrl.CustomValidity(); msg != "" {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", s.label(key), msg)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) promptControl(ctx context.Context, key string, ctrl control.Control) error {
	switch ctrl.Kind() {
	case control.KindBoolean:
		return s.promptBoolean(ctx, key, ctrl)
	case control.KindTriState:
		return s.promptTriState(ctx, key, ctrl)
	case control.KindInteger:
		return s.promptNumeric(ctx, key, ctrl, true)
	case control.KindNumber:
		return s.promptNumeric(ctx, key, ctrl, false)
	case control.KindDate, control.KindDateTime, control.KindTime:
		return s.promptTemporal(ctx, key, ctrl)
	case control.KindFileList:
		return s.promptFileList(ctx, key, ctrl)
	default:
		return s.promptString(ctx, key, ctrl)
	}
}

func (s *Session) promptString(ctx context.Context, key string, ctrl control.Control) error {
	current := ""
	if v := ctrl.Value(); v != nil {
		current = fmt.Sprint(v)
	}
	var (
		out string
		err error
	)
	if s.multiline[key] {
		out, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: s.label(key),
			Default: current,
			Help:    s.helpFor(key),
		})
	} else {
		out, err = s.driver.Input(ctx, InputConfig{
			Message: s.label(key),
			Default: current,
			Help:    s.helpFor(key),
		})
	}
	if err != nil {
		return err
	}
	return ctrl.SetValue(out)
}

func (s *Session) promptBoolean(ctx context.Context, key string, ctrl control.Control) error {
	current := false
	if v, ok := ctrl.Value().(bool); ok {
		current = v
	}
	out, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.label(key),
		Default: current,
		Help:    s.helpFor(key),
	})
	if err != nil {
		return err
	}
	return ctrl.SetValue(out)
}

func (s *Session) promptTriState(ctx context.Context, key string, ctrl control.Control) error {
	options := []string{"(unset)", "yes", "no"}
	defaultIdx := 0
	if v, ok := ctrl.Value().(bool); ok {
		if v {
			defaultIdx = 1
		} else {
			defaultIdx = 2
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.label(key),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         s.helpFor(key),
	})
	if err != nil {
		return err
	}
	switch idx {
	case 1:
		return ctrl.SetValue(true)
	case 2:
		return ctrl.SetValue(false)
	default:
		ctrl.Clear()
		return nil
	}
}

func (s *Session) promptNumeric(ctx context.Context, key string, ctrl control.Control, integer bool) error {
	current := ""
	if v := ctrl.Value(); v != nil {
		current = fmt.Sprint(v)
	}
	validator := func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			return nil
		}
		var err error
		if integer {
			_, err = strconv.Atoi(input)
		} else {
			_, err = strconv.ParseFloat(input, 64)
		}
		return err
	}
	out, err := s.driver.Input(ctx, InputConfig{
		Message:   s.label(key),
		Default:   current,
		Help:      s.helpFor(key),
		Validator: validator,
	})
	if err != nil {
		return err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		ctrl.Clear()
		return nil
	}
	return ctrl.SetValue(out)
}

func (s *Session) promptTemporal(ctx context.Context, key string, ctrl control.Control) error {
	help := s.helpFor(key)
	if help == "" {
		help = temporalHelp(ctrl.Kind())
	}
	current := ""
	if v := ctrl.Value(); v != nil {
		current = fmt.Sprint(v)
	}

	for {
		out, err := s.driver.Input(ctx, InputConfig{
			Message: s.label(key),
			Default: current,
			Help:    help,
		})
		if err != nil {
			return err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			ctrl.Clear()
			return nil
		}
		if err := ctrl.SetValue(out); err != nil {
			if infoErr := s.driver.Info(ctx, fmt.Sprintf("%s: %v", s.label(key), err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		return nil
	}
}

func (s *Session) promptFileList(ctx context.Context, key string, ctrl control.Control) error {
	out, err := s.driver.Input(ctx, InputConfig{
		Message: s.label(key),
		Help:    "Comma-separated file paths; leave empty to skip",
	})
	if err != nil {
		return err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		ctrl.Clear()
		return nil
	}

	var files []control.File
	for _, path := range strings.Split(out, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			if infoErr := s.driver.Info(ctx, fmt.Sprintf("%s: %v", s.label(key), err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		files = append(files, control.File{
			Name:    filepath.Base(path),
			Size:    int64(len(content)),
			Type:    mime.TypeByExtension(filepath.Ext(path)),
			Content: base64.StdEncoding.EncodeToString(content),
		})
	}
	return ctrl.SetValue(files)
}

func (s *Session) label(key string) string {
	if label, ok := s.labels[key]; ok && label != "" {
		return label
	}
	return labelFromKey(key)
}

func (s *Session) helpFor(key string) string {
	return s.help[key]
}

func temporalHelp(kind control.Kind) string {
	switch kind {
	case control.KindDate:
		return "Format: 2006-01-02"
	case control.KindTime:
		return "Format: 15:04:05"
	default:
		return "Format: 2006-01-02T15:04:05Z07:00"
	}
}

func labelFromKey(key string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(key)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
