package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
)

// stubDriver replays scripted answers and records informational output.
type stubDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	infos     []string
	textareas int
	err       error
}

func (d *stubDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if len(d.inputs) == 0 {
		return "", errors.New("stub: no scripted input")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

func (d *stubDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if len(d.confirms) == 0 {
		return cfg.Default, nil
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(d.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *stubDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	d.textareas++
	return d.Input(ctx, InputConfig{Message: cfg.Message, Default: cfg.Default})
}

func (d *stubDriver) Info(ctx context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newSessionForm(t *testing.T) (*form.Form[map[string]any], *control.StringControl, *control.IntegerControl, *control.BooleanControl) {
	t.Helper()
	f := form.NewMap()
	title := control.NewString()
	title.SetRequired(true)
	rating := control.NewInteger()
	published := control.NewBoolean()
	if err := f.Bind("title", title); err != nil {
		t.Fatalf("Bind title: %v", err)
	}
	if err := f.Bind("rating", rating); err != nil {
		t.Fatalf("Bind rating: %v", err)
	}
	if err := f.Bind("published", published); err != nil {
		t.Fatalf("Bind published: %v", err)
	}
	return f, title, rating, published
}

func TestSessionCollectsValues(t *testing.T) {
	f, title, rating, published := newSessionForm(t)
	driver := &stubDriver{
		inputs:   []string{"Effective Forms", "4"},
		confirms: []bool{true},
	}

	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := title.Text(); got != "Effective Forms" {
		t.Fatalf("title = %q, want %q", got, "Effective Forms")
	}
	if got, ok := rating.Int(); !ok || got != 4 {
		t.Fatalf("rating = (%d, %v), want (4, true)", got, ok)
	}
	if !published.Checked() {
		t.Fatal("published should be true")
	}
}

func TestSessionRepromptsUntilValid(t *testing.T) {
	f, title, _, _ := newSessionForm(t)
	driver := &stubDriver{
		// First round leaves the required title empty; the correction round
		// fills it in. Rating answers are consumed by each prompting pass.
		inputs:   []string{"", "4", "Late Title"},
		confirms: []bool{false},
	}

	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := title.Text(); got != "Late Title" {
		t.Fatalf("title = %q, want %q", got, "Late Title")
	}
	if len(driver.infos) == 0 {
		t.Fatal("expected a validation message to be reported before reprompting")
	}
}

func TestSessionAttemptsExceeded(t *testing.T) {
	f, _, _, _ := newSessionForm(t)
	driver := &stubDriver{
		inputs:   []string{"", "4", "", ""},
		confirms: []bool{false},
	}

	s, err := NewSession(f, WithPromptDriver(driver), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrAttemptsExceeded) {
		t.Fatalf("Run error = %v, want ErrAttemptsExceeded", err)
	}
}

func TestSessionSkipsHiddenControls(t *testing.T) {
	f := form.NewMap()
	title := control.NewString()
	notes := control.NewString()
	notes.SetVisible(false)
	if err := f.Bind("title", title); err != nil {
		t.Fatalf("Bind title: %v", err)
	}
	if err := f.Bind("notes", notes); err != nil {
		t.Fatalf("Bind notes: %v", err)
	}

	driver := &stubDriver{inputs: []string{"Only Title"}}
	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if notes.Value() != nil {
		t.Fatal("hidden control should not have been prompted")
	}
}

func TestSessionTriState(t *testing.T) {
	f := form.NewMap()
	reviewed := control.NewTriState()
	if err := f.Bind("reviewed", reviewed); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	driver := &stubDriver{selects: []int{2}}
	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	state := reviewed.State()
	if state == nil || *state != false {
		t.Fatalf("reviewed state = %v, want explicit false", state)
	}
}

func TestSessionMultilinePrompt(t *testing.T) {
	f := form.NewMap()
	body := control.NewString()
	if err := f.Bind("body", body); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	driver := &stubDriver{inputs: []string{"line one\nline two"}}
	s, err := NewSession(f, WithPromptDriver(driver), WithMultiline("body"))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if driver.textareas != 1 {
		t.Fatalf("textarea prompts = %d, want 1", driver.textareas)
	}
	if got := body.Text(); got != "line one\nline two" {
		t.Fatalf("body = %q", got)
	}
}

func TestSessionRequiresForm(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrFormRequired) {
		t.Fatalf("NewSession(nil) error = %v, want ErrFormRequired", err)
	}
}

func TestSessionDriverErrorStopsRun(t *testing.T) {
	f, _, _, _ := newSessionForm(t)
	driver := &stubDriver{err: ErrAborted}

	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("Run error = %v, want ErrAborted", err)
	}
}

func TestSessionFileListPrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.txt")
	if err := os.WriteFile(path, []byte("cover image"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	f := form.NewMap()
	attachments := control.NewFileList()
	if err := f.Bind("attachments", attachments); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	driver := &stubDriver{inputs: []string{path}}
	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	files := attachments.Files()
	if len(files) != 1 {
		t.Fatalf("files = %d, want 1", len(files))
	}
	if files[0].Name != "cover.txt" {
		t.Fatalf("file name = %q, want %q", files[0].Name, "cover.txt")
	}
	if files[0].Size != int64(len("cover image")) {
		t.Fatalf("file size = %d, want %d", files[0].Size, len("cover image"))
	}
	want := base64.StdEncoding.EncodeToString([]byte("cover image"))
	if files[0].Content != want {
		t.Fatalf("file content = %q, want %q", files[0].Content, want)
	}
}

func TestSessionFileListSkipsUnreadablePath(t *testing.T) {
	f := form.NewMap()
	attachments := control.NewFileList()
	if err := f.Bind("attachments", attachments); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	driver := &stubDriver{inputs: []string{filepath.Join(t.TempDir(), "missing.txt")}}
	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if attachments.Value() != nil {
		t.Fatal("unreadable paths should leave the control empty")
	}
	if len(driver.infos) == 0 {
		t.Fatal("unreadable paths should be reported through the driver")
	}
}

func TestSessionNativeForm(t *testing.T) {
	f, title, _, _ := newSessionForm(t)
	driver := &stubDriver{}

	s, err := NewSession(f, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}
	native := s.Native()

	if native.CheckValidity() {
		t.Fatal("CheckValidity should fail while the required title is empty")
	}
	if native.ReportValidity() {
		t.Fatal("ReportValidity should fail while the required title is empty")
	}
	if len(driver.infos) == 0 {
		t.Fatal("ReportValidity should print the failing messages")
	}

	title.SetText("Effective Forms")
	if !native.ReportValidity() {
		t.Fatal("ReportValidity should pass once the title is set")
	}
	if !native.Submit() {
		t.Fatal("Submit should pass for a valid form")
	}
	if got := driver.infos[len(driver.infos)-1]; !strings.Contains(got, "Effective Forms") {
		t.Fatalf("Submit output = %q, want serialized data", got)
	}

	native.Reset()
	if title.Value() != nil {
		t.Fatal("Reset should clear bound controls")
	}
}

func TestLabelFromKey(t *testing.T) {
	cases := map[string]string{
		"title":        "Title",
		"release_date": "Release Date",
		"author-name":  "Author Name",
	}
	for key, want := range cases {
		if got := labelFromKey(key); got != want {
			t.Fatalf("labelFromKey(%q) = %q, want %q", key, got, want)
		}
	}
}
