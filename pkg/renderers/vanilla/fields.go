package vanilla

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
)

// fieldView is the template-facing shape of one bound control.
type fieldView struct {
	Key       string       `json:"key"`
	ControlID string       `json:"control_id"`
	Label     string       `json:"label"`
	Help      string       `json:"help,omitempty"`
	Kind      string       `json:"kind"`
	InputType string       `json:"input_type"`
	Value     string       `json:"value"`
	Checked   bool         `json:"checked"`
	Required  bool         `json:"required"`
	Hidden    bool         `json:"hidden"`
	Message   string       `json:"message,omitempty"`
	Failed    bool         `json:"failed"`
	Options   []optionView `json:"options,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

func buildFieldView(key string, ctrl control.Control, fv form.FieldValidation, labels, help map[string]string) fieldView {
	view := fieldView{
		Key:       key,
		ControlID: controlID(key),
		Label:     sanitizeMarkup(labels[key]),
		Help:      sanitizeMarkup(help[key]),
		Kind:      string(ctrl.Kind()),
		InputType: inputType(ctrl.Kind()),
		Required:  ctrl.Required(),
		Hidden:    !ctrl.Visible(),
		Message:   ctrl.CustomValidity(),
		Failed:    fv.Failed(),
	}
	if view.Label == "" {
		view.Label = labelFromKey(key)
	}

	switch ctrl.Kind() {
	case control.KindBoolean:
		checked, _ := ctrl.Value().(bool)
		view.Checked = checked
	case control.KindTriState:
		view.Options = triStateOptions(ctrl.Value())
	default:
		view.Value = formatValue(ctrl.Kind(), ctrl.Value())
	}
	return view
}

func inputType(kind control.Kind) string {
	switch kind {
	case control.KindBoolean:
		return "checkbox"
	case control.KindInteger, control.KindNumber:
		return "number"
	case control.KindDate:
		return "date"
	case control.KindDateTime:
		return "datetime-local"
	case control.KindTime:
		return "time"
	case control.KindFileList:
		return "file"
	default:
		return "text"
	}
}

func formatValue(kind control.Kind, value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case time.Time:
		switch kind {
		case control.KindDate:
			return v.Format("2006-01-02")
		case control.KindTime:
			return v.Format("15:04:05")
		default:
			return v.Format("2006-01-02T15:04")
		}
	case []control.File:
		names := make([]string, 0, len(v))
		for _, file := range v {
			names = append(names, file.Name)
		}
		return strings.Join(names, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func triStateOptions(value any) []optionView {
	state, set := value.(bool)
	return []optionView{
		{Value: "", Label: "(unset)", Selected: !set},
		{Value: "true", Label: "yes", Selected: set && state},
		{Value: "false", Label: "no", Selected: set && !state},
	}
}

func controlID(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}

func labelFromKey(key string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(key)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
