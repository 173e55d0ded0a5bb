package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fb-form"
	ClassField   ChromeClass = "fb-field"
	ClassLabel   ChromeClass = "fb-label"
	ClassHelp    ChromeClass = "fb-help"
	ClassMessage ChromeClass = "fb-message"
	ClassErrors  ChromeClass = "fb-errors"
	ClassSuccess ChromeClass = "fb-success"
	ClassInvalid ChromeClass = "fb-field-invalid"
)

// ChromeClasses carries the class overrides a caller can apply per render.
// Empty fields fall back to the defaults above.
type ChromeClasses struct {
	Form    string `json:"form"`
	Field   string `json:"field"`
	Label   string `json:"label"`
	Help    string `json:"help"`
	Message string `json:"message"`
	Errors  string `json:"errors"`
	Success string `json:"success"`
	Invalid string `json:"invalid"`
}

func (c ChromeClasses) withDefaults() ChromeClasses {
	pick := func(value string, fallback ChromeClass) string {
		if value != "" {
			return value
		}
		return string(fallback)
	}
	return ChromeClasses{
		Form:    pick(c.Form, ClassForm),
		Field:   pick(c.Field, ClassField),
		Label:   pick(c.Label, ClassLabel),
		Help:    pick(c.Help, ClassHelp),
		Message: pick(c.Message, ClassMessage),
		Errors:  pick(c.Errors, ClassErrors),
		Success: pick(c.Success, ClassSuccess),
		Invalid: pick(c.Invalid, ClassInvalid),
	}
}
