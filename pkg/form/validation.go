package form

// FieldValidation is the per-field slice of a validation snapshot. Messages
// are empty when not applicable.
type FieldValidation struct {
	// EmptyWhenRequired marks a required, visible field whose value is nil
	// or boolean false.
	EmptyWhenRequired bool
	// Invalid marks a visible field whose validator predicate failed.
	Invalid        bool
	ValidMessage   string
	InvalidMessage string
}

// Failed reports whether the field contributes to overall form invalidity.
func (v FieldValidation) Failed() bool {
	return v.Invalid || v.EmptyWhenRequired
}

// Validation is the snapshot published on the validation stream. The zero
// value is the "not yet validated" sentinel. The engine publishes its own
// copy of Fields, so writing to a received snapshot never alters engine
// state.
type Validation struct {
	Validated      bool
	Invalid        bool
	ValidMessage   string
	InvalidMessage string
	Fields         map[string]FieldValidation
}

// Unvalidated returns the sentinel snapshot a fresh form starts with.
func Unvalidated() Validation {
	return Validation{}
}

// clone copies the Fields map so the engine and stream consumers never share
// one. A snapshot handed out stays a snapshot even if the receiver writes to
// its Fields.
func (v Validation) clone() Validation {
	if v.Fields == nil {
		return v
	}
	fields := make(map[string]FieldValidation, len(v.Fields))
	for key, fv := range v.Fields {
		fields[key] = fv
	}
	v.Fields = fields
	return v
}

// Validate runs the validation pipeline and returns whether the form is
// valid. Unless WithoutStateUpdate is passed, the full snapshot is published
// on the validation stream.
//
// Hidden fields are exempt from both the required check and the custom
// validator but still appear in the snapshot with both flags false. Writing
// each control's custom validity is a deliberate side effect: it is the only
// path that pushes user-visible validation text back onto controls.
func (f *Form[T]) Validate(options ...ValidateOption) bool {
	cfg := validateConfig{updateState: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	// Native required/pattern checks run first for their platform side
	// effect; a headless form has nothing to check and is treated as valid.
	f.native.CheckValidity()

	fields := make(map[string]FieldValidation, len(f.bindings))
	hasInvalidField := false
	for _, b := range f.bindings {
		fv := f.validateField(b)
		if fv.Failed() {
			hasInvalidField = true
		}
		fields[b.key] = fv
	}

	formInvalid := false
	var formValid, formInvalidMsg string
	if f.formValidator != nil {
		model, err := f.Data()
		if err != nil {
			formInvalid = true
		} else {
			formInvalid = !f.formValidator(model)
		}
		if formInvalid {
			formInvalidMsg = f.invalidMessage
			if err == nil && f.formMessage != nil {
				if msg := f.formMessage(model); msg != "" {
					formInvalidMsg = msg
				}
			}
		} else if f.formMessage != nil {
			formValid = f.formMessage(model)
		}
	}

	invalid := formInvalid || hasInvalidField
	snapshot := Validation{
		Validated:      true,
		Invalid:        invalid,
		ValidMessage:   formValid,
		InvalidMessage: formInvalidMsg,
		Fields:         fields,
	}

	if cfg.updateState {
		f.lastValidation = snapshot
		if f.validationStream != nil {
			f.validationStream.Set(snapshot.clone())
		}
	}
	return !invalid
}

func (f *Form[T]) validateField(b *binding) FieldValidation {
	var fv FieldValidation

	value := b.control.Value()
	visible := b.control.Visible()

	if visible && b.control.Required() && isEmptyValue(value) {
		fv.EmptyWhenRequired = true
	}
	if visible && b.validator != nil && !b.validator(value) {
		fv.Invalid = true
	}

	if fv.Invalid {
		fv.InvalidMessage = f.invalidMessage
		if b.message != nil {
			if msg := b.message(value); msg != "" {
				fv.InvalidMessage = msg
			}
		}
	} else if b.message != nil {
		fv.ValidMessage = b.message(value)
	}

	// The invalid message wins over the required message when both apply.
	switch {
	case fv.InvalidMessage != "":
		b.control.SetCustomValidity(fv.InvalidMessage)
	case fv.EmptyWhenRequired:
		b.control.SetCustomValidity(f.requiredMessage)
	default:
		b.control.SetCustomValidity("")
	}

	return fv
}

// ClearValidation republishes the unvalidated sentinel. Controls keep
// whatever custom validity the last Validate wrote; only a full Validate
// re-evaluates those messages.
func (f *Form[T]) ClearValidation() {
	f.lastValidation = Unvalidated()
	if f.validationStream != nil {
		f.validationStream.Set(f.lastValidation)
	}
}

// isEmptyValue implements the required-field emptiness rule: nil and boolean
// false count as empty, everything else counts as present.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if b, ok := value.(bool); ok {
		return !b
	}
	return false
}
