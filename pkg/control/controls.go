package control

import "time"

// Value fields are not synchronized: the engine contract is single-turn
// cooperative mutation, and the base mutex only guards flags and listeners.

// StringControl is a free-text input. The empty string and "no value" are the
// same state, matching HTML text inputs.
type StringControl struct {
	base
	text string
}

// NewString constructs an empty, visible, optional string control.
func NewString() *StringControl {
	return &StringControl{base: newBase()}
}

func (c *StringControl) Kind() Kind { return KindString }

// Text returns the current text, empty when unset.
func (c *StringControl) Text() string { return c.text }

// SetText replaces the text and notifies listeners.
func (c *StringControl) SetText(text string) {
	c.text = text
	c.notify()
}

func (c *StringControl) Value() any {
	if c.text == "" {
		return nil
	}
	return c.text
}

func (c *StringControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	text, err := coerceString(value)
	if err != nil {
		return err
	}
	c.SetText(text)
	return nil
}

func (c *StringControl) Clear() {
	c.text = ""
	c.notify()
}

// BooleanControl is a checkbox-style input. It is never "empty": Value always
// reports the checked state, and the binding layer treats false as missing
// for required checks.
type BooleanControl struct {
	base
	checked bool
}

// NewBoolean constructs an unchecked boolean control.
func NewBoolean() *BooleanControl {
	return &BooleanControl{base: newBase()}
}

func (c *BooleanControl) Kind() Kind { return KindBoolean }

// Checked returns the current state.
func (c *BooleanControl) Checked() bool { return c.checked }

// SetChecked replaces the state and notifies listeners.
func (c *BooleanControl) SetChecked(checked bool) {
	c.checked = checked
	c.notify()
}

func (c *BooleanControl) Value() any { return c.checked }

func (c *BooleanControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	checked, err := coerceBool(value)
	if err != nil {
		return err
	}
	c.SetChecked(checked)
	return nil
}

func (c *BooleanControl) Clear() {
	c.checked = false
	c.notify()
}

// TriStateControl is a nullable boolean: checked, unchecked, or indeterminate.
type TriStateControl struct {
	base
	state *bool
}

// NewTriState constructs an indeterminate tri-state control.
func NewTriState() *TriStateControl {
	return &TriStateControl{base: newBase()}
}

func (c *TriStateControl) Kind() Kind { return KindTriState }

// State returns the current state, nil when indeterminate.
func (c *TriStateControl) State() *bool { return c.state }

// SetState replaces the state and notifies listeners.
func (c *TriStateControl) SetState(state *bool) {
	c.state = state
	c.notify()
}

func (c *TriStateControl) Value() any {
	if c.state == nil {
		return nil
	}
	return *c.state
}

func (c *TriStateControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	if state, ok := value.(*bool); ok {
		c.SetState(state)
		return nil
	}
	checked, err := coerceBool(value)
	if err != nil {
		return err
	}
	c.SetState(&checked)
	return nil
}

func (c *TriStateControl) Clear() {
	c.state = nil
	c.notify()
}

// IntegerControl is a whole-number input.
type IntegerControl struct {
	base
	value int
	set   bool
}

// NewInteger constructs an empty integer control.
func NewInteger() *IntegerControl {
	return &IntegerControl{base: newBase()}
}

func (c *IntegerControl) Kind() Kind { return KindInteger }

// Int returns the current value and whether one is set.
func (c *IntegerControl) Int() (int, bool) { return c.value, c.set }

// SetInt replaces the value and notifies listeners.
func (c *IntegerControl) SetInt(value int) {
	c.value = value
	c.set = true
	c.notify()
}

func (c *IntegerControl) Value() any {
	if !c.set {
		return nil
	}
	return c.value
}

func (c *IntegerControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	parsed, err := coerceInt(value)
	if err != nil {
		return err
	}
	c.SetInt(parsed)
	return nil
}

func (c *IntegerControl) Clear() {
	c.value = 0
	c.set = false
	c.notify()
}

// NumberControl is a floating-point input.
type NumberControl struct {
	base
	value float64
	set   bool
}

// NewNumber constructs an empty number control.
func NewNumber() *NumberControl {
	return &NumberControl{base: newBase()}
}

func (c *NumberControl) Kind() Kind { return KindNumber }

// Float returns the current value and whether one is set.
func (c *NumberControl) Float() (float64, bool) { return c.value, c.set }

// SetFloat replaces the value and notifies listeners.
func (c *NumberControl) SetFloat(value float64) {
	c.value = value
	c.set = true
	c.notify()
}

func (c *NumberControl) Value() any {
	if !c.set {
		return nil
	}
	return c.value
}

func (c *NumberControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	parsed, err := coerceFloat(value)
	if err != nil {
		return err
	}
	c.SetFloat(parsed)
	return nil
}

func (c *NumberControl) Clear() {
	c.value = 0
	c.set = false
	c.notify()
}

// temporalControl backs the Date, DateTime, and Time variants; only the kind
// and the accepted parse layouts differ.
type temporalControl struct {
	base
	kind    Kind
	layouts []string
	value   time.Time
	set     bool
}

func (c *temporalControl) Kind() Kind { return c.kind }

// Time returns the current value and whether one is set.
func (c *temporalControl) Time() (time.Time, bool) { return c.value, c.set }

// SetTime replaces the value and notifies listeners.
func (c *temporalControl) SetTime(value time.Time) {
	c.value = value
	c.set = true
	c.notify()
}

func (c *temporalControl) Value() any {
	if !c.set {
		return nil
	}
	return c.value
}

func (c *temporalControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	parsed, err := coerceTime(value, c.layouts...)
	if err != nil {
		return err
	}
	c.SetTime(parsed)
	return nil
}

func (c *temporalControl) Clear() {
	c.value = time.Time{}
	c.set = false
	c.notify()
}

// DateControl is a calendar-date input (wire format 2006-01-02).
type DateControl struct{ temporalControl }

// NewDate constructs an empty date control.
func NewDate() *DateControl {
	return &DateControl{temporalControl{
		base:    newBase(),
		kind:    KindDate,
		layouts: []string{dateLayout, time.RFC3339},
	}}
}

// DateTimeControl is a timestamp input (wire format RFC 3339).
type DateTimeControl struct{ temporalControl }

// NewDateTime constructs an empty date-time control.
func NewDateTime() *DateTimeControl {
	return &DateTimeControl{temporalControl{
		base:    newBase(),
		kind:    KindDateTime,
		layouts: []string{time.RFC3339, dateLayout + " " + timeLayout, dateLayout},
	}}
}

// TimeControl is a time-of-day input (wire format 15:04:05).
type TimeControl struct{ temporalControl }

// NewTime constructs an empty time control.
func NewTime() *TimeControl {
	return &TimeControl{temporalControl{
		base:    newBase(),
		kind:    KindTime,
		layouts: []string{timeLayout, time.RFC3339},
	}}
}

// FileListControl holds the files picked through an upload input.
type FileListControl struct {
	base
	files []File
}

// NewFileList constructs an empty file-list control.
func NewFileList() *FileListControl {
	return &FileListControl{base: newBase()}
}

func (c *FileListControl) Kind() Kind { return KindFileList }

// Files returns the current selection, nil when empty.
func (c *FileListControl) Files() []File { return c.files }

// SetFiles replaces the selection and notifies listeners.
func (c *FileListControl) SetFiles(files []File) {
	c.files = files
	c.notify()
}

func (c *FileListControl) Value() any {
	if len(c.files) == 0 {
		return nil
	}
	return c.files
}

func (c *FileListControl) SetValue(value any) error {
	if value == nil {
		c.Clear()
		return nil
	}
	files, err := decodeFileList(value)
	if err != nil {
		return err
	}
	c.SetFiles(files)
	return nil
}

func (c *FileListControl) Clear() {
	c.files = nil
	c.notify()
}
