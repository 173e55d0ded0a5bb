package control

import "sync"

// Kind enumerates the closed set of editable field variants a form engine
// understands. Dispatch on Kind replaces the runtime type tests a dynamic
// host would use; an unknown Kind is a configuration error surfaced by the
// binding layer, never silently skipped.
type Kind string

const (
	KindString   Kind = "string"
	KindBoolean  Kind = "boolean"
	KindTriState Kind = "tristate"
	KindInteger  Kind = "integer"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindTime     Kind = "time"
	KindFileList Kind = "filelist"
)

// Control is one editable field. Implementations expose a typed accessor pair
// alongside the untyped Value/SetValue surface used by the binding layer;
// SetValue performs control-driven coercion, so the accepted input shapes
// depend on the control's Kind, not on the wire value's declared type.
//
// Value returns nil when the control is empty. For Boolean controls the value
// is never nil; the binding layer treats false as empty for required checks.
type Control interface {
	Kind() Kind
	Value() any
	SetValue(value any) error
	Clear()

	Required() bool
	SetRequired(required bool)
	Visible() bool
	SetVisible(visible bool)

	CustomValidity() string
	SetCustomValidity(message string)

	// Listen registers a change callback and returns its unsubscribe
	// function. Delivery is synchronous and in registration order.
	Listen(fn func()) (unsubscribe func())
}

// NativeForm abstracts the platform form widget backing a form: submit,
// reset, and the constraint-validation primitives. Non-interactive contexts
// use Headless, which degrades every operation to a no-op returning false.
type NativeForm interface {
	Submit() bool
	Reset()
	CheckValidity() bool
	ReportValidity() bool
	Focus()
}

type headlessForm struct{}

func (headlessForm) Submit() bool         { return false }
func (headlessForm) Reset()               {}
func (headlessForm) CheckValidity() bool  { return false }
func (headlessForm) ReportValidity() bool { return false }
func (headlessForm) Focus()               {}

// Headless returns the NativeForm used when no interactive widget exists,
// e.g. for server-rendered snapshots.
func Headless() NativeForm {
	return headlessForm{}
}

// base carries the state shared by every control variant: the required and
// visible flags, the custom validity message, and the change listeners.
type base struct {
	mu        sync.RWMutex
	required  bool
	visible   bool
	validity  string
	listeners map[int]func()
	order     []int
	nextID    int
}

func newBase() base {
	return base{visible: true}
}

func (b *base) Required() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.required
}

func (b *base) SetRequired(required bool) {
	b.mu.Lock()
	b.required = required
	b.mu.Unlock()
}

func (b *base) Visible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visible
}

func (b *base) SetVisible(visible bool) {
	b.mu.Lock()
	b.visible = visible
	b.mu.Unlock()
}

func (b *base) CustomValidity() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.validity
}

func (b *base) SetCustomValidity(message string) {
	b.mu.Lock()
	b.validity = message
	b.mu.Unlock()
}

func (b *base) Listen(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	if b.listeners == nil {
		b.listeners = make(map[int]func())
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, candidate := range b.order {
			if candidate == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *base) notify() {
	b.mu.RLock()
	callbacks := make([]func(), 0, len(b.order))
	for _, id := range b.order {
		if fn, ok := b.listeners[id]; ok {
			callbacks = append(callbacks, fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
}
