// Package form implements the reactive data-binding engine at the heart of
// go-formbind: a registry of named controls, bidirectional conversion between
// a typed model and its flat wire representation, a validation pipeline, and
// two observable state streams.
//
// A Form is driven from a single logical turn at a time: the host rendering
// loop and user code take strict turns, so engine state is not synchronized.
// The only asynchronous-looking linkage, the per-control change subscription,
// still delivers synchronously with the originating mutation.
package form

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/codec"
	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/stream"
)

type binding struct {
	key         string
	control     control.Control
	validator   Validator
	message     MessageFunc
	unsubscribe func()
}

// Form owns the field registry, the unbound-data side map, and the data and
// validation streams for one logical form. T is the model type: a struct in
// structured mode, map[string]any in untyped mode.
type Form[T any] struct {
	codec           codec.Codec[T]
	native          control.NativeForm
	formValidator   func(model T) bool
	formMessage     func(model T) string
	requiredMessage string
	invalidMessage  string

	bindings []*binding
	index    map[string]*binding
	unbound  map[string]any

	// explicit flips permanently true on the first user-driven SetData or
	// ClearData, suppressing later automatic population via SetInitialData.
	explicit bool
	// applying suppresses per-control republish while SetData distributes
	// values, so a bulk assignment publishes exactly once.
	applying bool

	dataStream       *stream.Source[T]
	validationStream *stream.Source[Validation]
	lastValidation   Validation
}

// New constructs a Form around the given conversion strategy. The codec is
// mandatory: a structured model needs a serializer, and the untyped mode uses
// codec.Map. Passing nil is a precondition failure.
func New[T any](c codec.Codec[T], options ...Option[T]) (*Form[T], error) {
	if c == nil {
		return nil, ErrCodecRequired
	}

	cfg := config[T]{
		native:          control.Headless(),
		requiredMessage: defaultRequiredMessage,
		invalidMessage:  defaultInvalidMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return &Form[T]{
		codec:           c,
		native:          cfg.native,
		formValidator:   cfg.formValidator,
		formMessage:     cfg.formMessage,
		requiredMessage: cfg.requiredMessage,
		invalidMessage:  cfg.invalidMessage,
		index:           make(map[string]*binding),
		unbound:         make(map[string]any),
		lastValidation:  Unvalidated(),
	}, nil
}

// MustNew is New panicking on error. Useful for init-time wiring.
func MustNew[T any](c codec.Codec[T], options ...Option[T]) *Form[T] {
	f, err := New(c, options...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewMap constructs an untyped-map form. The model is treated as the flat
// wire map directly; no conversion happens.
func NewMap(options ...Option[map[string]any]) *Form[map[string]any] {
	f, err := New(codec.Map(), options...)
	if err != nil {
		// codec.Map is never nil; New cannot fail here.
		panic(err)
	}
	return f
}

// Bind registers a control under key and subscribes to its change stream so
// every edit republishes the data snapshot. The binding lasts until Unbind or
// Close. Binding an already-bound key is an error.
func (f *Form[T]) Bind(key string, ctrl control.Control, options ...BindOption) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return fmt.Errorf("form: binding key is required")
	}
	if ctrl == nil {
		return fmt.Errorf("form: control for %q is required", trimmed)
	}
	if _, exists := f.index[trimmed]; exists {
		return fmt.Errorf("form: field %q already bound", trimmed)
	}

	b := &binding{key: trimmed, control: ctrl}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	b.unsubscribe = ctrl.Listen(f.onControlChange)

	f.bindings = append(f.bindings, b)
	f.index[trimmed] = b
	return nil
}

// Unbind removes the binding and its validator pair and releases the change
// subscription. The control's own value is untouched; whatever the engine
// held for the key is silently dropped. Reports whether a binding existed.
func (f *Form[T]) Unbind(key string) bool {
	b, ok := f.index[key]
	if !ok {
		return false
	}
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	delete(f.index, key)
	for i, candidate := range f.bindings {
		if candidate == b {
			f.bindings = append(f.bindings[:i], f.bindings[i+1:]...)
			break
		}
	}
	return true
}

// Close releases every control subscription. The form remains readable but
// stops reacting to control edits.
func (f *Form[T]) Close() {
	for _, b := range f.bindings {
		if b.unsubscribe != nil {
			b.unsubscribe()
			b.unsubscribe = nil
		}
	}
}

// Keys returns the bound field keys in registration order.
func (f *Form[T]) Keys() []string {
	keys := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		keys = append(keys, b.key)
	}
	return keys
}

// Control returns the control bound under key.
func (f *Form[T]) Control(key string) (control.Control, bool) {
	b, ok := f.index[key]
	if !ok {
		return nil, false
	}
	return b.control, true
}

// Value is shorthand for Control(key).Value().
func (f *Form[T]) Value(key string) (any, bool) {
	b, ok := f.index[key]
	if !ok {
		return nil, false
	}
	return b.control.Value(), true
}

// SetData distributes the model across bound controls and the unbound side
// map, clearing anything the new model no longer mentions. Coercion is
// control-driven: the target control's kind decides how each wire value is
// parsed, and malformed primitives surface as errors. Publishes the new
// snapshot on the data stream when it differs from the previous one.
//
// Calling SetData (or ClearData) permanently marks the form as explicitly
// driven; SetInitialData becomes a no-op from then on.
func (f *Form[T]) SetData(model T) error {
	f.explicit = true
	flat, err := f.codec.Encode(model)
	if err != nil {
		return err
	}
	return f.applyFlat(flat)
}

// ClearData resets every bound control to its empty value, drops all unbound
// data, and publishes the resulting snapshot subject to the same change
// detection as SetData.
func (f *Form[T]) ClearData() error {
	f.explicit = true
	return f.applyFlat(nil)
}

// SetInitialData is the population hook for the rendering runtime: identical
// to SetData, except it does nothing once the user has called SetData or
// ClearData explicitly. Explicit wins over implicit initial population.
func (f *Form[T]) SetInitialData(model T) error {
	if f.explicit {
		return nil
	}
	flat, err := f.codec.Encode(model)
	if err != nil {
		return err
	}
	return f.applyFlat(flat)
}

func (f *Form[T]) applyFlat(flat map[string]any) error {
	f.applying = true
	defer func() {
		f.applying = false
	}()

	for _, b := range f.bindings {
		if _, ok := flat[b.key]; !ok {
			b.control.Clear()
		}
	}
	for key := range f.unbound {
		if _, ok := flat[key]; !ok {
			delete(f.unbound, key)
		}
	}

	for key, value := range flat {
		b, ok := f.index[key]
		if !ok {
			f.unbound[key] = value
			continue
		}
		if err := assign(b.control, value); err != nil {
			return fmt.Errorf("form: set %q: %w", key, err)
		}
	}

	// Bound keys never linger in the side map; SetData redistributes on
	// every call so the two sets stay disjoint at rest.
	for _, b := range f.bindings {
		delete(f.unbound, b.key)
	}

	f.publishData()
	return nil
}

// assign dispatches on the control's kind. Every supported kind routes
// through the control's own coercion; anything else is a configuration error.
func assign(ctrl control.Control, value any) error {
	switch ctrl.Kind() {
	case control.KindString, control.KindBoolean, control.KindTriState,
		control.KindInteger, control.KindNumber, control.KindDate,
		control.KindDateTime, control.KindTime, control.KindFileList:
		return ctrl.SetValue(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, ctrl.Kind())
	}
}

// Data merges the unbound side map with a fresh read of every bound control
// (controls win on key collision) and decodes the result back into the model
// type. It never mutates engine state.
func (f *Form[T]) Data() (T, error) {
	flat := make(map[string]any, len(f.unbound)+len(f.bindings))
	for key, value := range f.unbound {
		flat[key] = value
	}
	for _, b := range f.bindings {
		if value := b.control.Value(); value != nil {
			flat[b.key] = value
		}
	}
	return f.codec.Decode(flat)
}

// DataJSON returns the current model serialized as JSON.
func (f *Form[T]) DataJSON() ([]byte, error) {
	model, err := f.Data()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("form: encode data: %w", err)
	}
	return raw, nil
}

// DataStream returns the data-changed stream. It is created on first access,
// seeded with the current snapshot; subscribers always receive the latest
// value immediately, then equality-gated updates.
//
// The stream carries successfully decoded models only: when the merged flat
// map cannot decode, the publish is skipped and the stream keeps its last
// good snapshot (the zero model if nothing ever decoded). Callers that need
// the decode error read Data directly.
func (f *Form[T]) DataStream() *stream.Source[T] {
	if f.dataStream == nil {
		current, _ := f.Data()
		f.dataStream = stream.NewWithEquality(current, func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		})
	}
	return f.dataStream
}

// ValidationStream returns the validation-changed stream, created on first
// access with the last snapshot (the unvalidated sentinel before the first
// Validate).
func (f *Form[T]) ValidationStream() *stream.Source[Validation] {
	if f.validationStream == nil {
		f.validationStream = stream.New(f.lastValidation.clone())
	}
	return f.validationStream
}

// Submit delegates to the native form widget; headless forms report false.
func (f *Form[T]) Submit() bool { return f.native.Submit() }

// Reset delegates to the native form widget.
func (f *Form[T]) Reset() { f.native.Reset() }

// CheckValidity delegates to the native constraint-validation primitive;
// headless forms report false.
func (f *Form[T]) CheckValidity() bool { return f.native.CheckValidity() }

// ReportValidity delegates to the native constraint-validation primitive;
// headless forms report false.
func (f *Form[T]) ReportValidity() bool { return f.native.ReportValidity() }

// Focus delegates to the native form widget.
func (f *Form[T]) Focus() { f.native.Focus() }

func (f *Form[T]) onControlChange() {
	if f.applying {
		return
	}
	f.publishData()
}

// publishData pushes the current model onto the data stream. A decode
// failure skips the publish so the stream never carries a broken snapshot;
// the error stays observable through Data.
func (f *Form[T]) publishData() {
	if f.dataStream == nil {
		return
	}
	model, err := f.Data()
	if err != nil {
		return
	}
	f.dataStream.Set(model)
}
