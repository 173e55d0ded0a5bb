package form

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/control"
)

// Default user-visible messages. Per-field message functions override both.
const (
	defaultInvalidMessage  = "Invalid value"
	defaultRequiredMessage = "Value is required"
)

// Validator decides whether a field value passes. A nil Validator always
// passes.
type Validator func(value any) bool

// MessageFunc produces the user-visible message for a field. It is consulted
// both on failure (invalid message) and on success (positive feedback).
type MessageFunc func(value any) string

// Option configures a Form at construction.
type Option[T any] func(*config[T])

type config[T any] struct {
	native          control.NativeForm
	formValidator   func(model T) bool
	formMessage     func(model T) string
	requiredMessage string
	invalidMessage  string
}

// WithNativeForm attaches the platform form widget the engine delegates
// submit/reset/validity operations to. When omitted the form runs headless.
func WithNativeForm[T any](native control.NativeForm) Option[T] {
	return func(cfg *config[T]) {
		if native != nil {
			cfg.native = native
		}
	}
}

// WithValidator installs the whole-form validator. A nil validator means the
// form level always passes.
func WithValidator[T any](validator func(model T) bool) Option[T] {
	return func(cfg *config[T]) {
		cfg.formValidator = validator
	}
}

// WithValidatorMessage installs the whole-form message function, mirroring
// the per-field message semantics at form granularity.
func WithValidatorMessage[T any](message func(model T) string) Option[T] {
	return func(cfg *config[T]) {
		cfg.formMessage = message
	}
}

// WithRequiredMessage overrides the default message written to a control's
// custom validity when it is required but empty.
func WithRequiredMessage[T any](message string) Option[T] {
	return func(cfg *config[T]) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			cfg.requiredMessage = trimmed
		}
	}
}

// WithInvalidMessage overrides the default message used when a per-field
// validator fails and no message function is bound.
func WithInvalidMessage[T any](message string) Option[T] {
	return func(cfg *config[T]) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			cfg.invalidMessage = trimmed
		}
	}
}

// BindOption configures a single field binding.
type BindOption func(*binding)

// WithFieldValidator attaches the per-field validator predicate.
func WithFieldValidator(validator Validator) BindOption {
	return func(b *binding) {
		b.validator = validator
	}
}

// WithFieldMessage attaches the per-field message function.
func WithFieldMessage(message MessageFunc) BindOption {
	return func(b *binding) {
		b.message = message
	}
}

// ValidateOption adjusts a single Validate call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	updateState bool
}

// WithoutStateUpdate computes the verdict without publishing the snapshot on
// the validation stream.
func WithoutStateUpdate() ValidateOption {
	return func(cfg *validateConfig) {
		cfg.updateState = false
	}
}
