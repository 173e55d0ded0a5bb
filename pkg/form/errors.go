package form

import "errors"

var (
	// ErrCodecRequired is returned by New when no codec is supplied. A form
	// cannot pick a conversion strategy on its own; construction is the only
	// moment the choice can be made.
	ErrCodecRequired = errors.New("form: codec is required")
	// ErrUnsupportedFieldType signals a binding/model mismatch: a wire value
	// was routed to a control whose kind the engine does not recognize. This
	// is an integrator configuration error, not a recoverable condition.
	ErrUnsupportedFieldType = errors.New("form: unsupported form field type")
)
