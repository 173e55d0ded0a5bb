package formbind

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/codec"
	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/visibility"
)

// Control aliases the control interface for callers wiring custom widgets.
type Control = control.Control

// Kind identifies a control variant.
type Kind = control.Kind

// Validation is the snapshot published on a form's validation stream.
type Validation = form.Validation

// FieldValidation is the per-field slice of a validation snapshot.
type FieldValidation = form.FieldValidation

// Plan is a schema-derived binding plan.
type Plan = schema.Plan

// FieldSpec describes one planned field binding.
type FieldSpec = schema.FieldSpec

// VisibilityRules maps field keys to rule expressions.
type VisibilityRules = visibility.Rules

// New builds a typed form backed by the JSON codec, the common case for
// struct-shaped models.
func New[T any](options ...form.Option[T]) (*form.Form[T], error) {
	return form.New(codec.JSON[T](), options...)
}

// MustNew is New for wiring code where a construction error is programmer
// error.
func MustNew[T any](options ...form.Option[T]) *form.Form[T] {
	return form.MustNew(codec.JSON[T](), options...)
}

// NewMap builds an untyped form whose model is a flat map.
func NewMap(options ...form.Option[map[string]any]) *form.Form[map[string]any] {
	return form.NewMap(options...)
}

// PlanForOperation derives a binding plan from an OpenAPI document. Apply the
// plan to a form with Plan.Apply.
func PlanForOperation(ctx context.Context, document []byte, operationID string) (Plan, error) {
	return schema.PlanForOperation(ctx, document, operationID)
}

// BindVisibility attaches rule-driven visibility to a form; see the
// visibility package for rule syntax and options.
func BindVisibility[T any](f *form.Form[T], rules VisibilityRules, options ...visibility.Option) *visibility.Controller {
	return visibility.Attach(f, rules, options...)
}
