// Package schema derives form binding plans from OpenAPI documents. A plan is
// the structured-mode setup path: it lists the fields an operation's request
// body declares, mapped onto control kinds, with validator predicates compiled
// from the schema's constraints.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
)

// FieldSpec describes one bindable field extracted from a schema.
type FieldSpec struct {
	Name        string
	Kind        control.Kind
	Required    bool
	Label       string
	Description string
	Format      string
	Constraints Constraints
}

// Plan is an ordered set of field specs for one operation.
type Plan struct {
	OperationID string
	Fields      []FieldSpec
}

// Binder is the part of the form engine a plan needs; *form.Form satisfies it
// for any model type.
type Binder interface {
	Bind(key string, ctrl control.Control, options ...form.BindOption) error
}

// Apply instantiates a control for every field through the registry, marks it
// required per the schema, attaches the compiled constraint validator, and
// binds it. Controls are bound in plan order so validation runs in schema
// order too.
func (p Plan) Apply(binder Binder, registry *Registry) error {
	if binder == nil {
		return fmt.Errorf("schema: binder is required")
	}
	if registry == nil {
		registry = NewRegistry()
	}

	for _, spec := range p.Fields {
		ctrl, err := registry.Resolve(spec)
		if err != nil {
			return err
		}
		ctrl.SetRequired(spec.Required)

		var options []form.BindOption
		if !spec.Constraints.Empty() {
			validator, message, err := spec.Constraints.Compile()
			if err != nil {
				return fmt.Errorf("schema: field %q: %w", spec.Name, err)
			}
			options = append(options,
				form.WithFieldValidator(validator),
				form.WithFieldMessage(message),
			)
		}

		if err := binder.Bind(spec.Name, ctrl, options...); err != nil {
			return err
		}
	}
	return nil
}

// Constraints carries the schema-level validation constraints that translate
// into a per-field validator. Required is not a constraint here; the binding
// layer handles emptiness separately.
type Constraints struct {
	Pattern   string
	MinLength *int
	MaxLength *int
	Minimum   *float64
	Maximum   *float64
	Enum      []string
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return c.Pattern == "" && c.MinLength == nil && c.MaxLength == nil &&
		c.Minimum == nil && c.Maximum == nil && len(c.Enum) == 0
}

// Compile builds the validator predicate and message function for the
// constraint set. Nil/absent values always pass: emptiness belongs to the
// required check, not to constraints.
func (c Constraints) Compile() (form.Validator, form.MessageFunc, error) {
	var pattern *regexp.Regexp
	if c.Pattern != "" {
		compiled, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("compile pattern %q: %w", c.Pattern, err)
		}
		pattern = compiled
	}

	failure := func(value any) string {
		if value == nil {
			return ""
		}
		if text, ok := asString(value); ok {
			if pattern != nil && !pattern.MatchString(text) {
				return fmt.Sprintf("Must match pattern %s", c.Pattern)
			}
			if c.MinLength != nil && len(text) < *c.MinLength {
				return fmt.Sprintf("Must be at least %d characters", *c.MinLength)
			}
			if c.MaxLength != nil && len(text) > *c.MaxLength {
				return fmt.Sprintf("Must be at most %d characters", *c.MaxLength)
			}
			if len(c.Enum) > 0 && !contains(c.Enum, text) {
				return fmt.Sprintf("Must be one of: %s", strings.Join(c.Enum, ", "))
			}
		}
		if number, ok := asFloat(value); ok {
			if c.Minimum != nil && number < *c.Minimum {
				return fmt.Sprintf("Must be at least %v", *c.Minimum)
			}
			if c.Maximum != nil && number > *c.Maximum {
				return fmt.Sprintf("Must be at most %v", *c.Maximum)
			}
		}
		return ""
	}

	validator := func(value any) bool {
		return failure(value) == ""
	}
	message := func(value any) string {
		return failure(value)
	}
	return validator, message, nil
}

func asString(value any) (string, bool) {
	text, ok := value.(string)
	return text, ok
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	default:
		return 0, false
	}
}

func contains(values []string, target string) bool {
	for _, candidate := range values {
		if candidate == target {
			return true
		}
	}
	return false
}
