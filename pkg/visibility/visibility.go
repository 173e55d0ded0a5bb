// Package visibility toggles control visibility from declarative rules
// evaluated against a form's current data. Hidden controls are exempt from
// required and validator checks, so visibility rules double as conditional
// validation.
package visibility

// Context provides inputs to an Evaluator. Values holds the form's current
// field values keyed by binding key; Extras lets callers inject arbitrary
// context such as user roles or feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// Evaluator determines whether a field should be visible based on a rule
// string and the evaluation context.
type Evaluator interface {
	Eval(fieldKey, rule string, ctx Context) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldKey, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldKey, rule string, ctx Context) (bool, error) {
	return fn(fieldKey, rule, ctx)
}
