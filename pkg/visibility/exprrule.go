package visibility

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprEvaluator evaluates rules with the expr expression language. Rules see
// each form value as a top-level variable plus the full maps under "values"
// and "extras", e.g.:
//
//	published == true
//	values["release_date"] != nil && extras.role == "editor"
//
// Compiled programs are cached per rule string.
type ExprEvaluator struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewExprEvaluator constructs an evaluator with an empty program cache.
func NewExprEvaluator() *ExprEvaluator {
	return &ExprEvaluator{cache: make(map[string]*vm.Program)}
}

// Eval compiles the rule (or reuses a cached program) and runs it against the
// context. Rules must evaluate to a boolean.
func (e *ExprEvaluator) Eval(fieldKey, rule string, ctx Context) (bool, error) {
	if rule == "" {
		return true, nil
	}

	program, err := e.program(rule)
	if err != nil {
		return false, fmt.Errorf("visibility: compile rule for %q: %w", fieldKey, err)
	}

	out, err := expr.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("visibility: evaluate rule for %q: %w", fieldKey, err)
	}

	verdict, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("visibility: rule for %q evaluated to %T, want bool", fieldKey, out)
	}
	return verdict, nil
}

func (e *ExprEvaluator) program(rule string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.cache[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	// The "values" builtin shadows the environment map of the same name, so
	// the documented values["key"] syntax would fail to compile against the
	// builtin's function type. Undeclared identifiers stay allowed so rules
	// can reference fields before they hold a value.
	program, err := expr.Compile(rule,
		expr.AllowUndefinedVariables(),
		expr.DisableBuiltin("values"),
	)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(ctx Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+2)
	for key, value := range ctx.Values {
		env[key] = value
	}
	values := ctx.Values
	if values == nil {
		values = map[string]any{}
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["values"] = values
	env["extras"] = extras
	return env
}
