package visibility

import (
	"github.com/goliatone/go-formbind/pkg/form"
)

// Rules maps field keys to rule expressions. A field without a rule keeps
// whatever visibility its control already has.
type Rules map[string]string

// Option customizes controller construction.
type Option func(*config)

type config struct {
	evaluator Evaluator
	extras    map[string]any
	onError   func(fieldKey string, err error)
}

// WithEvaluator overrides the default expression evaluator.
func WithEvaluator(evaluator Evaluator) Option {
	return func(c *config) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

// WithExtras supplies out-of-form values that rules can reference through the
// "extras" variable.
func WithExtras(extras map[string]any) Option {
	return func(c *config) {
		c.extras = extras
	}
}

// WithErrorHandler installs a callback for rule failures. Without one failures
// are silent; either way the affected field stays visible.
func WithErrorHandler(handler func(fieldKey string, err error)) Option {
	return func(c *config) {
		c.onError = handler
	}
}

// Controller keeps control visibility in sync with the form's data stream.
type Controller struct {
	rules       Rules
	cfg         config
	refresh     func()
	unsubscribe func()
}

// Attach evaluates the rules against the form's current data and re-evaluates
// them on every data change. Fields whose rule errors stay visible so a bad
// expression never hides input from the user.
func Attach[T any](f *form.Form[T], rules Rules, options ...Option) *Controller {
	cfg := config{evaluator: NewExprEvaluator()}
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}

	c := &Controller{rules: rules, cfg: cfg}
	if f == nil || len(rules) == 0 {
		return c
	}

	c.refresh = func() {
		ctx := Context{Values: snapshotValues(f), Extras: c.cfg.extras}
		for key, rule := range c.rules {
			visible, err := c.cfg.evaluator.Eval(key, rule, ctx)
			if err != nil {
				if c.cfg.onError != nil {
					c.cfg.onError(key, err)
				}
				visible = true
			}
			if ctrl, ok := f.Control(key); ok {
				ctrl.SetVisible(visible)
			}
		}
	}
	// Subscribing replays the current data snapshot, which runs the rules
	// once before Attach returns.
	c.unsubscribe = f.DataStream().Subscribe(func(T) {
		c.refresh()
	})
	return c
}

// Refresh re-runs every rule against the form's current values.
func (c *Controller) Refresh() {
	if c != nil && c.refresh != nil {
		c.refresh()
	}
}

// Close stops tracking the form's data stream.
func (c *Controller) Close() {
	if c == nil || c.unsubscribe == nil {
		return
	}
	c.unsubscribe()
	c.unsubscribe = nil
}

func snapshotValues[T any](f *form.Form[T]) map[string]any {
	values := make(map[string]any)
	for _, key := range f.Keys() {
		value, _ := f.Value(key)
		values[key] = value
	}
	return values
}
