package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/control"
)

// Matcher decides whether a factory should build the control for a field.
type Matcher func(spec FieldSpec) bool

// Factory builds a control for a field spec.
type Factory func(spec FieldSpec) control.Control

type factoryRule struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// Registry resolves controls for field specs. Higher priority wins; ties fall
// back to registration order. The built-in rules map every control kind to
// its default constructor at priority zero, so custom registrations with a
// positive priority always take precedence.
type Registry struct {
	mu    sync.RWMutex
	rules []factoryRule
}

// NewRegistry constructs a registry with the built-in kind factories.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a factory guarded by a matcher. Empty names and nil matchers
// or factories are ignored.
func (r *Registry) Register(name string, priority int, match Matcher, build Factory) {
	if r == nil || match == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, factoryRule{
		name:     trimmed,
		priority: priority,
		match:    match,
		build:    build,
		order:    len(r.rules),
	})
}

// Resolve builds the control for a field spec using the highest-priority
// matching rule. A spec no rule matches is a configuration error.
func (r *Registry) Resolve(spec FieldSpec) (control.Control, error) {
	if r == nil {
		return nil, fmt.Errorf("schema: registry is nil")
	}

	r.mu.RLock()
	rules := append([]factoryRule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})

	for _, rule := range rules {
		if rule.match(spec) {
			if ctrl := rule.build(spec); ctrl != nil {
				return ctrl, nil
			}
		}
	}
	return nil, fmt.Errorf("schema: no control factory for field %q (kind %s)", spec.Name, spec.Kind)
}

func (r *Registry) registerBuiltins() {
	builtins := []struct {
		kind  control.Kind
		build func() control.Control
	}{
		{control.KindString, func() control.Control { return control.NewString() }},
		{control.KindBoolean, func() control.Control { return control.NewBoolean() }},
		{control.KindTriState, func() control.Control { return control.NewTriState() }},
		{control.KindInteger, func() control.Control { return control.NewInteger() }},
		{control.KindNumber, func() control.Control { return control.NewNumber() }},
		{control.KindDate, func() control.Control { return control.NewDate() }},
		{control.KindDateTime, func() control.Control { return control.NewDateTime() }},
		{control.KindTime, func() control.Control { return control.NewTime() }},
		{control.KindFileList, func() control.Control { return control.NewFileList() }},
	}

	for _, builtin := range builtins {
		kind := builtin.kind
		build := builtin.build
		r.Register("builtin."+string(kind), 0,
			func(spec FieldSpec) bool { return spec.Kind == kind },
			func(FieldSpec) control.Control { return build() },
		)
	}
}
