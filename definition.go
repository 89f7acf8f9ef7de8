package finitex

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Registry maps kind names to the predicates and actions a Definition may
// reference. The built-in kinds "ok" (always satisfied) and "noop" (no
// action) are pre-registered.
type Registry struct {
	conditions  map[string]Predicate
	transitions map[string]Action
}

// NewRegistry creates a registry with the built-in kinds.
func NewRegistry() *Registry {
	return &Registry{
		conditions:  map[string]Predicate{"ok": OK},
		transitions: map[string]Action{"noop": Noop},
	}
}

// RegisterCondition adds a named condition kind. Registering a name twice
// is an error.
func (r *Registry) RegisterCondition(name string, test Predicate) error {
	if _, exists := r.conditions[name]; exists {
		return fmt.Errorf("condition kind %q already registered", name)
	}
	r.conditions[name] = test
	return nil
}

// RegisterTransition adds a named transition kind. Registering a name
// twice is an error.
func (r *Registry) RegisterTransition(name string, act Action) error {
	if _, exists := r.transitions[name]; exists {
		return fmt.Errorf("transition kind %q already registered", name)
	}
	r.transitions[name] = act
	return nil
}

// Branch is one declared edge out of a state. Exactly one of When (a
// registered condition kind) or On (an event literal the incoming event
// must equal) selects the condition; Do names the transition kind and
// defaults to "noop"; To names the target state.
type Branch struct {
	When string `yaml:"when,omitempty"`
	On   Event  `yaml:"on,omitempty"`
	Do   string `yaml:"do,omitempty"`
	To   State  `yaml:"to"`
}

// Definition is a declarative automaton graph, typically parsed from a
// YAML document:
//
//	id: door
//	start: start
//	states:
//	  start:
//	    - on: push
//	      do: unlatch
//	      to: open
//	  open:
//	    - on: close
//	      to: finish
type Definition struct {
	ID     string             `yaml:"id"`
	Start  State              `yaml:"start"`
	States map[State][]Branch `yaml:"states"`
}

// ParseDefinition unmarshals and validates a YAML definition document.
func ParseDefinition(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks structural soundness: a declared start state, exactly
// one condition selector per branch, known targets (declared states or
// Finish), and no branches out of Finish.
func (d *Definition) Validate() error {
	if d.Start == "" {
		return errors.New("definition: start state is required")
	}
	if len(d.States) == 0 {
		return errors.New("definition: states map is required and cannot be empty")
	}
	if _, ok := d.States[d.Start]; !ok {
		return fmt.Errorf("definition: start state %q not declared", d.Start)
	}
	if len(d.States[Finish]) > 0 {
		return fmt.Errorf("definition: state %q cannot declare branches", Finish)
	}

	for state, branches := range d.States {
		for i, b := range branches {
			if (b.When == "") == (b.On == "") {
				return fmt.Errorf("definition: state %q branch %d: exactly one of when/on is required", state, i)
			}
			if b.To == "" {
				return fmt.Errorf("definition: state %q branch %d: target state is required", state, i)
			}
			if _, ok := d.States[b.To]; !ok && b.To != Finish {
				return fmt.Errorf("definition: state %q branch %d: unknown target state %q", state, i, b.To)
			}
		}
	}
	return nil
}

// Build constructs the automaton instance graph through the declaration
// operations, one automaton per declared state, and returns the start
// automaton. Shared and cyclic targets reuse the same instance. Kinds
// referenced by branches must exist in the registry.
func (d *Definition) Build(reg *Registry, opts ...Option) (*Automaton, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	autos := make(map[State]*Automaton, len(d.States)+1)
	for state := range d.States {
		autos[state] = Begin(state, opts...)
	}
	if _, ok := autos[Finish]; !ok {
		autos[Finish] = Begin(Finish, opts...)
	}

	for state, branches := range d.States {
		for i, b := range branches {
			test, kind, err := d.resolveCondition(reg, b)
			if err != nil {
				return nil, fmt.Errorf("definition: state %q branch %d: %w", state, i, err)
			}
			act, doKind, err := d.resolveTransition(reg, b)
			if err != nil {
				return nil, fmt.Errorf("definition: state %q branch %d: %w", state, i, err)
			}

			t, err := autos[state].When(kind, test).Then(doKind, act)
			if err != nil {
				return nil, err
			}
			if err := t.ToAutomaton(autos[b.To]); err != nil {
				return nil, err
			}
		}
	}
	return autos[d.Start], nil
}

func (d *Definition) resolveCondition(reg *Registry, b Branch) (Predicate, string, error) {
	if b.On != "" {
		want := b.On
		test := func(_ *Automaton, ev Event) bool { return ev == want }
		return test, fmt.Sprintf("on:%s", want), nil
	}
	test, ok := reg.conditions[b.When]
	if !ok {
		return nil, "", fmt.Errorf("unknown condition kind %q", b.When)
	}
	return test, b.When, nil
}

func (d *Definition) resolveTransition(reg *Registry, b Branch) (Action, string, error) {
	kind := b.Do
	if kind == "" {
		kind = "noop"
	}
	act, ok := reg.transitions[kind]
	if !ok {
		return nil, "", fmt.Errorf("unknown transition kind %q", kind)
	}
	return act, kind, nil
}
