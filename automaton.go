// Package finitex declares and executes finite-state automata.
//
// An automaton graph is built incrementally: starting from Begin, each
// declared branch attaches a named condition, commits a named transition
// under it, and binds the transition to a successor state. Stepping an
// automaton evaluates its conditions against one event, requires exactly
// one match, runs the matched transition's action, and returns the bound
// successor. All declaration and evaluation errors are programming
// defects; nothing is retried or recovered internally.
package finitex

import (
	"fmt"

	"go.uber.org/zap"
)

// State is an opaque member of a caller-defined finite set. Values are
// compared by equality only; no ordering is implied.
type State string

// Reserved states. Start is the conventional root of a declaration;
// Finish marks an automaton as terminal.
const (
	Start  State = "start"
	Finish State = "finish"
)

// Event is an opaque input value presented to Step. The framework never
// inspects it beyond handing it to condition predicates.
type Event string

// CloneFunc produces the successor instance created when a transition is
// bound to a new state. Implementations let callers carry variant-specific
// behavior forward through the graph; they must return an automaton in the
// given state with an empty table.
type CloneFunc func(src *Automaton, state State) *Automaton

// Option configures an Automaton created by Begin. Options propagate to
// every successor produced by binding.
type Option func(*Automaton)

// WithLogger sets the logger used for declaration and step traces.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Automaton) {
		a.logger = l
	}
}

// WithClone overrides how successor automata are created when a transition
// is bound to a new state.
func WithClone(fn CloneFunc) Option {
	return func(a *Automaton) {
		a.cloneFn = fn
	}
}

// Automaton is a value in one state together with its transition table.
// The state is fixed at construction; the table is mutated only while
// declaring, never while stepping, so concurrent Step calls on the same
// instance are safe once declaration is done.
type Automaton struct {
	state State

	// Table keyed by Condition identity. Two structurally identical
	// conditions are distinct branches. order preserves declaration
	// order for deterministic evaluation.
	table map[*Condition]*Transition
	order []*Condition

	logger  *zap.Logger
	cloneFn CloneFunc
}

// Begin creates a fresh automaton in the given state with an empty table.
// Declarations conventionally start from Begin(Start).
func Begin(state State, opts ...Option) *Automaton {
	a := &Automaton{
		state:  state,
		table:  make(map[*Condition]*Transition),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the automaton's state.
func (a *Automaton) State() State {
	return a.state
}

// Finished reports whether the automaton is terminal, i.e. in Finish.
func (a *Automaton) Finished() bool {
	return a.state == Finish
}

// Conditions returns the number of declared branches.
func (a *Automaton) Conditions() int {
	return len(a.order)
}

// cloneAt produces the successor automaton for a newly bound state: same
// variant as the source, given state, empty table.
func (a *Automaton) cloneAt(state State) *Automaton {
	if a.cloneFn != nil {
		return a.cloneFn(a, state)
	}
	return Begin(state, WithLogger(a.logger))
}

// Step advances the automaton by one event. Every condition in the table
// is evaluated in declaration order; exactly one must be satisfied. The
// matched transition's action runs and the bound successor is returned.
// Zero matches fail with ErrNoSatisfiedCondition, several with
// ErrAmbiguousConditions (no action runs in either case).
func (a *Automaton) Step(ev Event) (*Automaton, error) {
	var matched *Condition
	count := 0
	for _, c := range a.order {
		if !c.test(a, ev) {
			continue
		}
		count++
		if matched == nil {
			matched = c
		}
	}

	switch {
	case count == 0:
		return nil, fmt.Errorf("state %q, event %q: %w", a.state, ev, ErrNoSatisfiedCondition)
	case count > 1:
		return nil, fmt.Errorf("state %q, event %q: %d matches: %w", a.state, ev, count, ErrAmbiguousConditions)
	}

	t := a.table[matched]
	if t.next == nil {
		return nil, fmt.Errorf("state %q, condition %q, transition %q: %w", a.state, matched.kind, t.kind, ErrTransitionNotBound)
	}

	a.logger.Debug("step",
		zap.String("from", string(a.state)),
		zap.String("event", string(ev)),
		zap.String("condition", matched.kind),
		zap.String("transition", t.kind),
		zap.String("to", string(t.next.state)))

	t.action()
	return t.next, nil
}
