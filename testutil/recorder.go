// Package testutil provides instrumented predicates and actions for
// asserting on automaton behavior in tests.
package testutil

import (
	"sync/atomic"

	"github.com/finitex/finitex"
)

// Recorder counts predicate evaluations and action invocations so tests
// can assert exactly how often a branch was consulted and fired.
type Recorder struct {
	evals   atomic.Int64
	actions atomic.Int64
}

// Predicate wraps a fixed verdict in an eval-counting predicate.
func (r *Recorder) Predicate(verdict bool) finitex.Predicate {
	return func(*finitex.Automaton, finitex.Event) bool {
		r.evals.Add(1)
		return verdict
	}
}

// PredicateFunc wraps an arbitrary predicate with eval counting.
func (r *Recorder) PredicateFunc(test finitex.Predicate) finitex.Predicate {
	return func(a *finitex.Automaton, ev finitex.Event) bool {
		r.evals.Add(1)
		return test(a, ev)
	}
}

// Action returns an invocation-counting action.
func (r *Recorder) Action() finitex.Action {
	return func() {
		r.actions.Add(1)
	}
}

// Evals returns how many times recorded predicates were evaluated.
func (r *Recorder) Evals() int {
	return int(r.evals.Load())
}

// Actions returns how many times recorded actions were invoked.
func (r *Recorder) Actions() int {
	return int(r.actions.Load())
}
