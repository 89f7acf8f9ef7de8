package finitex

import "fmt"

// Flow is a fluent wrapper over the explicit declaration operations
// (When, Then, To) that defers errors so a branch reads as a single
// chain:
//
//	next := NewFlow(root).When("ok", OK).Then("noop", Noop).To(Finish).Automaton()
//
// The first error encountered is sticky: every later call is a no-op and
// Err returns it. The one-shot constraints of the underlying operations
// are unchanged.
type Flow struct {
	automaton *Automaton
	condition *Condition
	pending   *Transition
	err       error
}

// NewFlow starts a declaration chain from the given automaton.
func NewFlow(a *Automaton) *Flow {
	return &Flow{automaton: a}
}

// When attaches a condition of the given kind to the current automaton.
func (f *Flow) When(kind string, test Predicate) *Flow {
	if f.err != nil {
		return f
	}
	if f.condition != nil {
		f.err = fmt.Errorf("flow: condition %q not committed before When(%q)", f.condition.kind, kind)
		return f
	}
	f.condition = f.automaton.When(kind, test)
	return f
}

// Then commits a transition of the given kind under the attached
// condition.
func (f *Flow) Then(kind string, act Action) *Flow {
	if f.err != nil {
		return f
	}
	if f.condition == nil {
		f.err = fmt.Errorf("flow: Then(%q) without a condition", kind)
		return f
	}
	f.pending, f.err = f.condition.Then(kind, act)
	f.condition = nil
	return f
}

// To binds the committed transition to a fresh successor in the target
// state and moves the chain to that successor, so further When calls
// declare from it.
func (f *Flow) To(state State) *Flow {
	if f.err != nil {
		return f
	}
	if f.pending == nil {
		f.err = fmt.Errorf("flow: To(%q) without a transition", state)
		return f
	}
	f.automaton, f.err = f.pending.To(state)
	f.pending = nil
	return f
}

// ToAutomaton binds the committed transition to an existing instance and
// moves the chain there.
func (f *Flow) ToAutomaton(next *Automaton) *Flow {
	if f.err != nil {
		return f
	}
	if f.pending == nil {
		f.err = fmt.Errorf("flow: ToAutomaton without a transition")
		return f
	}
	f.err = f.pending.ToAutomaton(next)
	if f.err == nil {
		f.automaton = next
	}
	f.pending = nil
	return f
}

// Automaton returns the automaton the chain currently declares from (the
// latest bound successor), or nil if the chain has failed.
func (f *Flow) Automaton() *Automaton {
	if f.err != nil {
		return nil
	}
	return f.automaton
}

// Err returns the first error encountered by the chain, if any.
func (f *Flow) Err() error {
	return f.err
}
