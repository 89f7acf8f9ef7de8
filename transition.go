package finitex

import (
	"fmt"

	"go.uber.org/zap"
)

// Action is the side effect run while moving between states. It takes no
// input and produces no value; the move itself is decided entirely by the
// condition that matched.
type Action func()

// Noop is the transition kind with no action.
func Noop() {}

// Transition is a named action bound to the automaton it moves away from,
// plus the successor automaton it leads to. The successor is assigned
// exactly once at declaration time.
type Transition struct {
	owner  *Automaton
	kind   string
	action Action
	next   *Automaton
}

// Owner returns the automaton the transition moves away from.
func (t *Transition) Owner() *Automaton {
	return t.owner
}

// Kind returns the transition's declared kind name.
func (t *Transition) Kind() string {
	return t.kind
}

// Next returns the bound successor, or nil if the transition has not been
// bound yet.
func (t *Transition) Next() *Automaton {
	return t.next
}

// To binds the transition's successor: a brand-new automaton of the same
// variant as the owner, in the target state, with an empty table. Binding
// twice fails with ErrTransitionAlreadyBound and leaves the original
// successor in place. Returns the successor so declaration can continue
// from it.
func (t *Transition) To(state State) (*Automaton, error) {
	if t.next != nil {
		return nil, fmt.Errorf("state %q, transition %q: %w", t.owner.state, t.kind, ErrTransitionAlreadyBound)
	}
	t.next = t.owner.cloneAt(state)

	t.owner.logger.Debug("successor bound",
		zap.String("from", string(t.owner.state)),
		zap.String("transition", t.kind),
		zap.String("to", string(state)))
	return t.next, nil
}

// ToAutomaton binds the successor to an existing instance instead of a
// fresh clone. This is the explicit opt-in for convergent edges and
// cycles; the one-shot binding rule still applies.
func (t *Transition) ToAutomaton(next *Automaton) error {
	if t.next != nil {
		return fmt.Errorf("state %q, transition %q: %w", t.owner.state, t.kind, ErrTransitionAlreadyBound)
	}
	t.next = next

	t.owner.logger.Debug("successor bound",
		zap.String("from", string(t.owner.state)),
		zap.String("transition", t.kind),
		zap.String("to", string(next.state)))
	return nil
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s@%s", t.kind, t.owner.state)
}
