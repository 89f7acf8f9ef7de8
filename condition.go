package finitex

import (
	"fmt"

	"go.uber.org/zap"
)

// Predicate decides whether an event satisfies a condition. It receives
// the owning automaton so implementations may consult its state, but must
// not mutate it.
type Predicate func(owner *Automaton, ev Event) bool

// OK is the always-satisfied condition kind.
func OK(*Automaton, Event) bool {
	return true
}

// Condition is one declared branch out of a state: a named predicate bound
// to exactly one automaton instance. The table is keyed by Condition
// identity, so attaching the same kind twice yields two distinct branches.
type Condition struct {
	owner *Automaton
	kind  string
	test  Predicate
}

// When attaches a new condition of the given kind to the automaton. The
// automaton's table is untouched until the condition is committed with
// Then.
func (a *Automaton) When(kind string, test Predicate) *Condition {
	a.logger.Debug("condition attached",
		zap.String("state", string(a.state)),
		zap.String("condition", kind))
	return &Condition{owner: a, kind: kind, test: test}
}

// Owner returns the automaton the condition was declared against.
func (c *Condition) Owner() *Automaton {
	return c.owner
}

// Kind returns the condition's declared kind name.
func (c *Condition) Kind() string {
	return c.kind
}

// Then commits a transition of the given kind under the condition,
// inserting the pair into the owning automaton's table. Committing the
// same Condition instance twice fails with ErrDuplicateCondition and
// leaves the table unchanged.
func (c *Condition) Then(kind string, act Action) (*Transition, error) {
	if _, exists := c.owner.table[c]; exists {
		return nil, fmt.Errorf("state %q, condition %q: %w", c.owner.state, c.kind, ErrDuplicateCondition)
	}

	t := &Transition{owner: c.owner, kind: kind, action: act}
	c.owner.table[c] = t
	c.owner.order = append(c.owner.order, c)

	c.owner.logger.Debug("transition committed",
		zap.String("state", string(c.owner.state)),
		zap.String("condition", c.kind),
		zap.String("transition", kind))
	return t, nil
}

func (c *Condition) String() string {
	return fmt.Sprintf("%s@%s", c.kind, c.owner.state)
}
