package finitex

import "errors"

var (
	// ErrDuplicateCondition is returned when the same Condition instance is
	// committed into its automaton's table a second time.
	ErrDuplicateCondition = errors.New("condition already committed")

	// ErrTransitionAlreadyBound is returned when a Transition's successor is
	// bound more than once.
	ErrTransitionAlreadyBound = errors.New("transition already bound")

	// ErrNoSatisfiedCondition is returned by Step when an event satisfies none
	// of the conditions declared for the current state.
	ErrNoSatisfiedCondition = errors.New("no satisfied condition")

	// ErrAmbiguousConditions is returned by Step when an event satisfies more
	// than one declared condition. The declaration is non-deterministic; no
	// action runs.
	ErrAmbiguousConditions = errors.New("multiple satisfied conditions")

	// ErrTransitionNotBound is returned by Step when the matched transition
	// was committed but its successor was never bound.
	ErrTransitionNotBound = errors.New("transition not bound")

	// ErrOutOfEvents is returned by Run when the event source is exhausted
	// before the automaton reaches Finish.
	ErrOutOfEvents = errors.New("event source exhausted")
)
