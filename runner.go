package finitex

import "fmt"

// EventSource supplies the next input event for a run. The second return
// value reports whether an event was produced; false means the source is
// exhausted.
type EventSource func() (Event, bool)

// SliceSource returns an EventSource that yields the given events in
// order, then reports exhaustion.
func SliceSource(events ...Event) EventSource {
	i := 0
	return func() (Event, bool) {
		if i >= len(events) {
			return "", false
		}
		ev := events[i]
		i++
		return ev, true
	}
}

// Run drives the automaton with events from the source until it reaches
// Finish, returning the terminal automaton. A Step failure aborts the run
// with that error; an exhausted source before Finish fails with
// ErrOutOfEvents. An automaton that is already finished returns
// immediately without pulling any event.
func Run(a *Automaton, next EventSource) (*Automaton, error) {
	for !a.Finished() {
		ev, ok := next()
		if !ok {
			return nil, fmt.Errorf("state %q: %w", a.State(), ErrOutOfEvents)
		}
		var err error
		a, err = a.Step(ev)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}
