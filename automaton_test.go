package finitex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finitex/finitex"
	"github.com/finitex/finitex/testutil"
)

func TestBeginFreshAutomaton(t *testing.T) {
	a := finitex.Begin(finitex.Start)

	assert.Equal(t, finitex.Start, a.State())
	assert.False(t, a.Finished())
	assert.Equal(t, 0, a.Conditions())
}

func TestFinishedOnlyInFinish(t *testing.T) {
	assert.True(t, finitex.Begin(finitex.Finish).Finished())
	assert.False(t, finitex.Begin(finitex.Start).Finished())
	assert.False(t, finitex.Begin(finitex.State("waiting")).Finished())
}

func TestStepSingleMatchAdvances(t *testing.T) {
	rec := &testutil.Recorder{}

	root := finitex.Begin(finitex.Start)
	tr, err := root.When("ok", finitex.OK).Then("count", rec.Action())
	require.NoError(t, err)
	_, err = tr.To(finitex.Finish)
	require.NoError(t, err)

	// The structure is event-agnostic: any event must advance to Finish.
	for _, ev := range []finitex.Event{"x", "y", "z"} {
		next, err := root.Step(ev)
		require.NoError(t, err)
		assert.Equal(t, finitex.Finish, next.State())
		assert.True(t, next.Finished())
		assert.Equal(t, 0, next.Conditions())
	}
	assert.Equal(t, 3, rec.Actions())
}

func TestStepSuccessorHasEmptyTable(t *testing.T) {
	root := finitex.Begin(finitex.Start)
	tr, err := root.When("ok", finitex.OK).Then("noop", finitex.Noop)
	require.NoError(t, err)
	_, err = tr.To(finitex.Finish)
	require.NoError(t, err)

	next, err := root.Step("x")
	require.NoError(t, err)

	// The successor declared no branches of its own, so stepping it fails.
	_, err = next.Step("x")
	require.ErrorIs(t, err, finitex.ErrNoSatisfiedCondition)
}

func TestStepEmptyTableNoSatisfiedCondition(t *testing.T) {
	a := finitex.Begin(finitex.Start)

	for _, ev := range []finitex.Event{"a", "b", ""} {
		_, err := a.Step(ev)
		require.ErrorIs(t, err, finitex.ErrNoSatisfiedCondition)
	}
}

func TestStepNoMatchingCondition(t *testing.T) {
	rec := &testutil.Recorder{}

	root := finitex.Begin(finitex.Start)
	tr, err := root.When("never", rec.Predicate(false)).Then("count", rec.Action())
	require.NoError(t, err)
	_, err = tr.To(finitex.Finish)
	require.NoError(t, err)

	_, err = root.Step("x")
	require.ErrorIs(t, err, finitex.ErrNoSatisfiedCondition)
	assert.Equal(t, 1, rec.Evals())
	assert.Equal(t, 0, rec.Actions())
}

func TestStepAmbiguousConditionsRunsNoAction(t *testing.T) {
	rec := &testutil.Recorder{}

	root := finitex.Begin(finitex.Start)

	tr1, err := root.When("ok", finitex.OK).Then("count", rec.Action())
	require.NoError(t, err)
	_, err = tr1.To(finitex.Finish)
	require.NoError(t, err)

	// Second branch of a structurally identical kind; distinct instance.
	tr2, err := root.When("ok", finitex.OK).Then("count", rec.Action())
	require.NoError(t, err)
	_, err = tr2.To(finitex.Finish)
	require.NoError(t, err)

	_, err = root.Step("x")
	require.ErrorIs(t, err, finitex.ErrAmbiguousConditions)
	assert.Equal(t, 0, rec.Actions())
}

func TestStepUnboundTransition(t *testing.T) {
	rec := &testutil.Recorder{}

	root := finitex.Begin(finitex.Start)
	_, err := root.When("ok", finitex.OK).Then("count", rec.Action())
	require.NoError(t, err)

	_, err = root.Step("x")
	require.ErrorIs(t, err, finitex.ErrTransitionNotBound)
	assert.Equal(t, 0, rec.Actions())
}

func TestPredicateSeesOwnerState(t *testing.T) {
	inStart := func(owner *finitex.Automaton, _ finitex.Event) bool {
		return owner.State() == finitex.Start
	}

	root := finitex.Begin(finitex.Start)
	tr, err := root.When("in-start", inStart).Then("noop", finitex.Noop)
	require.NoError(t, err)
	mid, err := tr.To(finitex.State("mid"))
	require.NoError(t, err)

	next, err := root.Step("x")
	require.NoError(t, err)
	assert.Same(t, mid, next)

	// Same predicate kind declared on mid no longer matches there.
	tr2, err := mid.When("in-start", inStart).Then("noop", finitex.Noop)
	require.NoError(t, err)
	_, err = tr2.To(finitex.Finish)
	require.NoError(t, err)

	_, err = mid.Step("x")
	require.ErrorIs(t, err, finitex.ErrNoSatisfiedCondition)
}

func TestCloneCarriesVariantForward(t *testing.T) {
	var cloned []finitex.State
	variant := func(src *finitex.Automaton, state finitex.State) *finitex.Automaton {
		cloned = append(cloned, state)
		return finitex.Begin(state, finitex.WithClone(func(s *finitex.Automaton, st finitex.State) *finitex.Automaton {
			cloned = append(cloned, st)
			return finitex.Begin(st)
		}))
	}

	root := finitex.Begin(finitex.Start, finitex.WithClone(variant))
	tr, err := root.When("ok", finitex.OK).Then("noop", finitex.Noop)
	require.NoError(t, err)
	mid, err := tr.To(finitex.State("mid"))
	require.NoError(t, err)

	tr2, err := mid.When("ok", finitex.OK).Then("noop", finitex.Noop)
	require.NoError(t, err)
	_, err = tr2.To(finitex.Finish)
	require.NoError(t, err)

	assert.Equal(t, []finitex.State{"mid", finitex.Finish}, cloned)
}

func TestStepConcurrentReadersSameInstance(t *testing.T) {
	root := finitex.Begin(finitex.Start)
	tr, err := root.When("ok", finitex.OK).Then("noop", finitex.Noop)
	require.NoError(t, err)
	_, err = tr.To(finitex.Finish)
	require.NoError(t, err)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			next, err := root.Step("x")
			if err == nil && !next.Finished() {
				err = finitex.ErrNoSatisfiedCondition
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
