package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutomaton_AddTransition(t *testing.T) {
	t.Run("step follows transitions", func(t *testing.T) {
		a := NewAutomaton(2)
		s0 := a.CreateState()
		s1 := a.CreateState()
		assert.Nil(t, a.SetStart(s0))
		assert.Nil(t, a.AddTransition(s0, 0, s1))
		assert.Nil(t, a.AddTransition(s1, 1, s0))

		assert.Equal(t, s1, a.Step(s0, 0))
		assert.Equal(t, -1, a.Step(s0, 1))
		assert.Equal(t, s0, a.Step(s1, 1))
		assert.Equal(t, 2, a.GetNumTransitions())
		assert.Equal(t, 1, a.GetNumTransitionsWithState(s0))
	})

	t.Run("same transition twice is a no-op", func(t *testing.T) {
		a := NewAutomaton(1)
		s := a.CreateState()
		assert.Nil(t, a.AddTransition(s, 0, s))
		assert.Nil(t, a.AddTransition(s, 0, s))
		assert.Equal(t, 1, a.GetNumTransitions())
	})

	t.Run("second destination is rejected", func(t *testing.T) {
		a := NewAutomaton(1)
		s0 := a.CreateState()
		s1 := a.CreateState()
		assert.Nil(t, a.AddTransition(s0, 0, s0))
		assert.NotNil(t, a.AddTransition(s0, 0, s1))
		assert.Equal(t, s0, a.Step(s0, 0))
	})

	t.Run("out of range", func(t *testing.T) {
		a := NewAutomaton(1)
		s := a.CreateState()
		assert.NotNil(t, a.AddTransition(s, 1, s))
		assert.NotNil(t, a.AddTransition(s, 0, 5))
		assert.NotNil(t, a.AddTransition(-1, 0, s))
		assert.NotNil(t, a.SetStart(3))
		assert.Equal(t, -1, a.Step(7, 0))
	})
}

func TestAutomaton_Start(t *testing.T) {
	a := NewAutomaton(1)
	assert.False(t, a.HasStart())
	assert.Equal(t, -1, a.GetStart())

	s := a.CreateState()
	assert.Nil(t, a.SetStart(s))
	assert.True(t, a.HasStart())

	assert.Nil(t, a.SetStart(-1))
	assert.False(t, a.HasStart())
}

func TestAutomaton_Transitions(t *testing.T) {
	a := NewAutomaton(3)
	s0 := a.CreateState()
	s1 := a.CreateState()
	assert.Nil(t, a.AddTransition(s0, 2, s1))
	assert.Nil(t, a.AddTransition(s0, 0, s0))

	var got []Transition
	for tr := range a.Transitions(s0) {
		got = append(got, tr)
	}
	assert.Equal(t, []Transition{
		{Source: s0, Symbol: 0, Dest: s0},
		{Source: s0, Symbol: 2, Dest: s1},
	}, got)

	for range a.Transitions(s1) {
		t.Fatal("s1 has no transitions")
	}
}

func TestAutomaton_NoSymbols(t *testing.T) {
	a := NewAutomaton(0)
	s0 := a.CreateState()
	s1 := a.CreateState()
	assert.Equal(t, 2, a.GetNumStates())
	assert.Equal(t, 1, s1-s0)
	assert.Equal(t, 0, a.GetNumTransitionsWithState(s0))
}

func TestAutomaton_restrict(t *testing.T) {
	a := NewAutomaton(1)
	for i := 0; i < 4; i++ {
		a.CreateState()
	}
	assert.Nil(t, a.SetStart(1))
	a.SetAccept(3, true)
	assert.Nil(t, a.AddTransition(1, 0, 3))
	assert.Nil(t, a.AddTransition(3, 0, 2))
	assert.Nil(t, a.AddTransition(0, 0, 1))

	keep := getLiveStatesFromInitial(a)
	r, origin := a.restrict(keep)

	assert.Equal(t, []int{1, 2, 3}, origin)
	assert.Equal(t, 3, r.GetNumStates())
	assert.Equal(t, 0, r.GetStart())
	assert.True(t, r.IsAccept(2))
	assert.Equal(t, 2, r.Step(0, 0))
	assert.Equal(t, 1, r.Step(2, 0))
	assert.Equal(t, 2, r.GetNumTransitions())
}
