package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chain builds states 0..n-1 over one symbol with the given edges, start and accept states.
func chain(t *testing.T, n int, start int, accept []int, edges [][2]int) *Automaton {
	t.Helper()
	a := NewAutomaton(1)
	for i := 0; i < n; i++ {
		a.CreateState()
	}
	assert.Nil(t, a.SetStart(start))
	for _, s := range accept {
		a.SetAccept(s, true)
	}
	for _, e := range edges {
		assert.Nil(t, a.AddTransition(e[0], 0, e[1]))
	}
	return a
}

func TestIsEmptyAutomaton(t *testing.T) {
	t.Run("no states", func(t *testing.T) {
		assert.True(t, IsEmptyAutomaton(defaultAutomata.MakeEmpty(2)))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.False(t, IsEmptyAutomaton(defaultAutomata.MakeEmptyString(2)))
	})

	t.Run("any string", func(t *testing.T) {
		a, err := defaultAutomata.MakeAnyString(2)
		assert.Nil(t, err)
		assert.False(t, IsEmptyAutomaton(a))
	})

	t.Run("accept state unreachable", func(t *testing.T) {
		a := chain(t, 3, 0, []int{2}, [][2]int{{0, 1}, {1, 1}})
		assert.True(t, IsEmptyAutomaton(a))
	})

	t.Run("accept state reachable", func(t *testing.T) {
		a := chain(t, 3, 0, []int{2}, [][2]int{{0, 1}, {1, 2}})
		assert.False(t, IsEmptyAutomaton(a))
	})

	t.Run("no start", func(t *testing.T) {
		a := chain(t, 1, 0, []int{0}, nil)
		assert.Nil(t, a.SetStart(-1))
		assert.True(t, IsEmptyAutomaton(a))
	})
}

func TestRemoveUnreachable(t *testing.T) {
	t.Run("drops states the start cannot reach", func(t *testing.T) {
		// 3 -> 0 -> 1 -> 1, 2 isolated
		a := chain(t, 4, 0, []int{1, 2}, [][2]int{{3, 0}, {0, 1}, {1, 1}})
		r, origin := RemoveUnreachable(a)

		assert.Equal(t, []int{0, 1}, origin)
		assert.Equal(t, 2, r.GetNumStates())
		assert.Equal(t, 0, r.GetStart())
		assert.False(t, r.IsAccept(0))
		assert.True(t, r.IsAccept(1))
		assert.Equal(t, 1, r.GetNumAccept())
		assert.Equal(t, 2, r.GetNumTransitions())
	})

	t.Run("no transitions reduces to the start", func(t *testing.T) {
		a := chain(t, 3, 1, []int{0}, nil)
		r, origin := RemoveUnreachable(a)

		assert.Equal(t, []int{1}, origin)
		assert.Equal(t, 1, r.GetNumStates())
		assert.Equal(t, 0, r.GetStart())
		assert.Equal(t, 0, r.GetNumAccept())
	})
}

func TestRemoveDeadStates(t *testing.T) {
	t.Run("drops states that cannot reach an accept state", func(t *testing.T) {
		// 0 -> 1 -> 2(accept), 0 is also wired to 3 which loops forever
		a := NewAutomaton(2)
		for i := 0; i < 4; i++ {
			a.CreateState()
		}
		assert.Nil(t, a.SetStart(0))
		a.SetAccept(2, true)
		assert.Nil(t, a.AddTransition(0, 0, 1))
		assert.Nil(t, a.AddTransition(0, 1, 3))
		assert.Nil(t, a.AddTransition(1, 0, 2))
		assert.Nil(t, a.AddTransition(3, 0, 3))

		r, origin := RemoveDeadStates(a)
		assert.Equal(t, []int{0, 1, 2}, origin)
		assert.Equal(t, 0, r.GetStart())
		assert.Equal(t, 1, r.Step(0, 0))
		assert.Equal(t, -1, r.Step(0, 1))
		assert.Equal(t, 2, r.GetNumTransitions())
	})

	t.Run("unproductive start is removed", func(t *testing.T) {
		a := chain(t, 3, 0, []int{2}, [][2]int{{0, 1}, {2, 2}})
		r, origin := RemoveDeadStates(a)

		assert.Equal(t, []int{2}, origin)
		assert.False(t, r.HasStart())
		assert.True(t, r.IsAccept(0))
	})

	t.Run("no accept states leaves nothing", func(t *testing.T) {
		a := chain(t, 3, 0, nil, [][2]int{{0, 1}, {1, 2}})
		r, origin := RemoveDeadStates(a)

		assert.Empty(t, origin)
		assert.Equal(t, 0, r.GetNumStates())
		assert.False(t, r.HasStart())
	})

	t.Run("long backward chain", func(t *testing.T) {
		edges := make([][2]int, 0)
		for i := 0; i < 99; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
		a := chain(t, 100, 0, []int{99}, edges)
		r, _ := RemoveDeadStates(a)
		assert.Equal(t, 100, r.GetNumStates())
	})
}
