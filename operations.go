package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumStates() == 0 || !a.HasStart() {
		// Common case: no states
		return true
	}

	start := a.GetStart()
	if a.IsAccept(start) {
		// Apparently common case: it accepts the empty string
		return false
	}
	if a.GetNumTransitionsWithState(start) == 0 {
		// Common case: just one initial state
		return true
	}

	live := getLiveStatesFromInitial(a)
	acceptStates := a.getAcceptStates()
	return live.IntersectionCardinality(acceptStates) == 0
}

// RemoveUnreachable
// Returns a new automaton holding only the states reachable from the start state, together with the
// origin map from new states to states of a. The start state is preserved; without a start state
// nothing is reachable.
func RemoveUnreachable(a *Automaton) (*Automaton, []int) {
	return a.restrict(getLiveStatesFromInitial(a))
}

// RemoveDeadStates
// Returns a new automaton holding only productive states, the states from which some accept state can
// be reached, together with the origin map from new states to states of a. If the start state is not
// productive the result has no start; with no accept states the result has no states at all.
func RemoveDeadStates(a *Automaton) (*Automaton, []int) {
	return a.restrict(getLiveStatesToAccept(a))
}

// Forward closure from the start state.
func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 || !a.HasStart() {
		return live
	}

	workList := make([]int, 0, numStates)
	live.Set(uint(a.GetStart()))
	workList = append(workList, a.GetStart())

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for t := range a.Transitions(s) {
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

// Backward closure from the accept states over the reversed transition relation.
func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 {
		return live
	}

	reverse := make([][]int, numStates)
	for s := 0; s < numStates; s++ {
		for t := range a.Transitions(s) {
			reverse[t.Dest] = append(reverse[t.Dest], s)
		}
	}

	workList := make([]int, 0, numStates)
	acceptStates := a.getAcceptStates()
	for s, ok := acceptStates.NextSet(0); ok && int(s) < numStates; s, ok = acceptStates.NextSet(s + 1) {
		live.Set(s)
		workList = append(workList, int(s))
	}

	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		for _, prev := range reverse[s] {
			if !live.Test(uint(prev)) {
				live.Set(uint(prev))
				workList = append(workList, prev)
			}
		}
	}

	return live
}
