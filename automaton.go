package dfamin

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a deterministic, possibly partial, automaton. States are integers and must be
// created using CreateState; symbols are integers in [0, numSymbols). Each (state, symbol) pair has at
// most one destination; a missing entry means the automaton rejects on that symbol. The start state is
// optional: an automaton without start accepts the empty language.
type Automaton struct {
	numStates  int
	numSymbols int

	// Start state, or -1 if this automaton has none.
	start int

	isAccept *bitset.BitSet

	// Dense table with numSymbols slots per state; slot state*numSymbols+symbol holds the destination,
	// or -1 if no transition is defined.
	transitions []int

	numTransitions int
}

// Transition A single edge of an Automaton.
type Transition struct {
	Source int
	Symbol int
	Dest   int
}

func NewAutomaton(numSymbols int) *Automaton {
	return NewAutomatonV1(numSymbols, 2)
}

func NewAutomatonV1(numSymbols, numStates int) *Automaton {
	if numSymbols < 0 {
		numSymbols = 0
	}
	return &Automaton{
		numSymbols:  numSymbols,
		start:       -1,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numStates*numSymbols),
	}
}

// CreateState Create a new state.
func (a *Automaton) CreateState() int {
	state := a.numStates
	a.numStates++
	for i := 0; i < a.numSymbols; i++ {
		a.transitions = append(a.transitions, -1)
	}
	return state
}

// SetStart Set the start state; -1 removes it.
func (a *Automaton) SetStart(state int) error {
	if state != -1 && !a.validState(state) {
		return fmt.Errorf("start state (%d) out of range", state)
	}
	a.start = state
	return nil
}

// GetStart Returns the start state, or -1 if there is none.
func (a *Automaton) GetStart() int {
	return a.start
}

// HasStart Returns true if this automaton has a start state.
func (a *Automaton) HasStart() bool {
	return a.start != -1
}

// SetAccept Set or clear this state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// Returns accept states. If the bit is set then that state is an accept state.
func (a *Automaton) getAcceptStates() *bitset.BitSet {
	return a.isAccept
}

// GetNumAccept How many accept states this automaton has.
func (a *Automaton) GetNumAccept() int {
	return int(a.isAccept.Count())
}

// AddTransition Add a new transition from source to dest on symbol. Adding the same transition twice is
// a no-op; adding a second, different destination for the same (source, symbol) is an error because
// it would make the automaton nondeterministic.
func (a *Automaton) AddTransition(source, symbol, dest int) error {
	if !a.validState(source) {
		return fmt.Errorf("source state (%d) out of range", source)
	}
	if !a.validState(dest) {
		return fmt.Errorf("dest state (%d) out of range", dest)
	}
	if symbol < 0 || symbol >= a.numSymbols {
		return fmt.Errorf("symbol (%d) out of range", symbol)
	}

	slot := source*a.numSymbols + symbol
	switch existing := a.transitions[slot]; existing {
	case -1:
		a.transitions[slot] = dest
		a.numTransitions++
	case dest:
	default:
		return fmt.Errorf("state (%d) already has a transition on symbol (%d) to (%d)", source, symbol, existing)
	}
	return nil
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return a.numStates
}

// GetNumSymbols Size of the alphabet.
func (a *Automaton) GetNumSymbols() int {
	return a.numSymbols
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return a.numTransitions
}

// GetNumTransitionsWithState How many transitions leave this state.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	count := 0
	for _, dest := range a.row(state) {
		if dest != -1 {
			count++
		}
	}
	return count
}

// Step Performs lookup in transitions.
// Returns: destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(state, symbol int) int {
	if symbol < 0 || symbol >= a.numSymbols || !a.validState(state) {
		return -1
	}
	return a.transitions[state*a.numSymbols+symbol]
}

// Transitions Iterates over the transitions leaving state, in symbol order.
func (a *Automaton) Transitions(state int) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for symbol, dest := range a.row(state) {
			if dest == -1 {
				continue
			}
			if !yield(Transition{Source: state, Symbol: symbol, Dest: dest}) {
				return
			}
		}
	}
}

func (a *Automaton) row(state int) []int {
	if !a.validState(state) {
		return nil
	}
	offset := state * a.numSymbols
	return a.transitions[offset : offset+a.numSymbols]
}

func (a *Automaton) validState(state int) bool {
	return state >= 0 && state < a.GetNumStates()
}

// predecessors builds the reverse transition relation: slot symbol*n+dest lists every source with a
// transition on symbol into dest.
func (a *Automaton) predecessors() [][]int {
	n := a.GetNumStates()
	pred := make([][]int, n*a.numSymbols)
	for s := 0; s < n; s++ {
		for t := range a.Transitions(s) {
			slot := t.Symbol*n + t.Dest
			pred[slot] = append(pred[slot], s)
		}
	}
	return pred
}

// restrict builds a new automaton holding only the states set in keep, renumbered in increasing order.
// Transitions survive when both ends are kept. The second return value maps every new state to the
// state of a it came from.
func (a *Automaton) restrict(keep *bitset.BitSet) (*Automaton, []int) {
	numStates := a.GetNumStates()
	mp := make([]int, numStates)
	origin := make([]int, 0, keep.Count())

	result := NewAutomatonV1(a.numSymbols, int(keep.Count()))
	for i := 0; i < numStates; i++ {
		mp[i] = -1
		if keep.Test(uint(i)) {
			mp[i] = result.CreateState()
			result.SetAccept(mp[i], a.IsAccept(i))
			origin = append(origin, i)
		}
	}

	for _, i := range origin {
		for t := range a.Transitions(i) {
			if mp[t.Dest] == -1 {
				continue
			}
			// Both ends exist in result and the source row is fresh, so this cannot fail.
			_ = result.AddTransition(mp[i], t.Symbol, mp[t.Dest])
		}
	}

	if a.HasStart() && mp[a.start] != -1 {
		result.start = mp[a.start]
	}
	return result, origin
}

func (a *Automaton) String() string {
	return fmt.Sprintf("Automaton{states: %d, symbols: %d, transitions: %d, accept: %d, start: %d}",
		a.GetNumStates(), a.numSymbols, a.numTransitions, a.GetNumAccept(), a.start)
}
