package dfamin

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Minimize
// Minimizes the given automaton using Hopcroft's algorithm. Unreachable and dead states are removed
// first. The result is the unique minimal automaton for the language of a, numbered canonically: state
// 0 is the start state and the others follow in breadth-first order over symbols. Output state i stands
// for blocks[i], a block of states of a.
func Minimize(a *Automaton) (*Automaton, []*Block) {
	if IsEmptyAutomaton(a) {
		// Fastmatch for common case
		return defaultAutomata.MakeEmpty(a.GetNumSymbols()), nil
	}

	reachable, reachableOrigin := RemoveUnreachable(a)
	clean, cleanOrigin := RemoveDeadStates(reachable)

	partition := Hopcroft(clean)
	result, blocks := rebuild(clean, partition)

	// Express blocks in terms of the states of a.
	for i, block := range blocks {
		members := make([]int, 0, block.Size())
		for _, s := range block.GetArray() {
			members = append(members, reachableOrigin[cleanOrigin[s]])
		}
		blocks[i] = NewBlock(members)
	}
	return result, blocks
}

// Hopcroft
// Computes the coarsest partition of the states of a that separates accept from non-accept states and
// is stable under every symbol: two states share a block iff no string distinguishes them. Blocks are
// returned in no particular order.
func Hopcroft(a *Automaton) []*Block {
	numStates := a.GetNumStates()
	numSymbols := a.GetNumSymbols()
	if numStates == 0 {
		return nil
	}

	r := &refiner{
		blockOf:    make([]int, numStates),
		inWorkList: bitset.New(2),
	}

	accept := make([]int, 0, numStates)
	reject := make([]int, 0, numStates)
	for s := 0; s < numStates; s++ {
		if a.IsAccept(s) {
			accept = append(accept, s)
		} else {
			reject = append(reject, s)
		}
	}
	for _, initial := range [][]int{accept, reject} {
		if len(initial) > 0 {
			r.push(r.add(NewBlock(initial)))
		}
	}

	pred := a.predecessors()
	x := bitset.New(uint(numStates))
	splitters := make([]int, 0, numStates)
	touched := make([]int, 0)
	hits := make([][]int, 0)

	for len(r.workList) > 0 {
		splitter := r.pop()
		// Snapshot: splits below replace r.partition entries, never this block.
		members := r.partition[splitter].GetArray()

		for c := 0; c < numSymbols; c++ {
			x.ClearAll()
			splitters = splitters[:0]
			for _, s := range members {
				for _, p := range pred[c*numStates+s] {
					if !x.Test(uint(p)) {
						x.Set(uint(p))
						splitters = append(splitters, p)
					}
				}
			}
			if len(splitters) == 0 {
				continue
			}

			hits = grow(hits, len(r.partition))
			for _, s := range splitters {
				y := r.blockOf[s]
				if len(hits[y]) == 0 {
					touched = append(touched, y)
				}
				hits[y] = append(hits[y], s)
			}

			for _, y := range touched {
				in := hits[y]
				hits[y] = in[:0]
				if len(in) == r.partition[y].Size() {
					continue
				}
				r.split(y, in, x)
			}
			touched = touched[:0]
		}
	}

	return r.partition
}

type refiner struct {
	partition  []*Block
	blockOf    []int
	workList   []int
	inWorkList *bitset.BitSet
}

func (r *refiner) add(b *Block) int {
	id := len(r.partition)
	r.partition = append(r.partition, b)
	for _, s := range b.GetArray() {
		r.blockOf[s] = id
	}
	return id
}

func (r *refiner) push(id int) {
	r.workList = append(r.workList, id)
	r.inWorkList.Set(uint(id))
}

func (r *refiner) pop() int {
	id := r.workList[len(r.workList)-1]
	r.workList = r.workList[:len(r.workList)-1]
	r.inWorkList.Clear(uint(id))
	return id
}

// split replaces block y by the states in it that are in x and, under a new id, the states that are
// not. If y was waiting on the work list both pieces now wait there; otherwise only the smaller one
// does, the piece inside x on a tie.
func (r *refiner) split(y int, in []int, x *bitset.BitSet) {
	members := r.partition[y].GetArray()
	out := make([]int, 0, len(members)-len(in))
	for _, s := range members {
		if !x.Test(uint(s)) {
			out = append(out, s)
		}
	}

	inside := NewBlock(in)
	r.partition[y] = inside
	z := r.add(NewBlock(out))

	switch {
	case r.inWorkList.Test(uint(y)):
		r.push(z)
	case inside.Size() <= len(out):
		r.push(y)
	default:
		r.push(z)
	}
}

// rebuild collapses every block of partition into one state. The block holding the start state becomes
// state 0 and the rest are numbered in breadth-first order; blocks unreachable from the start, which a
// cleaned automaton never has, follow ordered by their smallest member.
func rebuild(a *Automaton, partition []*Block) (*Automaton, []*Block) {
	numSymbols := a.GetNumSymbols()
	blockOf := make([]int, a.GetNumStates())
	for i, block := range partition {
		for _, s := range block.GetArray() {
			blockOf[s] = i
		}
	}

	order := make([]int, 0, len(partition))
	newState := make([]int, len(partition))
	for i := range newState {
		newState[i] = -1
	}
	visit := func(b int) {
		if newState[b] == -1 {
			newState[b] = len(order)
			order = append(order, b)
		}
	}

	if a.HasStart() {
		visit(blockOf[a.GetStart()])
		for i := 0; i < len(order); i++ {
			representative := partition[order[i]].Min()
			for t := range a.Transitions(representative) {
				visit(blockOf[t.Dest])
			}
		}
	}
	rest := make([]int, 0)
	for b := range partition {
		if newState[b] == -1 {
			rest = append(rest, b)
		}
	}
	slices.SortFunc(rest, func(i, j int) int {
		return partition[i].Min() - partition[j].Min()
	})
	for _, b := range rest {
		visit(b)
	}

	result := NewAutomatonV1(numSymbols, len(order))
	blocks := make([]*Block, len(order))
	for i, b := range order {
		result.CreateState()
		blocks[i] = partition[b]
	}
	for i, b := range order {
		// Every member of a block agrees on acceptance and on the target block of each symbol, so any
		// one of them stands for the whole block.
		representative := partition[b].Min()
		result.SetAccept(i, a.IsAccept(representative))
		for t := range a.Transitions(representative) {
			_ = result.AddTransition(i, t.Symbol, newState[blockOf[t.Dest]])
		}
	}
	if a.HasStart() {
		result.start = 0
	}
	return result, blocks
}

func grow[T any](s []T, size int) []T {
	if len(s) >= size {
		return s
	}
	var empty T
	add := size - len(s)
	for i := 0; i < add; i++ {
		s = append(s, empty)
	}
	return s
}
