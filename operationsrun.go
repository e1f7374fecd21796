package dfamin

// Run Returns true if the automaton accepts the word, a sequence of symbols. A missing transition
// rejects; an automaton without start state rejects everything.
func Run(a *Automaton, word []int) bool {
	state := a.GetStart()
	if state == -1 {
		return false
	}
	for _, symbol := range word {
		nextState := a.Step(state, symbol)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}
