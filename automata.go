package dfamin

type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton with the empty language: no states and no start.
func (*Automata) MakeEmpty(numSymbols int) *Automaton {
	return NewAutomaton(numSymbols)
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(numSymbols int) *Automaton {
	a := NewAutomaton(numSymbols)
	s := a.CreateState()
	a.SetAccept(s, true)
	_ = a.SetStart(s)
	return a
}

// MakeAnyString
// Returns a new automaton that accepts all strings over its symbols.
func (*Automata) MakeAnyString(numSymbols int) (*Automaton, error) {
	a := NewAutomaton(numSymbols)
	s := a.CreateState()
	a.SetAccept(s, true)
	if err := a.SetStart(s); err != nil {
		return nil, err
	}
	for c := 0; c < numSymbols; c++ {
		if err := a.AddTransition(s, c, s); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MakeString
// Returns a new automaton that accepts exactly the given word.
func (*Automata) MakeString(numSymbols int, word []int) (*Automaton, error) {
	a := NewAutomaton(numSymbols)
	s := a.CreateState()
	if err := a.SetStart(s); err != nil {
		return nil, err
	}
	for _, c := range word {
		next := a.CreateState()
		if err := a.AddTransition(s, c, next); err != nil {
			return nil, err
		}
		s = next
	}
	a.SetAccept(s, true)
	return a, nil
}
