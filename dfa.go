package dfamin

import (
	"maps"
	"slices"
)

type options struct {
	lenient   bool
	separator string
}

type Option func(*options)

// WithLenientReferences makes Load drop references outside the declared states and alphabet instead of
// failing: such finals and transitions are ignored, and an undeclared start leaves the automaton
// without start state.
func WithLenientReferences() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// WithSeparator sets the string placed between member labels in the name of a merged state. The
// default is the empty string.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DFA pairs an Automaton with the labels its states and symbols were interned from: state i is
// States[i] and symbol c is Alphabet[c].
type DFA struct {
	Automaton *Automaton
	States    []string
	Alphabet  []string
}

// Load validates d and interns it into a DFA. States and symbols are deduplicated and numbered in
// label order, so equal descriptions always load to equal automata.
func Load(d *Description, opts ...Option) (*DFA, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts...)

	states := uniqueLabels(d.States)
	alphabet := uniqueLabels(d.Alphabet)
	stateID := indexOf(states)
	symbolID := indexOf(alphabet)

	a := NewAutomatonV1(len(alphabet), len(states))
	for range states {
		a.CreateState()
	}

	start, ok := stateID[*d.Start]
	switch {
	case ok:
		_ = a.SetStart(start)
	case !o.lenient:
		return nil, &PreconditionError{Key: "start", Label: *d.Start, Reason: "not a declared state"}
	}

	for _, label := range d.Final {
		s, ok := stateID[label]
		if !ok {
			if o.lenient {
				continue
			}
			return nil, &PreconditionError{Key: "final", Label: label, Reason: "not a declared state"}
		}
		a.SetAccept(s, true)
	}

	for _, source := range slices.Sorted(maps.Keys(d.Transitions)) {
		row := d.Transitions[source]
		s, ok := stateID[source]
		if !ok {
			if o.lenient {
				continue
			}
			return nil, &PreconditionError{Key: "transitions", Label: source, Reason: "source is not a declared state"}
		}
		for _, symbol := range slices.Sorted(maps.Keys(row)) {
			dest := row[symbol]
			c, ok := symbolID[symbol]
			if !ok {
				if o.lenient {
					continue
				}
				return nil, &PreconditionError{Key: "transitions", Label: symbol, Reason: "symbol is not in the alphabet"}
			}
			t, ok := stateID[dest]
			if !ok {
				if o.lenient {
					continue
				}
				return nil, &PreconditionError{Key: "transitions", Label: dest, Reason: "target is not a declared state"}
			}
			if err := a.AddTransition(s, c, t); err != nil {
				return nil, err
			}
		}
	}

	return &DFA{Automaton: a, States: states, Alphabet: alphabet}, nil
}

// Minimize returns the minimal DFA for the language of d. Each state is named after the labels of the
// original states it merges; see BlockName.
func (d *DFA) Minimize(opts ...Option) *DFA {
	o := newOptions(opts...)

	minimal, blocks := Minimize(d.Automaton)
	names := make([]string, len(blocks))
	for i, block := range blocks {
		labels := make([]string, 0, block.Size())
		for _, s := range block.GetArray() {
			labels = append(labels, d.States[s])
		}
		names[i] = BlockName(labels, o.separator)
	}

	return &DFA{
		Automaton: minimal,
		States:    uniqueNames(names),
		Alphabet:  slices.Clone(d.Alphabet),
	}
}

// Accepts reports whether d accepts the word. A symbol outside the alphabet rejects.
func (d *DFA) Accepts(word ...string) bool {
	symbolID := indexOf(d.Alphabet)
	symbols := make([]int, len(word))
	for i, label := range word {
		c, ok := symbolID[label]
		if !ok {
			return false
		}
		symbols[i] = c
	}
	return Run(d.Automaton, symbols)
}

// Describe renders d back into its record form. States without outgoing transitions have no entry in
// Transitions.
func (d *DFA) Describe() *Description {
	a := d.Automaton
	desc := &Description{
		States:      slices.Clone(d.States),
		Alphabet:    slices.Clone(d.Alphabet),
		Transitions: make(map[string]map[string]string),
		Final:       make([]string, 0, a.GetNumAccept()),
	}
	if desc.States == nil {
		desc.States = []string{}
	}
	if desc.Alphabet == nil {
		desc.Alphabet = []string{}
	}
	if a.HasStart() {
		start := d.States[a.GetStart()]
		desc.Start = &start
	}

	for s := 0; s < a.GetNumStates(); s++ {
		if a.IsAccept(s) {
			desc.Final = append(desc.Final, d.States[s])
		}
		for t := range a.Transitions(s) {
			row, ok := desc.Transitions[d.States[s]]
			if !ok {
				row = make(map[string]string)
				desc.Transitions[d.States[s]] = row
			}
			row[d.Alphabet[t.Symbol]] = d.States[t.Dest]
		}
	}
	return desc
}

// MinimizeDescription runs the whole pipeline: Load, Minimize, Describe.
func MinimizeDescription(d *Description, opts ...Option) (*Description, error) {
	dfa, err := Load(d, opts...)
	if err != nil {
		return nil, err
	}
	return dfa.Minimize(opts...).Describe(), nil
}

func uniqueLabels(labels []string) []string {
	unique := slices.Clone(labels)
	sortLabels(unique)
	return slices.Compact(unique)
}

func indexOf(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return index
}
