package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	ab, err := defaultAutomata.MakeString(2, []int{0, 1})
	assert.Nil(t, err)
	any2, err := defaultAutomata.MakeAnyString(2)
	assert.Nil(t, err)

	type args struct {
		a    *Automaton
		word []int
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"exact word", args{ab, []int{0, 1}}, true},
		{"prefix only", args{ab, []int{0}}, false},
		{"missing transition", args{ab, []int{1}}, false},
		{"too long", args{ab, []int{0, 1, 1}}, false},
		{"symbol out of range", args{ab, []int{0, 7}}, false},
		{"any string empty word", args{any2, nil}, true},
		{"any string", args{any2, []int{1, 0, 0, 1}}, true},
		{"empty language", args{defaultAutomata.MakeEmpty(2), nil}, false},
		{"empty string only", args{defaultAutomata.MakeEmptyString(2), nil}, true},
		{"empty string only rejects more", args{defaultAutomata.MakeEmptyString(2), []int{0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, Run(tt.args.a, tt.args.word), "Run(%v, %v)", tt.args.a, tt.args.word)
		})
	}
}
