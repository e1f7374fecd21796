package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockName(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		sep    string
		want   string
	}{
		{"single", []string{"q0"}, "", "q0"},
		{"lexical", []string{"q2", "q10", "q1"}, "", "q1q10q2"},
		{"numeric", []string{"10", "2", "1"}, "", "1210"},
		{"mixed falls back to lexical", []string{"10", "2", "a"}, "", "102a"},
		{"separator", []string{"b", "a"}, ",", "a,b"},
		{"leading zeros", []string{"010", "9"}, "-", "9-010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockName(tt.labels, tt.sep))
		})
	}
}

func TestBlockName_DoesNotReorderInput(t *testing.T) {
	labels := []string{"b", "a"}
	BlockName(labels, "")
	assert.Equal(t, []string{"b", "a"}, labels)
}

func TestCompareLabels(t *testing.T) {
	assert.Negative(t, CompareLabels("2", "10"))
	assert.Positive(t, CompareLabels("b", "a"))
	assert.Negative(t, CompareLabels("01", "1"))
	assert.Zero(t, CompareLabels("7", "7"))
	assert.Positive(t, CompareLabels("9", "10a"))
}

func TestUniqueNames(t *testing.T) {
	assert.Equal(t, []string{"12", "12'", "3"}, uniqueNames([]string{"12", "12", "3"}))
	assert.Equal(t, []string{"a", "a'", "a''"}, uniqueNames([]string{"a", "a'", "a"}))
}
