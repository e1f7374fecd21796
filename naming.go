package dfamin

import (
	"slices"
	"strings"
)

// BlockName renders a block of state labels to its canonical name: the labels sorted numerically if
// all of them are numeric, lexically otherwise, and joined with sep.
func BlockName(labels []string, sep string) string {
	sorted := slices.Clone(labels)
	sortLabels(sorted)
	return strings.Join(sorted, sep)
}

// CompareLabels orders two labels numerically when both are non-empty strings of ASCII digits and
// lexically otherwise. Numerically equal labels such as "1" and "01" fall back to lexical order.
func CompareLabels(a, b string) int {
	if isNumeric(a) && isNumeric(b) {
		ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			return len(ta) - len(tb)
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// sortLabels sorts in place, numerically when every label is numeric.
func sortLabels(labels []string) {
	if allNumeric(labels) {
		slices.SortFunc(labels, CompareLabels)
		return
	}
	slices.Sort(labels)
}

func allNumeric(labels []string) bool {
	for _, l := range labels {
		if !isNumeric(l) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// uniqueNames makes names distinct by appending primes to later duplicates.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		for {
			if _, ok := seen[name]; !ok {
				break
			}
			name += "'"
		}
		seen[name] = struct{}{}
		names[i] = name
	}
	return names
}
