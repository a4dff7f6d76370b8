package gmsec

import "strconv"

// parseFloatLoose parses s as a float64, used for Dependency numeric
// comparisons (spec.md §3 "Dependency" greaterThan/lessThan).
func parseFloatLoose(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
