package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Comparison selects how role names and usernames are matched.
type Comparison string

// Available comparison policies.
const (
	// ComparisonOrdinal matches strings exactly, byte for byte.
	ComparisonOrdinal Comparison = "ordinal"

	// ComparisonIgnoreCase matches strings rune by rune under Unicode simple
	// case folding. Multi-rune foldings such as "ß" to "ss" do not apply.
	ComparisonIgnoreCase Comparison = "ignore_case"
)

// ComparisonFor returns the policy for a case-sensitivity flag.
func ComparisonFor(caseSensitive bool) Comparison {
	if caseSensitive {
		return ComparisonOrdinal
	}
	return ComparisonIgnoreCase
}

// ParseComparison parses a policy name. Matching is case-insensitive and
// accepts "-" in place of "_".
func ParseComparison(s string) (Comparison, error) {
	c := Comparison(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown comparison %q (want ordinal or ignore_case)", ErrInvalidInput, s)
	}
	return c, nil
}

// IsValid returns true if the comparison policy is recognised.
func (c Comparison) IsValid() bool {
	switch c {
	case ComparisonOrdinal, ComparisonIgnoreCase:
		return true
	default:
		return false
	}
}

// CaseSensitive reports whether the policy distinguishes letter case.
func (c Comparison) CaseSensitive() bool {
	return c != ComparisonIgnoreCase
}

// String returns the string representation.
func (c Comparison) String() string {
	return string(c)
}

// Description returns a human-readable description of the policy.
func (c Comparison) Description() string {
	switch c {
	case ComparisonOrdinal:
		return "Case-sensitive"
	case ComparisonIgnoreCase:
		return "Case-insensitive"
	default:
		return unknownDescription
	}
}

// Equal reports whether a and b match under the policy. Unknown policies
// compare ordinally.
func (c Comparison) Equal(a, b string) bool {
	if c != ComparisonIgnoreCase {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// Contains reports whether substr occurs within s under the policy.
func (c Comparison) Contains(s, substr string) bool {
	if c != ComparisonIgnoreCase {
		return strings.Contains(s, substr)
	}
	return strings.Contains(foldString(s), foldString(substr))
}

// IndexOf returns the index of the first element of list equal to s, or -1.
func (c Comparison) IndexOf(list []string, s string) int {
	for i := range list {
		if c.Equal(list[i], s) {
			return i
		}
	}
	return -1
}

// IndexOfRole returns the index of the role named name, or -1.
func (c Comparison) IndexOfRole(roles []Role, name string) int {
	for i := range roles {
		if c.Equal(roles[i].Name, name) {
			return i
		}
	}
	return -1
}

// foldString maps every rune to the smallest rune of its simple case
// folding orbit. The result has the same number of runes as s.
func foldString(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	lowest := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lowest {
			lowest = f
		}
	}
	return lowest
}
