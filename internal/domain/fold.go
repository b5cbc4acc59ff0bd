package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldCase returns the Unicode case-folded form of s, for case-insensitive comparison.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return FoldCase(a) == FoldCase(b)
}

// ContainsFold reports whether substr occurs in s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldCase(s), FoldCase(substr))
}
