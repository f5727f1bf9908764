// internal/grammar/normalize.go
//
// Answer-comparison normalization. Two forms compare equal when they differ
// only in Unicode composition of the same accented letter, surrounding
// whitespace, or letter case. A missing accent is a different letter and
// compares unequal.

package grammar

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a conjugated form for comparison:
// NFC composition, trimmed whitespace, full Unicode case fold.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(norm.NFC.String(s)))
}

// FormsEqual reports whether two conjugated forms are equal after
// normalization.
func FormsEqual(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
