// Package sizes normalizes and compares the size labels the source uses.
// Labels arrive in wildly inconsistent shapes ("L-R", "l r", "LR"), so
// comparison always goes through Normalize first.
package sizes

import "strings"

// Normalize collapses a size label to its canonical comparison form:
// uppercase with hyphens and spaces stripped, e.g. "l-r" -> "LR".
func Normalize(label string) string {
	upper := strings.ToUpper(label)
	upper = strings.ReplaceAll(upper, "-", "")

	return strings.ReplaceAll(upper, " ", "")
}

// Matches reports whether a label satisfies a filter. After normalization
// the two either match exactly or the label starts with the filter, so a
// bare "L" filter matches the compound "L-R". The prefix rule is
// deliberately permissive: a numeric filter like "30" also matches
// "30-R" and "30-S" without distinguishing inseam. That imprecision is a
// known property of the rule, not something callers should work around.
func Matches(label, filter string) bool {
	normLabel := Normalize(label)
	normFilter := Normalize(filter)

	return normLabel == normFilter || strings.HasPrefix(normLabel, normFilter)
}
