// Package render turns analysis results and job listings into HTML fragments
// and terminal blocks.
package render

import "fmt"

// Pluralize picks the Polish grammatical number form for n.
func Pluralize(n int, singular, few, many string) string {
	if n == 1 {
		return singular
	}
	lastDigit, lastTwo := n%10, n%100
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwo < 10 || lastTwo >= 20) {
		return few
	}
	return many
}

// Years renders a year count with the matching noun, e.g. "3 lata".
func Years(n int) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, "rok", "lata", "lat"))
}

// ExperienceLine is the combined total/branch experience sentence.
func ExperienceLine(total, branch int) string {
	return fmt.Sprintf("%s (w tym %s w branży)", Years(total), Years(branch))
}
