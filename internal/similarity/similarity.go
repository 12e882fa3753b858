// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity scores how alike two pieces of citation text are.
// All comparisons run over normalized text: case-folded, accent-folded,
// LaTeX markup stripped, punctuation and whitespace collapsed. Scores are
// in [0,1] and symmetric.
package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Ratio returns the normalized Levenshtein similarity between a and b.
// Two empty strings score 1.0; exactly one empty string scores 0.0.
func Ratio(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(na, nb)
	maxLen := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > maxLen {
		maxLen = l
	}

	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0.0
	}
	return score
}

// Normalize prepares citation text for comparison. It strips LaTeX
// commands and grouping braces, decomposes accented characters and drops
// the combining marks, lowercases, and maps every remaining non-alphanumeric
// rune to a space before collapsing runs of whitespace.
func Normalize(s string) string {
	s = stripLaTeX(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from a decomposed accent
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripLaTeX removes backslash commands and grouping characters common in
// BibTeX values, e.g. {\"o} becomes o and \emph{Deep} becomes Deep.
func stripLaTeX(s string) string {
	if !strings.ContainsAny(s, `\{}$~`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}', '$':
			// grouping and math-mode delimiters
		case '~':
			b.WriteRune(' ')
		case '\\':
			if i+1 >= len(runes) {
				break
			}
			next := runes[i+1]
			if unicode.IsLetter(next) {
				// Skip the whole command name (\emph, \textbf, ...).
				for i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
					i++
				}
			} else {
				// Accent escapes like \'e or \"o: drop the modifier,
				// keep the letter it decorates.
				i++
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
