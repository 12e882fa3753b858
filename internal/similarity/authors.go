// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import "strings"

// surnameFloor is the minimum score for a name pair whose surnames agree.
// It keeps "J. Smith" close to "John Smith" even though the edit distance
// between the full strings is large.
const surnameFloor = 0.85

// AuthorMatch compares two author lists order-insensitively. Each name in
// the shorter list is scored against its most similar name in the longer
// list, independently of the other names, and the per-name scores are
// averaged. Scoring each name independently keeps the result invariant
// under reordering of either list. Two empty lists score 1.0; one empty
// list scores 0.0.
func AuthorMatch(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	shorter, longer := normalizeNames(a), normalizeNames(b)
	if len(shorter) == 0 && len(longer) == 0 {
		return 1.0
	}
	if len(shorter) == 0 || len(longer) == 0 {
		return 0.0
	}
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	total := 0.0
	for _, name := range shorter {
		best := 0.0
		for _, other := range longer {
			if s := nameSimilarity(name, other); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(shorter))
}

// nameSimilarity scores two normalized names. Surname agreement sets a
// floor on the score so initials-only given names still pair up.
func nameSimilarity(a, b string) float64 {
	s := Ratio(a, b)
	if s < surnameFloor && surname(a) != "" && surname(a) == surname(b) {
		return surnameFloor
	}
	return s
}

// normalizeNames normalizes each name and reorders "Last, First" to
// "First Last" so both BibTeX author conventions compare equal.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if i := strings.Index(n, ","); i >= 0 {
			n = strings.TrimSpace(n[i+1:]) + " " + strings.TrimSpace(n[:i])
		}
		if n = Normalize(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// surname returns the last token of a normalized name.
func surname(name string) string {
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}
