// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"strconv"
	"strings"

	"github.com/pdiddy/bibcheck/internal/similarity"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Reconcile rewrites entry fields from a matched candidate and returns a
// change log. The candidate is treated as ground truth once matched: any
// detected title or author difference triggers replacement, journal names
// tolerate abbreviation up to cfg.JournalThreshold, and volume/pages
// prefer the candidate when both sides disagree. The DOI is additive-only:
// an existing local DOI is never overwritten, even when it differs, so a
// locally verified identifier cannot be clobbered.
func Reconcile(entry *types.Entry, c *types.Candidate, cfg types.ValidateConfig) []types.FieldChange {
	var changes []types.FieldChange

	record := func(field, newValue, reason string) {
		old := entry.Get(field)
		entry.Set(field, newValue)
		changes = append(changes, types.FieldChange{
			Field:  field,
			Old:    old,
			New:    newValue,
			Reason: reason,
		})
	}

	if c.Title != "" && similarity.Ratio(entry.Title(), c.Title) < 1.0 {
		record("title", c.Title, types.ReasonTitleMismatch)
	}

	if len(c.Authors) > 0 && similarity.AuthorMatch(entry.Authors(), c.Authors) < 1.0 {
		record("author", strings.Join(c.Authors, " and "), types.ReasonAuthorMismatch)
	}

	if c.Journal != "" && similarity.Ratio(entry.Journal(), c.Journal) < cfg.JournalThreshold {
		record(journalField(entry), c.Journal, types.ReasonJournalMismatch)
	}

	if c.Year > 0 {
		year := strconv.Itoa(c.Year)
		switch {
		case !entry.Has("year"):
			record("year", year, types.ReasonYearMissing)
		case strings.TrimSpace(entry.Year()) != year:
			record("year", year, types.ReasonYearMismatch)
		}
	}

	if c.Volume != "" && strings.TrimSpace(entry.Get("volume")) != c.Volume {
		record("volume", c.Volume, types.ReasonVolumePagesUpdate)
	}
	if c.Pages != "" && !pagesEqual(entry.Get("pages"), c.Pages) {
		record("pages", c.Pages, types.ReasonVolumePagesUpdate)
	}

	if !entry.Has("doi") && c.DOI != "" {
		record("doi", c.DOI, types.ReasonDOIAdded)
	}

	return changes
}

// journalField returns the field the container name lives in: booktitle
// for entries that use it, journal otherwise.
func journalField(entry *types.Entry) string {
	if entry.Has("booktitle") && !entry.Has("journal") {
		return "booktitle"
	}
	return "journal"
}

// pagesEqual compares page ranges ignoring the en-dash convention, so
// "117--132" equals "117-132".
func pagesEqual(a, b string) bool {
	normalize := func(s string) string {
		s = strings.TrimSpace(s)
		for strings.Contains(s, "--") {
			s = strings.ReplaceAll(s, "--", "-")
		}
		return s
	}
	return normalize(a) == normalize(b)
}
