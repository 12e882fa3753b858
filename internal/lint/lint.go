// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint runs offline format checks on BibTeX entries: required
// fields, author separators, year/volume/pages shapes, and DOI prefixes.
// Lint needs no network access and never modifies an entry.
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Issue is one format problem found in an entry.
type Issue struct {
	Field   string `json:"field" yaml:"field"`
	Problem string `json:"problem" yaml:"problem"`
}

// Issues is the lint result for one entry.
type Issues []Issue

// Problems renders the issues as "field: problem" strings for reporting.
func (is Issues) Problems() []string {
	if len(is) == 0 {
		return nil
	}
	out := make([]string, len(is))
	for i, issue := range is {
		out[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Problem)
	}
	return out
}

// Fields required for an @article entry to be resolvable.
var requiredArticleFields = []string{"title", "author", "journal", "year"}

var (
	yearRe   = regexp.MustCompile(`^\d{4}$`)
	volumeRe = regexp.MustCompile(`^\d+$`)
	pagesRe  = regexp.MustCompile(`^\d+\s*(--?\s*\d+)?$`)
)

// Check runs all format rules against one entry.
func Check(entry *types.Entry) Issues {
	var issues Issues
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Problem: fmt.Sprintf(format, args...)})
	}

	if strings.EqualFold(entry.Type, "article") {
		for _, f := range requiredArticleFields {
			if !entry.Has(f) {
				add(f, "required field is missing")
			}
		}
	}

	if raw := entry.Get("author"); strings.TrimSpace(raw) != "" {
		if strings.Contains(raw, ";") {
			add("author", `names separated with ";" instead of "and"`)
		} else if !strings.Contains(raw, " and ") && strings.Count(raw, ",") > 1 {
			// "Smith, J., Jones, M." style lists have more commas than a
			// single "Last, First" name would.
			add("author", `multiple names without "and" separators`)
		}
	}

	if y := strings.TrimSpace(entry.Year()); y != "" && !yearRe.MatchString(y) {
		add("year", "not a 4-digit year: %q", y)
	}

	if v := strings.TrimSpace(entry.Get("volume")); v != "" && !volumeRe.MatchString(v) {
		add("volume", "not numeric: %q", v)
	}

	if p := strings.TrimSpace(entry.Get("pages")); p != "" && !pagesRe.MatchString(p) {
		add("pages", "not a numeric page range: %q", p)
	}

	if d := strings.TrimSpace(entry.DOI()); d != "" && !strings.HasPrefix(d, "10.") {
		add("doi", `does not start with "10.": %q`, d)
	}

	return issues
}
