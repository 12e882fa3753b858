// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/bibcheck/internal/lint"
	"github.com/pdiddy/bibcheck/internal/similarity"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Searcher queries the remote metadata source for candidate works. The
// returned slice order is the source's relevance ranking. Retry and
// backoff are the implementation's responsibility; the processor treats
// any error as a failed search for that entry only.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

// ErrInsufficientData marks an entry that lacks the fields needed to
// build a search query. No search is attempted for such entries.
var ErrInsufficientData = errors.New("insufficient data to build search query")

// Processor validates entries one at a time against a Searcher.
type Processor struct {
	Searcher Searcher
	Config   types.ValidateConfig
}

// ProcessEntry validates one entry: builds the query, searches, matches,
// and reconciles. The entry is corrected in place when a candidate
// matches. A search failure is returned as an error alongside the invalid
// record so batch callers can log it without aborting.
func (p *Processor) ProcessEntry(ctx context.Context, entry *types.Entry) (types.Record, error) {
	rec := types.Record{Key: entry.Key, Verdict: types.VerdictInvalid}
	rec.Issues = lint.Check(entry).Problems()

	query := BuildQuery(entry)
	if query == "" {
		rec.Reason = "insufficient data"
		return rec, fmt.Errorf("%s: %w", entry.Key, ErrInsufficientData)
	}

	candidates, err := p.Searcher.Search(ctx, query)
	if err != nil {
		rec.Reason = fmt.Sprintf("search failed: %v", err)
		return rec, fmt.Errorf("searching for %s: %w", entry.Key, err)
	}

	candidate, score := Match(entry, candidates, p.Config)
	if candidate == nil {
		rec.Reason = "no match found"
		return rec, nil
	}

	rec.Confidence = score
	rec.Changes = Reconcile(entry, candidate, p.Config)
	if rec.Changed() {
		rec.Verdict = types.VerdictCorrected
	} else {
		rec.Verdict = types.VerdictValid
	}
	rec.Reason = ""
	return rec, nil
}

// BuildQuery derives the search string from an entry: the normalized
// title followed by the first author's surname. Returns "" when the entry
// has no usable title.
func BuildQuery(entry *types.Entry) string {
	title := similarity.Normalize(entry.Title())
	if title == "" {
		return ""
	}
	parts := []string{title}
	if authors := entry.Authors(); len(authors) > 0 {
		if s := firstAuthorSurname(authors[0]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// firstAuthorSurname extracts the surname from a BibTeX author name in
// either "Last, First" or "First Last" form.
func firstAuthorSurname(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return similarity.Normalize(name[:i])
	}
	name = similarity.Normalize(name)
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}

// BatchResult summarizes a validation run.
type BatchResult struct {
	Valid     int
	Corrected int
	Invalid   int
	Records   []types.Record
}

// Total returns the number of entries processed.
func (r BatchResult) Total() int { return r.Valid + r.Corrected + r.Invalid }

// ProcessAll validates entries sequentially in file order, printing a
// per-entry status line to w. A failure on one entry is logged and the
// batch continues; only the caller's configuration errors are fatal.
func (p *Processor) ProcessAll(ctx context.Context, entries []*types.Entry, w io.Writer) BatchResult {
	var result BatchResult
	for _, entry := range entries {
		rec, err := p.ProcessEntry(ctx, entry)
		if err != nil && !errors.Is(err, ErrInsufficientData) {
			fmt.Fprintf(w, "warning: %v\n", err)
		}

		switch rec.Verdict {
		case types.VerdictValid:
			result.Valid++
			fmt.Fprintf(w, "ok        %s (confidence %.2f)\n", rec.Key, rec.Confidence)
		case types.VerdictCorrected:
			result.Corrected++
			fmt.Fprintf(w, "corrected %s (%d field(s), confidence %.2f)\n", rec.Key, len(rec.Changes), rec.Confidence)
		default:
			result.Invalid++
			fmt.Fprintf(w, "invalid   %s (%s)\n", rec.Key, rec.Reason)
		}
		result.Records = append(result.Records, rec)
	}
	return result
}

// Throttle wraps a Searcher with a minimum delay between consecutive
// searches, respecting the remote API's rate limits. The first search is
// not delayed, and callers that never reach the network (e.g. a cache
// layered above the throttle) are unaffected.
func Throttle(s Searcher, delay time.Duration) Searcher {
	if delay <= 0 {
		return s
	}
	return &throttledSearcher{inner: s, delay: delay}
}

type throttledSearcher struct {
	inner Searcher
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

func (t *throttledSearcher) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	t.mu.Lock()
	wait := time.Duration(0)
	if !t.last.IsZero() {
		if elapsed := time.Since(t.last); elapsed < t.delay {
			wait = t.delay - elapsed
		}
	}
	t.mu.Unlock()

	if wait > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	t.mu.Lock()
	t.last = time.Now()
	t.mu.Unlock()

	return t.inner.Search(ctx, query)
}
