package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// --- mock searcher ---

type mockSearcher struct {
	candidates []types.Candidate
	err        error
	calls      int32
	lastQuery  string
}

func (m *mockSearcher) Search(_ context.Context, query string) ([]types.Candidate, error) {
	atomic.AddInt32(&m.calls, 1)
	m.lastQuery = query
	return m.candidates, m.err
}

func newProcessor(s Searcher) *Processor {
	return &Processor{Searcher: s, Config: testCfg()}
}

// --- query building ---

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		entry *types.Entry
		want  string
	}{
		{"title and surname", testEntry(), "deep learning for x smith"},
		{"last-first author", func() *types.Entry {
			e := testEntry()
			e.Set("author", "Smith, John")
			return e
		}(), "deep learning for x smith"},
		{"no author", func() *types.Entry {
			e := testEntry()
			delete(e.Fields, "author")
			return e
		}(), "deep learning for x"},
		{"no title", types.NewEntry("article", "empty"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.entry); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- per-entry flow ---

func TestProcessEntryInsufficientData(t *testing.T) {
	s := &mockSearcher{}
	entry := types.NewEntry("article", "notitle")
	entry.Set("author", "John Smith")

	rec, err := newProcessor(s).ProcessEntry(context.Background(), entry)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
	if rec.Verdict != types.VerdictInvalid || rec.Reason != "insufficient data" {
		t.Errorf("record = %+v", rec)
	}
	if atomic.LoadInt32(&s.calls) != 0 {
		t.Error("search was attempted for an unsearchable entry")
	}
}

func TestProcessEntrySearchFailure(t *testing.T) {
	s := &mockSearcher{err: fmt.Errorf("connection refused")}

	rec, err := newProcessor(s).ProcessEntry(context.Background(), testEntry())
	if err == nil {
		t.Fatal("expected a propagated search error")
	}
	if rec.Verdict != types.VerdictInvalid {
		t.Errorf("verdict = %q, want invalid", rec.Verdict)
	}
	if !strings.Contains(rec.Reason, "search failed") {
		t.Errorf("reason = %q", rec.Reason)
	}
}

func TestProcessEntryNoCandidates(t *testing.T) {
	s := &mockSearcher{}

	rec, err := newProcessor(s).ProcessEntry(context.Background(), testEntry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != types.VerdictInvalid || rec.Reason != "no match found" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", rec.Confidence)
	}
}

func TestProcessEntryValid(t *testing.T) {
	s := &mockSearcher{candidates: []types.Candidate{exactCandidate()}}

	rec, err := newProcessor(s).ProcessEntry(context.Background(), testEntry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != types.VerdictValid {
		t.Errorf("verdict = %q, want valid", rec.Verdict)
	}
	if rec.Confidence < 0.99 {
		t.Errorf("confidence = %f, want ~1.0", rec.Confidence)
	}
	if len(rec.Changes) != 0 {
		t.Errorf("changes = %v, want none", rec.Changes)
	}
}

func TestProcessEntryCorrected(t *testing.T) {
	entry := types.NewEntry("article", "smith2021deep")
	entry.Set("title", "Deep Lerning for X")
	entry.Set("author", "J. Smith")
	entry.Set("year", "2021")

	s := &mockSearcher{candidates: []types.Candidate{{
		Title:   "Deep Learning for X",
		Authors: []string{"John Smith"},
		Year:    2021,
		DOI:     "10.1000/xyz",
	}}}

	rec, err := newProcessor(s).ProcessEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != types.VerdictCorrected {
		t.Fatalf("verdict = %q, want corrected (record %+v)", rec.Verdict, rec)
	}

	if entry.Title() != "Deep Learning for X" {
		t.Errorf("title = %q, want the candidate's", entry.Title())
	}
	if entry.Get("author") != "John Smith" {
		t.Errorf("author = %q, want the candidate's", entry.Get("author"))
	}
	if entry.DOI() != "10.1000/xyz" {
		t.Errorf("doi = %q, want added", entry.DOI())
	}
	if entry.Year() != "2021" {
		t.Errorf("year = %q, want unchanged", entry.Year())
	}

	reasons := make(map[string]bool)
	for _, ch := range rec.Changes {
		reasons[ch.Reason] = true
	}
	for _, want := range []string{types.ReasonTitleMismatch, types.ReasonAuthorMismatch, types.ReasonDOIAdded} {
		if !reasons[want] {
			t.Errorf("missing change reason %q in %v", want, rec.Changes)
		}
	}
}

func TestProcessEntryWildlyDifferent(t *testing.T) {
	entry := testEntry()
	original := entry.Clone()

	s := &mockSearcher{candidates: []types.Candidate{
		{Title: "Soil Composition of the Andes", Authors: []string{"P. Alvarez"}},
		{Title: "A History of Naval Architecture", Authors: []string{"R. Brown"}},
	}}

	rec, err := newProcessor(s).ProcessEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Verdict != types.VerdictInvalid {
		t.Errorf("verdict = %q, want invalid", rec.Verdict)
	}
	for name, want := range original.Fields {
		if got := entry.Get(name); got != want {
			t.Errorf("field %s changed: %q -> %q", name, want, got)
		}
	}
}

// --- batch ---

func TestProcessAllContinuesPastFailures(t *testing.T) {
	good := testEntry()
	bad := types.NewEntry("article", "notitle")
	alsoGood := testEntry()
	alsoGood.Key = "smith2021again"

	s := &mockSearcher{candidates: []types.Candidate{exactCandidate()}}
	var buf bytes.Buffer

	result := newProcessor(s).ProcessAll(context.Background(), []*types.Entry{good, bad, alsoGood}, &buf)
	if result.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", result.Total())
	}
	if result.Valid != 2 || result.Invalid != 1 {
		t.Errorf("valid=%d invalid=%d, want 2/1", result.Valid, result.Invalid)
	}
	if len(result.Records) != 3 {
		t.Errorf("records = %d, want 3", len(result.Records))
	}
	out := buf.String()
	if !strings.Contains(out, "invalid   notitle") {
		t.Errorf("missing status line for the failed entry:\n%s", out)
	}
}

// --- throttle ---

type countingSearcher struct {
	times []time.Time
}

func (c *countingSearcher) Search(context.Context, string) ([]types.Candidate, error) {
	c.times = append(c.times, time.Now())
	return nil, nil
}

func TestThrottleDelaysBetweenSearches(t *testing.T) {
	inner := &countingSearcher{}
	s := Throttle(inner, 30*time.Millisecond)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := s.Search(ctx, "q"); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}

	if len(inner.times) != 3 {
		t.Fatalf("calls = %d, want 3", len(inner.times))
	}
	for i := 1; i < len(inner.times); i++ {
		if gap := inner.times[i].Sub(inner.times[i-1]); gap < 25*time.Millisecond {
			t.Errorf("gap %d = %v, want >= ~30ms", i, gap)
		}
	}
}

func TestThrottleZeroDelayPassthrough(t *testing.T) {
	inner := &countingSearcher{}
	if s := Throttle(inner, 0); s != Searcher(inner) {
		t.Error("zero delay should return the searcher unchanged")
	}
}

func TestThrottleContextCancelled(t *testing.T) {
	inner := &countingSearcher{}
	s := Throttle(inner, time.Hour)

	if _, err := s.Search(context.Background(), "first"); err != nil {
		t.Fatalf("first search: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Search(ctx, "second"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
