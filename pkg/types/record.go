// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Verdict classifies the outcome of validating one entry.
type Verdict string

const (
	// VerdictValid means a candidate matched and no field needed changing.
	VerdictValid Verdict = "valid"

	// VerdictCorrected means a candidate matched and at least one field
	// was rewritten from it.
	VerdictCorrected Verdict = "corrected"

	// VerdictInvalid means no candidate cleared the match threshold, the
	// entry lacked the fields needed to search, or the search failed.
	VerdictInvalid Verdict = "invalid"
)

// Change reason categories logged by the reconciler.
const (
	ReasonTitleMismatch     = "title_mismatch"
	ReasonAuthorMismatch    = "author_mismatch"
	ReasonJournalMismatch   = "journal_mismatch"
	ReasonYearMissing       = "year_missing"
	ReasonYearMismatch      = "year_mismatch"
	ReasonVolumePagesUpdate = "volume_pages_update"
	ReasonDOIAdded          = "doi_added"
)

// FieldChange records one field rewritten during reconciliation.
type FieldChange struct {
	Field  string `json:"field" yaml:"field"`
	Old    string `json:"old" yaml:"old"`
	New    string `json:"new" yaml:"new"`
	Reason string `json:"reason" yaml:"reason"`
}

// Record is the per-entry validation outcome consumed by reporting.
type Record struct {
	// Key is the citation key of the entry.
	Key string `json:"key" yaml:"key"`

	// Verdict is valid, corrected, or invalid.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Confidence is the composite match score in [0,1]; 0 for invalid
	// entries.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Changes lists every field the reconciler rewrote.
	Changes []FieldChange `json:"changes,omitempty" yaml:"changes,omitempty"`

	// Reason explains invalid verdicts ("no match found",
	// "insufficient data", "search failed: ...").
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Issues lists offline format problems found by lint, if any.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Changed reports whether any field was rewritten.
func (r Record) Changed() bool { return len(r.Changes) > 0 }
