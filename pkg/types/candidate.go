// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Candidate is one work returned by the remote metadata source for a
// search query. Candidates are immutable and scoped to a single matching
// attempt; the slice order is the source's relevance ranking.
type Candidate struct {
	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order, given name first.
	Authors []string `json:"authors" yaml:"authors"`

	// Journal is the container (journal or proceedings) name.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Year is the publication year, 0 when the source omits it.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Volume is the journal volume.
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Pages is the page range (e.g. "117-132").
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// DOI is the bare DOI without a resolver prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
}
