// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibcheck pipeline:
// BibTeX entries, remote candidate records, per-entry validation records,
// and stage configuration.
package types

import "strings"

// Entry is one BibTeX entry. Fields maps lowercased field names to raw
// values; Names preserves the field order from the source file so the
// writer can round-trip entries without reshuffling.
type Entry struct {
	// Type is the entry type without the leading "@" (e.g. "article").
	Type string `json:"type" yaml:"type"`

	// Key is the citation key. It identifies the entry and is never
	// rewritten by validation.
	Key string `json:"key" yaml:"key"`

	// Names lists field names in source order.
	Names []string `json:"names" yaml:"names"`

	// Fields maps field name to value, both already stripped of the
	// BibTeX brace/quote delimiters.
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// NewEntry returns an empty entry of the given type and key.
func NewEntry(entryType, key string) *Entry {
	return &Entry{
		Type:   entryType,
		Key:    key,
		Fields: make(map[string]string),
	}
}

// Get returns the value of a field, or "" if absent.
func (e *Entry) Get(name string) string {
	return e.Fields[name]
}

// Has reports whether the field is present and non-empty.
func (e *Entry) Has(name string) bool {
	return strings.TrimSpace(e.Fields[name]) != ""
}

// Set stores a field value, appending the name to Names on first write so
// added fields (e.g. a discovered DOI) end up at the end of the entry.
func (e *Entry) Set(name, value string) {
	if _, ok := e.Fields[name]; !ok {
		e.Names = append(e.Names, name)
	}
	e.Fields[name] = value
}

// Title returns the title field.
func (e *Entry) Title() string { return e.Get("title") }

// Year returns the year field.
func (e *Entry) Year() string { return e.Get("year") }

// DOI returns the doi field.
func (e *Entry) DOI() string { return e.Get("doi") }

// Journal returns the journal field, falling back to booktitle for
// conference entries.
func (e *Entry) Journal() string {
	if j := e.Get("journal"); j != "" {
		return j
	}
	return e.Get("booktitle")
}

// Authors splits the author field on the BibTeX "and" separator and
// returns the individual names in order.
func (e *Entry) Authors() []string {
	raw := e.Get("author")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, " and ")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := &Entry{
		Type:   e.Type,
		Key:    e.Key,
		Names:  append([]string(nil), e.Names...),
		Fields: make(map[string]string, len(e.Fields)),
	}
	for k, v := range e.Fields {
		c.Fields[k] = v
	}
	return c
}
