// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Write emits entries as BibTeX, two-space indented with braced values,
// fields in their recorded order.
func Write(w io.Writer, entries []*types.Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes entries to path, creating or truncating it.
func WriteFile(path string, entries []*types.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeEntry(w io.Writer, e *types.Entry) error {
	if _, err := fmt.Fprintf(w, "@%s{%s,\n", e.Type, e.Key); err != nil {
		return err
	}
	seen := make(map[string]bool, len(e.Names))
	for _, name := range e.Names {
		if seen[name] {
			continue
		}
		seen[name] = true
		value, ok := e.Fields[name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s = {%s},\n", name, value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
