// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders validation outcomes: a human-readable Markdown
// report and a machine-readable YAML results file.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/bibcheck/internal/validate"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Status symbols, one per verdict.
const (
	symbolValid     = "✓"
	symbolCorrected = "⚠"
	symbolInvalid   = "✗"
)

func symbol(v types.Verdict) string {
	switch v {
	case types.VerdictValid:
		return symbolValid
	case types.VerdictCorrected:
		return symbolCorrected
	default:
		return symbolInvalid
	}
}

// WriteMarkdown renders the validation report for one run.
func WriteMarkdown(w io.Writer, input string, result validate.BatchResult) error {
	fmt.Fprintf(w, "# Bibliography Validation Report\n\n")
	fmt.Fprintf(w, "**Input**: %s\n\n", input)
	fmt.Fprintf(w, "**Generated**: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "- Total entries: %d\n", result.Total())
	fmt.Fprintf(w, "- Valid: %d\n", result.Valid)
	fmt.Fprintf(w, "- Corrected: %d\n", result.Corrected)
	fmt.Fprintf(w, "- Invalid: %d\n\n", result.Invalid)

	fmt.Fprintf(w, "## Entries\n\n")
	for _, rec := range result.Records {
		if err := writeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, rec types.Record) error {
	fmt.Fprintf(w, "### %s %s\n\n", symbol(rec.Verdict), rec.Key)

	switch rec.Verdict {
	case types.VerdictInvalid:
		fmt.Fprintf(w, "- Verdict: invalid (%s)\n", rec.Reason)
	default:
		fmt.Fprintf(w, "- Verdict: %s (confidence %.2f)\n", rec.Verdict, rec.Confidence)
	}

	if len(rec.Changes) > 0 {
		fmt.Fprintf(w, "- Changes:\n")
		for _, ch := range rec.Changes {
			if ch.Old == "" {
				fmt.Fprintf(w, "  - %s: added %q (%s)\n", ch.Field, ch.New, ch.Reason)
			} else {
				fmt.Fprintf(w, "  - %s: %q -> %q (%s)\n", ch.Field, ch.Old, ch.New, ch.Reason)
			}
		}
	}

	if len(rec.Issues) > 0 {
		fmt.Fprintf(w, "- Format issues:\n")
		for _, issue := range rec.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
