// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [input.bib]",
	Short: "Run offline format checks on a bibliography",
	Long: `Lint checks each entry for format problems without touching the network:
missing required fields, author separators, year and volume shapes, page
ranges, and DOI prefixes.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	entries, err := bibtex.ParseFile(args[0])
	if err != nil {
		return err
	}

	flagged := 0
	for _, entry := range entries {
		issues := lint.Check(entry)
		if len(issues) == 0 {
			continue
		}
		flagged++
		fmt.Printf("%s:\n", entry.Key)
		for _, issue := range issues {
			fmt.Printf("  %s: %s\n", issue.Field, issue.Problem)
		}
	}

	if flagged == 0 {
		fmt.Printf("%d entries, no format issues\n", len(entries))
		return nil
	}
	return fmt.Errorf("%d of %d entries have format issues", flagged, len(entries))
}
