// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibcheck/internal/crossref"
	"github.com/pdiddy/bibcheck/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Query CrossRef directly and print the candidates",
	Long: `Search sends one query to the CrossRef works API and prints the returned
candidates as a table. Useful for checking what validate would see for a
troublesome entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("proxy", "p", "", "HTTP proxy URL")
	searchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	searchCmd.Flags().Int("max-candidates", defaultMaxCandidates, "candidate records to request")
	searchCmd.Flags().String("mailto", "", "email for CrossRef polite-pool access")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := searchConfig(cmd)
	if err != nil {
		return err
	}
	client, err := crossref.New(cfg)
	if err != nil {
		return err
	}

	candidates, err := client.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	printCandidates(candidates)
	return nil
}

func printCandidates(candidates []types.Candidate) {
	if len(candidates) == 0 {
		fmt.Println("No candidates found.")
		return
	}

	w := os.Stdout
	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n", "Rank", "Title", "Authors", "Year", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, c := range candidates {
		title := truncate(c.Title, 60)
		year := ""
		if c.Year > 0 {
			year = fmt.Sprintf("%d", c.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n", i+1, title, formatAuthors(c.Authors), year, c.DOI)
	}
	fmt.Fprintf(w, "\n%d candidates\n", len(candidates))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max runes, ending with "..." when cut. Slicing
// on runes keeps multi-byte names intact.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
