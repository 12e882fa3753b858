// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibcheck/internal/bibtex"
	"github.com/pdiddy/bibcheck/internal/cache"
	"github.com/pdiddy/bibcheck/internal/crossref"
	"github.com/pdiddy/bibcheck/internal/report"
	"github.com/pdiddy/bibcheck/internal/validate"
	"github.com/pdiddy/bibcheck/pkg/types"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultDelay         = 1 * time.Second
	defaultMaxCandidates = 5
	defaultThreshold     = 0.80
	defaultJournalThresh = 0.90
	defaultUserAgent     = "bibcheck/0.1 (https://github.com/pdiddy/bibcheck)"
)

var validateCmd = &cobra.Command{
	Use:   "validate [input.bib]",
	Short: "Validate and correct a bibliography against CrossRef",
	Long: `Validate parses a BibTeX file, searches CrossRef for each entry, and
corrects fields from the best-matching record. Entries are processed
sequentially with a delay between API requests. The corrected bibliography,
a Markdown report, and optionally a YAML results file are written at the end.

Per-entry failures (network errors, no match) never abort the run; only
configuration errors are fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("output", "o", "", "corrected .bib output path (default: corrected_<input>)")
	validateCmd.Flags().String("report", "validation_report.md", "Markdown report path")
	validateCmd.Flags().String("results", "", "YAML results file path (omitted when empty)")
	validateCmd.Flags().StringP("proxy", "p", "", "HTTP proxy URL (e.g. http://127.0.0.1:8080)")
	validateCmd.Flags().DurationP("delay", "d", defaultDelay, "minimum delay between CrossRef requests")
	validateCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	validateCmd.Flags().Int("max-candidates", defaultMaxCandidates, "candidate records requested per query")
	validateCmd.Flags().Float64("match-threshold", defaultThreshold, "minimum composite score to accept a candidate")
	validateCmd.Flags().String("mailto", "", "email for CrossRef polite-pool access (default: crossref-email secret)")
	validateCmd.Flags().String("cache-dir", filepath.Join(".bibcheck", "cache"), "directory for the query cache database")
	validateCmd.Flags().Bool("no-cache", false, "bypass the query cache")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := args[0]

	entries, err := bibtex.ParseFile(input)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s contains no entries", input)
	}

	searchCfg, err := searchConfig(cmd)
	if err != nil {
		return err
	}
	client, err := crossref.New(searchCfg)
	if err != nil {
		return err
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	threshold, _ := cmd.Flags().GetFloat64("match-threshold")
	validateCfg := types.ValidateConfig{
		MatchThreshold:   threshold,
		JournalThreshold: defaultJournalThresh,
		YearTolerance:    1,
		RequestDelay:     delay,
	}

	searcher := validate.Throttle(client, delay)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if !noCache && cacheDir != "" {
		store, err := cache.Open(cacheDir)
		if err != nil {
			return err
		}
		defer store.Close()
		searcher = store.Wrap(searcher, os.Stderr)
		validateCfg.CacheDir = cacheDir
	}

	processor := &validate.Processor{Searcher: searcher, Config: validateCfg}
	result := processor.ProcessAll(cmd.Context(), entries, os.Stdout)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(input), "corrected_"+filepath.Base(input))
	}
	if err := bibtex.WriteFile(output, entries); err != nil {
		return err
	}

	reportPath, _ := cmd.Flags().GetString("report")
	if err := writeReport(reportPath, input, result); err != nil {
		return err
	}

	if resultsPath, _ := cmd.Flags().GetString("results"); resultsPath != "" {
		if err := report.WriteResults(resultsPath, input, validateCfg, result); err != nil {
			return err
		}
	}

	fmt.Printf("\nValidated %d entries: %d valid, %d corrected, %d invalid\n",
		result.Total(), result.Valid, result.Corrected, result.Invalid)
	fmt.Printf("Corrected file: %s\nReport: %s\n", output, reportPath)
	return nil
}

// searchConfig assembles the CrossRef client configuration from flags,
// loaded secrets, and the viper config file.
func searchConfig(cmd *cobra.Command) (types.SearchConfig, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	proxy, _ := cmd.Flags().GetString("proxy")
	if proxy == "" {
		proxy = viper.GetString("proxy_url")
	}
	maxCandidates, _ := cmd.Flags().GetInt("max-candidates")
	mailto, _ := cmd.Flags().GetString("mailto")

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
			ProxyURL:  proxy,
		},
		MaxCandidates: maxCandidates,
		MailTo:        secretDefault("crossref-email", mailto),
		PlusToken:     secretDefault("crossref-plus-api-token", viper.GetString("crossref_plus_token")),
	}, nil
}

func writeReport(path, input string, result validate.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := report.WriteMarkdown(f, input, result); err != nil {
		f.Close()
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return f.Close()
}
