// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibcheck/internal/validate"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// ResultsFile is the on-disk YAML representation of a validation run: the
// configuration that produced it, summary counts, and every per-entry
// record. Downstream tooling consumes this instead of scraping the
// Markdown report.
type ResultsFile struct {
	Input   string               `yaml:"input"`
	Config  types.ValidateConfig `yaml:"config"`
	Summary Summary              `yaml:"summary"`
	Records []types.Record       `yaml:"records"`
}

// Summary stores run statistics and a timestamp.
type Summary struct {
	Total     int       `yaml:"total"`
	Valid     int       `yaml:"valid"`
	Corrected int       `yaml:"corrected"`
	Invalid   int       `yaml:"invalid"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResults saves the run to a YAML file at path.
func WriteResults(path, input string, cfg types.ValidateConfig, result validate.BatchResult) error {
	rf := ResultsFile{
		Input:  input,
		Config: cfg,
		Summary: Summary{
			Total:     result.Total(),
			Valid:     result.Valid,
			Corrected: result.Corrected,
			Invalid:   result.Invalid,
			Timestamp: time.Now(),
		},
		Records: result.Records,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}
	return nil
}

// ReadResults loads a results file written by WriteResults.
func ReadResults(path string) (*ResultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}
	var rf ResultsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing results file: %w", err)
	}
	return &rf, nil
}
