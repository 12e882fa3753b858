package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bibcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// ProxyURL routes requests through an HTTP proxy when set
	// (e.g. "http://127.0.0.1:8080").
	ProxyURL string `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`
}

// SearchConfig holds settings for the remote metadata search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxCandidates is the number of candidate works requested per query
	// (default 5).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// MailTo is an email address sent with each request for polite-pool
	// access to the CrossRef API.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PlusToken is an optional Crossref Plus API token for higher rate
	// limits.
	PlusToken string `json:"plus_token,omitempty" yaml:"plus_token,omitempty"`
}

// ValidateConfig holds settings for the validation stage.
type ValidateConfig struct {
	// MatchThreshold is the minimum composite score for a candidate to
	// count as the same work (default 0.80).
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// JournalThreshold is the similarity below which a journal name is
	// rewritten from the candidate (default 0.90). Looser than exact so
	// abbreviated journal names survive.
	JournalThreshold float64 `json:"journal_threshold" yaml:"journal_threshold"`

	// YearTolerance is the publication-year difference tolerated without
	// penalty (default 1, covering online-first vs print dates).
	YearTolerance int `json:"year_tolerance" yaml:"year_tolerance"`

	// RequestDelay is the minimum delay between remote searches
	// (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// CacheDir is the directory for the query cache database. Empty
	// disables caching.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}
