// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref queries the CrossRef works API for candidate records
// matching a citation. Results come back in the API's relevance order.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/bibcheck/internal/httputil"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// worksBase is the CrossRef works search endpoint. Declared as a var so
// tests can substitute an httptest server.
var worksBase = "https://api.crossref.org/works"

// Client searches the CrossRef API. It satisfies validate.Searcher.
type Client struct {
	http *http.Client
	cfg  types.SearchConfig
}

// New builds a CrossRef client from cfg, including proxy routing when
// cfg.ProxyURL is set.
func New(cfg types.SearchConfig) (*Client, error) {
	httpClient, err := httputil.NewClient(cfg.HTTPConfig)
	if err != nil {
		return nil, err
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 5
	}
	return &Client{http: httpClient, cfg: cfg}, nil
}

// Search queries the works endpoint and returns candidates in relevance
// order. Any transport, status, or decode failure is a single error; the
// caller decides how a failed search affects the entry.
func (c *Client) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty CrossRef query")
	}

	params := url.Values{
		"query": {query},
		"rows":  {fmt.Sprintf("%d", c.cfg.MaxCandidates)},
	}
	if c.cfg.MailTo != "" {
		params.Set("mailto", c.cfg.MailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, worksBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.cfg.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.cfg.PlusToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(cr.Message.Items))
	for _, item := range cr.Message.Items {
		candidates = append(candidates, toCandidate(item))
	}
	return candidates, nil
}

// toCandidate maps one CrossRef work to the internal candidate shape.
func toCandidate(item work) types.Candidate {
	c := types.Candidate{
		Volume: item.Volume,
		Pages:  item.Page,
		DOI:    strings.TrimPrefix(item.DOI, "https://doi.org/"),
	}

	if len(item.Title) > 0 {
		c.Title = item.Title[0]
	}
	if len(item.ContainerTitle) > 0 {
		c.Journal = item.ContainerTitle[0]
	}

	for _, a := range item.Author {
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name != "" {
			c.Authors = append(c.Authors, name)
		}
	}

	// Print year first, then online-first, then the issued fallback.
	for _, d := range []partedDate{item.PublishedPrint, item.PublishedOnline, item.Issued} {
		if y := d.year(); y > 0 {
			c.Year = y
			break
		}
	}

	return c
}

// CrossRef API JSON structures.
type worksResponse struct {
	Status  string  `json:"status"`
	Message message `json:"message"`
}

type message struct {
	TotalResults int    `json:"total-results"`
	Items        []work `json:"items"`
}

type work struct {
	Title           []string   `json:"title"`
	Author          []author   `json:"author"`
	ContainerTitle  []string   `json:"container-title"`
	Volume          string     `json:"volume"`
	Page            string     `json:"page"`
	DOI             string     `json:"DOI"`
	PublishedPrint  partedDate `json:"published-print"`
	PublishedOnline partedDate `json:"published-online"`
	Issued          partedDate `json:"issued"`
}

type author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type partedDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d partedDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}
