// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate reconciles BibTeX entries against candidate works
// returned by a remote metadata source. It decides whether a candidate is
// the same work (matcher), which fields to rewrite from it (reconciler),
// and orchestrates the per-entry flow (processor).
package validate

import (
	"strconv"

	"github.com/pdiddy/bibcheck/internal/similarity"
	"github.com/pdiddy/bibcheck/pkg/types"
)

// Composite score weights. Title similarity dominates; the author list
// disambiguates same-title works.
const (
	titleWeight  = 0.7
	authorWeight = 0.3
)

// Year penalty: each year of mismatch beyond the tolerance costs
// yearPenaltyStep, capped so a wildly wrong year cannot push the score
// negative. The penalty is deliberately not a hard filter, since remote
// metadata reports online-first and print years inconsistently.
const (
	yearPenaltyStep = 0.15
	yearPenaltyCap  = 0.6
)

// Match picks the best candidate for the entry, or nil when none clears
// cfg.MatchThreshold. Candidates are scanned in source order and ties keep
// the earliest one, on the assumption that the remote API ranks by
// relevance. The returned score is the winning composite in [0,1].
func Match(entry *types.Entry, candidates []types.Candidate, cfg types.ValidateConfig) (*types.Candidate, float64) {
	var best *types.Candidate
	bestScore := 0.0

	for i := range candidates {
		score := compositeScore(entry, &candidates[i], cfg)
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	if best == nil || bestScore < cfg.MatchThreshold {
		return nil, 0.0
	}
	return best, bestScore
}

// compositeScore blends title and author similarity and subtracts the
// year penalty when both sides report a publication year.
func compositeScore(entry *types.Entry, c *types.Candidate, cfg types.ValidateConfig) float64 {
	score := titleWeight*similarity.Ratio(entry.Title(), c.Title) +
		authorWeight*similarity.AuthorMatch(entry.Authors(), c.Authors)

	if d := yearDistance(entry.Year(), c.Year); d > cfg.YearTolerance {
		penalty := yearPenaltyStep * float64(d-cfg.YearTolerance)
		if penalty > yearPenaltyCap {
			penalty = yearPenaltyCap
		}
		score -= penalty
	}

	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// yearDistance returns the absolute difference between the entry year and
// the candidate year, or 0 when either side is missing or unparsable.
func yearDistance(entryYear string, candidateYear int) int {
	if candidateYear <= 0 {
		return 0
	}
	y, err := strconv.Atoi(entryYear)
	if err != nil || y <= 0 {
		return 0
	}
	if y > candidateYear {
		return y - candidateYear
	}
	return candidateYear - y
}
