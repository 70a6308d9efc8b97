// Package engine orchestrates identification and enrollment against the
// reference collection.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/matcher"
	"github.com/ferrovax/ridgeline/internal/model"
	"github.com/ferrovax/ridgeline/internal/service"
)

// Identifier runs an unknown minutiae table against the whole reference
// collection. It is a pull-based wrapper around the matching core: fetch
// once, then compute synchronously with no further I/O.
type Identifier struct {
	storage service.Storage

	// Progress, when set, is called after each reference record is scored.
	Progress func(done, total int)
}

// NewIdentifier creates an identifier backed by the given storage.
func NewIdentifier(storage service.Storage) *Identifier {
	return &Identifier{storage: storage}
}

// Identify matches a raw minutiae table against every enrolled record and
// returns the ranked outcome. A nil outcome with a nil error is the
// explicit no-match signal. A storage failure surfaces as a failed match
// attempt; no retry happens here.
func (e *Identifier) Identify(ctx context.Context, table [][]string) (*model.RankedOutcome, error) {
	records, err := e.storage.ListReferenceRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreFetch, err)
	}

	slog.Info("matching against reference collection", "records", len(records), "rows", len(table))

	if len(records) == 0 {
		return nil, nil
	}

	candidates := matcher.CandidatePointSets(table)

	var matches []model.RecordMatch
	for i := range records {
		if best := matcher.BestMatch(candidates, &records[i]); best != nil {
			matches = append(matches, *best)
		}
		if e.Progress != nil {
			e.Progress(i+1, len(records))
		}
	}

	outcome := matcher.Classify(matches)
	if outcome == nil {
		slog.Info("no record produced a score")
		return nil, nil
	}

	switch {
	case len(outcome.PerfectMatches) > 0:
		slog.Info("found perfect matches", "count", len(outcome.PerfectMatches),
			"top_score", outcome.PerfectMatches[0].Similarity.Score)
	case len(outcome.GoodMatches) > 0:
		slog.Info("found good matches", "count", len(outcome.GoodMatches),
			"top_score", outcome.GoodMatches[0].Similarity.Score)
	case outcome.ClosestMatch != nil:
		slog.Info("best match below threshold",
			"id", outcome.ClosestMatch.ID,
			"score", outcome.ClosestMatch.Similarity.Score)
	}
	return outcome, nil
}
