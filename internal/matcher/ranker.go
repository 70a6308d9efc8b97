package matcher

import (
	"sort"

	"github.com/ferrovax/ridgeline/internal/model"
)

// Confidence bands for classifying ranked results.
const (
	// PerfectThreshold marks a match as near-certain.
	PerfectThreshold = 99.0
	// GoodThreshold marks a match as strong but short of certain.
	GoodThreshold = 95.0
)

const (
	maxSupplementaryGood = 3
	maxAllMatches        = 5
)

// BestMatch scores every candidate arrangement of the query against one
// reference record and keeps the arrangement with the highest score.
// Replacement is on strictly greater score, so the first maximal
// arrangement wins ties. Returns nil when no arrangement scored above
// zero.
func BestMatch(candidates []model.PointSet, rec *model.ReferenceRecord) *model.RecordMatch {
	refPoints := rec.Points()

	var best *model.RecordMatch
	bestScore := 0.0
	for i, cand := range candidates {
		similarity := Score(cand, refPoints)
		if similarity.Score > bestScore {
			bestScore = similarity.Score
			best = &model.RecordMatch{
				ID:          rec.ID,
				SRN:         rec.ResolveSRN(),
				MatchData:   rec.MatchData,
				Similarity:  similarity,
				Arrangement: i,
			}
		}
	}
	return best
}

// Classify sorts per-record best results and buckets them into confidence
// tiers. The sort is stable and descending by score, so tied records keep
// their reference-iteration order. Returns nil when there is nothing to
// classify, which is the caller's no-match signal.
func Classify(matches []model.RecordMatch) *model.RankedOutcome {
	if len(matches) == 0 {
		return nil
	}

	ranked := make([]model.RecordMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity.Score > ranked[j].Similarity.Score
	})

	var perfect, good []model.RecordMatch
	for _, m := range ranked {
		switch {
		case m.Similarity.Score >= PerfectThreshold:
			perfect = append(perfect, m)
		case m.Similarity.Score >= GoodThreshold:
			good = append(good, m)
		}
	}

	top := ranked
	if len(top) > maxAllMatches {
		top = top[:maxAllMatches]
	}

	switch {
	case len(perfect) > 0:
		supplementary := good
		if len(supplementary) > maxSupplementaryGood {
			supplementary = supplementary[:maxSupplementaryGood]
		}
		return &model.RankedOutcome{
			Match:          &perfect[0].MatchData,
			Similarity:     &perfect[0].Similarity,
			PerfectMatches: perfect,
			GoodMatches:    supplementary,
			AllMatches:     top,
		}
	case len(good) > 0:
		return &model.RankedOutcome{
			Match:       &good[0].MatchData,
			Similarity:  &good[0].Similarity,
			GoodMatches: good,
			AllMatches:  top,
		}
	default:
		return &model.RankedOutcome{
			ClosestMatch: &ranked[0],
			AllMatches:   top,
		}
	}
}

// Rank runs the full pipeline: per-record best arrangement, stable
// descending sort, tier classification. A nil return is the explicit
// no-match signal, produced when the collection is empty or when no
// record scored above zero under any arrangement.
func Rank(candidates []model.PointSet, records []model.ReferenceRecord) *model.RankedOutcome {
	if len(records) == 0 {
		return nil
	}

	var matches []model.RecordMatch
	for i := range records {
		if best := BestMatch(candidates, &records[i]); best != nil {
			matches = append(matches, *best)
		}
	}
	return Classify(matches)
}
