package matcher

import (
	"math"

	"github.com/ferrovax/ridgeline/internal/model"
)

// Matching tolerances under which two points are considered potentially
// the same minutia.
const (
	// ProximityThreshold is the maximum Euclidean distance in coordinate units.
	ProximityThreshold = 5.0
	// AngleThreshold is the maximum orientation difference in radians,
	// measured on the shortest arc of the circle.
	AngleThreshold = 0.3
)

// maxMatchDetails caps the diagnostic detail records kept per result.
const maxMatchDetails = 10

// Score compares a query point set against a reference point set and
// returns a similarity in [0, 100].
//
// Each query point is matched, in input order, to the nearest reference
// point that lies within ProximityThreshold, differs in orientation by at
// most AngleThreshold, and has an equal type. The match is one-sided: a
// reference point may be claimed by more than one query point, and the
// result is not symmetric in its arguments. Callers that need the
// historical scores must keep it that way.
func Score(query, reference model.PointSet) model.MatchResult {
	total := len(query)
	if len(reference) > total {
		total = len(reference)
	}

	result := model.MatchResult{TotalPoints: total}
	if len(query) == 0 || len(reference) == 0 {
		return result
	}

	for i, qp := range query {
		bestDist := math.Inf(1)
		var best *model.MatchDetail

		for j, rp := range reference {
			dist := math.Hypot(qp.X-rp.X, qp.Y-rp.Y)
			if dist > ProximityThreshold || dist >= bestDist {
				continue
			}
			if angleDiff(qp.Angle, rp.Angle) > AngleThreshold {
				continue
			}
			if qp.Type != rp.Type {
				continue
			}
			bestDist = dist
			best = &model.MatchDetail{
				QueryIndex:  i,
				RefIndex:    j,
				Distance:    dist,
				AngleDiff:   angleDiff(qp.Angle, rp.Angle),
				QueryCoords: [2]float64{qp.X, qp.Y},
				RefCoords:   [2]float64{rp.X, rp.Y},
			}
		}

		if best != nil {
			result.MatchedPoints++
			if len(result.MatchDetails) < maxMatchDetails {
				result.MatchDetails = append(result.MatchDetails, *best)
			}
		}
	}

	if total > 0 {
		result.Score = 100 * float64(result.MatchedPoints) / float64(total)
	}
	return result
}

// angleDiff computes the shortest-arc distance between two orientations,
// so angles separated by nearly 2π are treated as close.
func angleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 2*math.Pi-d)
}
