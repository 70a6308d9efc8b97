// Package matcher implements the minutiae matching and scoring engine:
// column-arrangement normalization, pairwise similarity scoring, and
// collection ranking.
package matcher

import (
	"github.com/ferrovax/ridgeline/internal/model"
)

// Arrangement maps the four semantic roles to source column indices of a
// raw, unlabeled minutiae table.
type Arrangement struct {
	X     int
	Y     int
	Type  int
	Angle int
}

// Arrangements is the closed set of candidate column layouts, tried in
// this order and all retained. The query's true column order is unknown,
// so layouts are brute-forced rather than inferred; only these four occur
// in practice.
var Arrangements = []Arrangement{
	{X: 0, Y: 1, Type: 2, Angle: 3},
	{X: 0, Y: 1, Angle: 2, Type: 3},
	{Type: 0, X: 1, Y: 2, Angle: 3},
	{Angle: 0, X: 1, Y: 2, Type: 3},
}

// Apply reinterprets a raw table under this arrangement, producing one
// role-labeled raw point per row. A role whose column index falls outside
// the row is simply absent; values are passed through uncoerced.
func (a Arrangement) Apply(table [][]string) []map[string]any {
	points := make([]map[string]any, 0, len(table))
	for _, row := range table {
		p := make(map[string]any, 4)
		if a.X < len(row) {
			p["x"] = row[a.X]
		}
		if a.Y < len(row) {
			p["y"] = row[a.Y]
		}
		if a.Type < len(row) {
			p["type"] = row[a.Type]
		}
		if a.Angle < len(row) {
			p["angle"] = row[a.Angle]
		}
		points = append(points, p)
	}
	return points
}

// CandidatePointSets produces one normalized point set per candidate
// arrangement, in arrangement order.
func CandidatePointSets(table [][]string) []model.PointSet {
	candidates := make([]model.PointSet, 0, len(Arrangements))
	for _, a := range Arrangements {
		raw := a.Apply(table)
		points := make(model.PointSet, 0, len(raw))
		for _, p := range raw {
			points = append(points, model.NormalizePoint(p))
		}
		candidates = append(candidates, points)
	}
	return candidates
}
