package matcher

import (
	"fmt"
	"testing"

	"github.com/ferrovax/ridgeline/internal/model"
)

// refRecord builds a reference record with named-key minutiae.
func refRecord(id string, points ...model.Minutia) model.ReferenceRecord {
	minutiae := make([]any, 0, len(points))
	for _, p := range points {
		minutiae = append(minutiae, map[string]any{
			"x": p.X, "y": p.Y, "type": p.Type, "angle": p.Angle,
		})
	}
	return model.ReferenceRecord{
		ID:       id,
		SRN:      id,
		Minutiae: minutiae,
		MatchData: model.MatchData{
			SubjectInfo: map[string]any{"id": id},
		},
	}
}

// scoredMatch builds a RecordMatch with the given score for Classify tests.
func scoredMatch(id string, score float64) model.RecordMatch {
	return model.RecordMatch{
		ID:         id,
		SRN:        id,
		Similarity: model.MatchResult{Score: score, MatchedPoints: 1, TotalPoints: 1},
	}
}

func TestRankEmptyCollection(t *testing.T) {
	candidates := CandidatePointSets([][]string{{"10", "10", "1", "0"}})
	if outcome := Rank(candidates, nil); outcome != nil {
		t.Errorf("Rank() = %+v, want nil for empty collection", outcome)
	}
}

func TestRankNoScorableRecords(t *testing.T) {
	// A collection where every record scores zero yields the no-match
	// signal, distinguished from an empty collection only by reaching it.
	candidates := CandidatePointSets([][]string{{"10", "10", "1", "0"}})
	records := []model.ReferenceRecord{
		refRecord("far", model.Minutia{X: 900, Y: 900, Type: "1"}),
	}

	if outcome := Rank(candidates, records); outcome != nil {
		t.Errorf("Rank() = %+v, want nil when nothing scored", outcome)
	}
}

func TestRankPerfectMatchEndToEnd(t *testing.T) {
	candidates := CandidatePointSets([][]string{{"10", "10", "1", "0.0"}})
	records := []model.ReferenceRecord{
		refRecord("R1", model.Minutia{X: 10, Y: 10, Type: "1", Angle: 0.0}),
	}

	outcome := Rank(candidates, records)
	if outcome == nil {
		t.Fatal("Rank() = nil, want a perfect match")
	}
	if len(outcome.PerfectMatches) != 1 {
		t.Fatalf("len(PerfectMatches) = %d, want 1", len(outcome.PerfectMatches))
	}

	best := outcome.PerfectMatches[0]
	if best.ID != "R1" {
		t.Errorf("ID = %q, want R1", best.ID)
	}
	if best.Similarity.Score != 100 {
		t.Errorf("Score = %v, want 100", best.Similarity.Score)
	}
	if best.Similarity.MatchedPoints != 1 || best.Similarity.TotalPoints != 1 {
		t.Errorf("MatchedPoints/TotalPoints = %d/%d, want 1/1",
			best.Similarity.MatchedPoints, best.Similarity.TotalPoints)
	}
	if outcome.Match == nil {
		t.Error("Match should carry the primary match data")
	}
}

func TestRankDistantPointScoresZero(t *testing.T) {
	candidates := CandidatePointSets([][]string{{"10", "10", "1", "0.0"}})
	records := []model.ReferenceRecord{
		refRecord("R1", model.Minutia{X: 20, Y: 20, Type: "1", Angle: 0.0}),
	}

	// Distance ≈14.1 exceeds the proximity threshold under every
	// arrangement, so the record never scores and the outcome is nil.
	if outcome := Rank(candidates, records); outcome != nil {
		t.Errorf("Rank() = %+v, want nil", outcome)
	}
}

func TestRankSelectsBestArrangement(t *testing.T) {
	// The stored points only line up when the query is read as
	// type,x,y,angle (the third arrangement).
	table := [][]string{{"1", "10", "10", "0.0"}}
	candidates := CandidatePointSets(table)
	records := []model.ReferenceRecord{
		refRecord("R1", model.Minutia{X: 10, Y: 10, Type: "1", Angle: 0.0}),
	}

	outcome := Rank(candidates, records)
	if outcome == nil {
		t.Fatal("Rank() = nil, want a match")
	}
	if len(outcome.PerfectMatches) != 1 {
		t.Fatalf("len(PerfectMatches) = %d, want 1", len(outcome.PerfectMatches))
	}
	if got := outcome.PerfectMatches[0].Arrangement; got != 2 {
		t.Errorf("Arrangement = %d, want 2", got)
	}
}

func TestRankFloatFormattedTypeCell(t *testing.T) {
	// A type cell of "1.0" in the query CSV must match a reference whose
	// stored type is the number 1; both canonicalize to the same type.
	candidates := CandidatePointSets([][]string{{"10", "10", "1.0", "0.0"}})
	records := []model.ReferenceRecord{
		{
			ID:  "R1",
			SRN: "R1",
			Minutiae: []any{
				map[string]any{"x": 10.0, "y": 10.0, "type": 1.0, "angle": 0.0},
			},
		},
	}

	outcome := Rank(candidates, records)
	if outcome == nil {
		t.Fatal("Rank() = nil, want a perfect match")
	}
	if len(outcome.PerfectMatches) != 1 {
		t.Fatalf("len(PerfectMatches) = %d, want 1", len(outcome.PerfectMatches))
	}
	if got := outcome.PerfectMatches[0].Similarity.Score; got != 100 {
		t.Errorf("Score = %v, want 100", got)
	}
}

func TestBestMatchFirstMaximalArrangementWins(t *testing.T) {
	// A symmetric layout scores identically under multiple arrangements;
	// replacement happens only on strictly greater score, so the first
	// maximal arrangement is kept.
	table := [][]string{{"10", "10", "1", "1"}}
	candidates := CandidatePointSets(table)
	rec := refRecord("R1", model.Minutia{X: 10, Y: 10, Type: "1", Angle: 1})

	best := BestMatch(candidates, &rec)
	if best == nil {
		t.Fatal("BestMatch() = nil, want a match")
	}
	if best.Arrangement != 0 {
		t.Errorf("Arrangement = %d, want 0 (first maximal)", best.Arrangement)
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		wantPerfect bool
		wantGood    bool
		wantClosest bool
	}{
		{name: "exactly 99 is perfect", score: 99.0, wantPerfect: true},
		{name: "just under 99 is good", score: 98.999, wantGood: true},
		{name: "exactly 95 is good", score: 95.0, wantGood: true},
		{name: "just under 95 is closest only", score: 94.999, wantClosest: true},
		{name: "100 is perfect", score: 100.0, wantPerfect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Classify([]model.RecordMatch{scoredMatch("R1", tt.score)})
			if outcome == nil {
				t.Fatal("Classify() = nil")
			}

			if got := len(outcome.PerfectMatches) > 0; got != tt.wantPerfect {
				t.Errorf("perfect = %v, want %v", got, tt.wantPerfect)
			}
			if got := len(outcome.GoodMatches) > 0; got != tt.wantGood {
				t.Errorf("good = %v, want %v", got, tt.wantGood)
			}
			if got := outcome.ClosestMatch != nil; got != tt.wantClosest {
				t.Errorf("closest = %v, want %v", got, tt.wantClosest)
			}
		})
	}
}

func TestClassifySupplementaryGoodCap(t *testing.T) {
	matches := []model.RecordMatch{
		scoredMatch("P1", 100),
		scoredMatch("G1", 98),
		scoredMatch("G2", 97),
		scoredMatch("G3", 96),
		scoredMatch("G4", 95.5),
		scoredMatch("G5", 95.1),
	}

	outcome := Classify(matches)
	if outcome == nil {
		t.Fatal("Classify() = nil")
	}
	if len(outcome.PerfectMatches) != 1 {
		t.Errorf("len(PerfectMatches) = %d, want 1", len(outcome.PerfectMatches))
	}
	// Good matches only supplement perfect ones up to 3.
	if len(outcome.GoodMatches) != 3 {
		t.Errorf("len(GoodMatches) = %d, want 3", len(outcome.GoodMatches))
	}
	if len(outcome.AllMatches) != 5 {
		t.Errorf("len(AllMatches) = %d, want 5", len(outcome.AllMatches))
	}
}

func TestClassifyGoodTierUncapped(t *testing.T) {
	matches := []model.RecordMatch{
		scoredMatch("G1", 98),
		scoredMatch("G2", 97),
		scoredMatch("G3", 96),
		scoredMatch("G4", 95.5),
		scoredMatch("G5", 95.1),
	}

	outcome := Classify(matches)
	if outcome == nil {
		t.Fatal("Classify() = nil")
	}
	if len(outcome.PerfectMatches) != 0 {
		t.Errorf("len(PerfectMatches) = %d, want 0", len(outcome.PerfectMatches))
	}
	// As the primary tier, good matches are not capped.
	if len(outcome.GoodMatches) != 5 {
		t.Errorf("len(GoodMatches) = %d, want 5", len(outcome.GoodMatches))
	}
	if outcome.Match == nil {
		t.Error("Match should carry the top good match data")
	}
}

func TestClassifyClosestMatch(t *testing.T) {
	matches := []model.RecordMatch{
		scoredMatch("A", 40),
		scoredMatch("B", 80),
		scoredMatch("C", 60),
	}

	outcome := Classify(matches)
	if outcome == nil {
		t.Fatal("Classify() = nil")
	}
	if outcome.Match != nil {
		t.Error("Match should be nil below the good threshold")
	}
	if outcome.ClosestMatch == nil || outcome.ClosestMatch.ID != "B" {
		t.Errorf("ClosestMatch = %+v, want record B", outcome.ClosestMatch)
	}
	if len(outcome.AllMatches) != 3 {
		t.Errorf("len(AllMatches) = %d, want 3", len(outcome.AllMatches))
	}
	if outcome.AllMatches[0].ID != "B" || outcome.AllMatches[1].ID != "C" || outcome.AllMatches[2].ID != "A" {
		t.Errorf("AllMatches not sorted by score: %v", ids(outcome.AllMatches))
	}
}

func TestClassifyStableTieOrder(t *testing.T) {
	matches := []model.RecordMatch{
		scoredMatch("first", 50),
		scoredMatch("second", 50),
		scoredMatch("third", 50),
	}

	outcome := Classify(matches)
	if outcome == nil {
		t.Fatal("Classify() = nil")
	}
	got := ids(outcome.AllMatches)
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied records reordered: got %v, want %v", got, want)
		}
	}
}

func TestClassifyAllMatchesCap(t *testing.T) {
	var matches []model.RecordMatch
	for i := 0; i < 8; i++ {
		matches = append(matches, scoredMatch(fmt.Sprintf("R%d", i), float64(10+i)))
	}

	outcome := Classify(matches)
	if outcome == nil {
		t.Fatal("Classify() = nil")
	}
	if len(outcome.AllMatches) != 5 {
		t.Errorf("len(AllMatches) = %d, want 5", len(outcome.AllMatches))
	}
	if outcome.AllMatches[0].ID != "R7" {
		t.Errorf("top match = %s, want R7", outcome.AllMatches[0].ID)
	}
}

func ids(matches []model.RecordMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.ID
	}
	return out
}
