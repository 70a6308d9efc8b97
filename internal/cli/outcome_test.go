package cli

import (
	"strings"
	"testing"

	"github.com/ferrovax/ridgeline/internal/model"
)

func match(srn string, score float64) model.RecordMatch {
	return model.RecordMatch{
		ID:         "rec-" + srn,
		SRN:        srn,
		Similarity: model.MatchResult{Score: score, MatchedPoints: 9, TotalPoints: 10},
	}
}

func TestRenderOutcomeNil(t *testing.T) {
	out := RenderOutcome(nil)
	if !strings.Contains(out, "No match found") {
		t.Errorf("RenderOutcome(nil) = %q", out)
	}
}

func TestRenderOutcomePerfect(t *testing.T) {
	outcome := &model.RankedOutcome{
		PerfectMatches: []model.RecordMatch{match("SRN001", 100)},
		GoodMatches:    []model.RecordMatch{match("SRN002", 97)},
	}

	out := RenderOutcome(outcome)
	for _, want := range []string{"1 perfect match", "SRN001", "100.00%", "Additional good matches", "SRN002"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOutcomeGood(t *testing.T) {
	outcome := &model.RankedOutcome{
		GoodMatches: []model.RecordMatch{match("SRN003", 96.5)},
	}

	out := RenderOutcome(outcome)
	if !strings.Contains(out, "1 good match") || !strings.Contains(out, "SRN003") {
		t.Errorf("RenderOutcome() = %q", out)
	}
}

func TestRenderOutcomeClosest(t *testing.T) {
	closest := match("SRN004", 42.0)
	outcome := &model.RankedOutcome{ClosestMatch: &closest}

	out := RenderOutcome(outcome)
	if !strings.Contains(out, "closest record") || !strings.Contains(out, "SRN004") {
		t.Errorf("RenderOutcome() = %q", out)
	}
}
