package cli

import (
	"fmt"
	"strings"

	"github.com/ferrovax/ridgeline/internal/model"
)

// RenderOutcome formats a ranked outcome for terminal display, one tier
// verdict followed by the supporting matches.
func RenderOutcome(outcome *model.RankedOutcome) string {
	if outcome == nil {
		return FormatError("No match found in the reference collection.")
	}

	var b strings.Builder

	switch {
	case len(outcome.PerfectMatches) > 0:
		b.WriteString(FormatSuccess(fmt.Sprintf("Found %d perfect match(es)", len(outcome.PerfectMatches))))
		b.WriteString("\n\n")
		writeMatches(&b, outcome.PerfectMatches)
		if len(outcome.GoodMatches) > 0 {
			b.WriteString(FormatSubtle("Additional good matches:"))
			b.WriteString("\n")
			writeMatches(&b, outcome.GoodMatches)
		}
	case len(outcome.GoodMatches) > 0:
		b.WriteString(FormatSuccess(fmt.Sprintf("Found %d good match(es)", len(outcome.GoodMatches))))
		b.WriteString("\n\n")
		writeMatches(&b, outcome.GoodMatches)
	case outcome.ClosestMatch != nil:
		b.WriteString(FormatWarning("No match above threshold; closest record:"))
		b.WriteString("\n\n")
		writeMatches(&b, []model.RecordMatch{*outcome.ClosestMatch})
	default:
		return FormatError("No match found in the reference collection.")
	}

	return b.String()
}

func writeMatches(b *strings.Builder, matches []model.RecordMatch) {
	for _, m := range matches {
		line := fmt.Sprintf("%s  score %.2f%%  (%d/%d points)",
			m.SRN,
			m.Similarity.Score,
			m.Similarity.MatchedPoints,
			m.Similarity.TotalPoints)
		b.WriteString("  " + line + "\n")
		b.WriteString(FormatSubtle(fmt.Sprintf("    record %s, arrangement %d", m.ID, m.Arrangement)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
