package model

// MatchDetail records one successful point pairing, kept for diagnostics
// only. It never influences the score.
type MatchDetail struct {
	QueryIndex  int        `json:"queryIndex"`
	RefIndex    int        `json:"refIndex"`
	Distance    float64    `json:"distance"`
	AngleDiff   float64    `json:"angleDiff"`
	QueryCoords [2]float64 `json:"queryCoords"`
	RefCoords   [2]float64 `json:"refCoords"`
}

// MatchResult is the outcome of scoring one query against one reference.
type MatchResult struct {
	Score         float64       `json:"score"`
	MatchedPoints int           `json:"matchedPoints"`
	TotalPoints   int           `json:"totalPoints"`
	MatchDetails  []MatchDetail `json:"matchDetails"`
}

// RecordMatch is a reference record paired with its best similarity
// across all candidate column arrangements.
type RecordMatch struct {
	ID          string      `json:"id"`
	SRN         string      `json:"srn"`
	MatchData   MatchData   `json:"matchData"`
	Similarity  MatchResult `json:"similarity"`
	Arrangement int         `json:"arrangementUsed"`
}

// RankedOutcome classifies the whole reference collection against a query.
// Absent fields mean "this category is empty", not an error. A nil
// RankedOutcome is the explicit no-match signal.
type RankedOutcome struct {
	// Match is the primary match's display payload; nil when the best
	// score fell below the good threshold.
	Match          *MatchData    `json:"match"`
	Similarity     *MatchResult  `json:"similarity,omitempty"`
	PerfectMatches []RecordMatch `json:"perfectMatches,omitempty"`
	GoodMatches    []RecordMatch `json:"goodMatches,omitempty"`
	ClosestMatch   *RecordMatch  `json:"closestMatch,omitempty"`
	AllMatches     []RecordMatch `json:"allMatches,omitempty"`
}
