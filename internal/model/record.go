package model

import (
	"fmt"
	"time"
)

// UnknownSRN is used when a record carries no subject identifier.
const UnknownSRN = "Unknown"

// MatchData is the display payload carried through matching unmodified.
// The matcher never inspects it beyond the subject identifier.
type MatchData struct {
	SubjectInfo    map[string]any `json:"subjectInfo,omitempty"`
	AssignmentData map[string]any `json:"assignmentData,omitempty"`
}

// ReferenceRecord is one enrolled fingerprint in the reference collection.
// Minutiae holds the stored point sequence as decoded JSON with its
// original key shape preserved; call Points to normalize it.
type ReferenceRecord struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	SRN       string    `json:"srn"`
	Minutiae  []any     `json:"minutiae"`
	MatchData MatchData `json:"matchData"`
}

// Points returns the record's minutiae in canonical form.
func (r *ReferenceRecord) Points() PointSet {
	return NormalizePoints(r.Minutiae)
}

// ResolveSRN returns the subject identifier, falling back to the subject
// info payload and then to UnknownSRN.
func (r *ReferenceRecord) ResolveSRN() string {
	if r.SRN != "" {
		return r.SRN
	}
	if id, ok := r.MatchData.SubjectInfo["id"].(string); ok && id != "" {
		return id
	}
	return UnknownSRN
}

// Validate ensures the record can be persisted.
func (r *ReferenceRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reference record is missing an ID")
	}
	return nil
}
