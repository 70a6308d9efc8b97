package engine

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ferrovax/ridgeline/internal/blobstore"
	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/model"
	"github.com/ferrovax/ridgeline/internal/service"
)

// imagePrefix is the blob key prefix for enrolled fingerprint images.
const imagePrefix = "fingerprints"

// Enroller inserts new reference records, optionally attaching a
// fingerprint image stored as a blob.
type Enroller struct {
	storage service.Storage
	blobs   blobstore.Store
}

// NewEnroller creates an enroller from its collaborators.
func NewEnroller(storage service.Storage, blobs blobstore.Store) *Enroller {
	return &Enroller{storage: storage, blobs: blobs}
}

// EnrollmentRequest carries everything needed to enroll one fingerprint.
type EnrollmentRequest struct {
	SubjectInfo    map[string]any
	AssignmentData map[string]any
	Points         model.PointSet
	Image          []byte
	ImageExt       string // file extension including the dot, e.g. ".png"
	ImageType      string // MIME content type
}

// Enroll stores a new reference record and returns it. The record's
// minutiae are persisted with canonical named keys; an attached image is
// uploaded under a generated fingerprint ID and its URL recorded in the
// assignment data.
func (e *Enroller) Enroll(ctx context.Context, req EnrollmentRequest) (*model.ReferenceRecord, error) {
	assignment := req.AssignmentData
	if assignment == nil {
		assignment = make(map[string]any)
	}

	fingerprintID, _ := assignment["fingerprintId"].(string)
	if fingerprintID == "" {
		fingerprintID = NewFingerprintID()
		assignment["fingerprintId"] = fingerprintID
	}

	if len(req.Image) > 0 {
		ext := strings.ToLower(req.ImageExt)
		if ext == "" {
			ext = ".png"
		}
		name := fmt.Sprintf("%s/%s%s", imagePrefix, fingerprintID, ext)
		if err := e.blobs.Put(ctx, name, req.Image, req.ImageType); err != nil {
			return nil, common.NewUserError(err, "failed to upload fingerprint image")
		}
		assignment["imageUrl"] = e.blobs.URL(name)
		slog.Info("uploaded fingerprint image", "fingerprint_id", fingerprintID, "blob", name)
	}

	record := &model.ReferenceRecord{
		ID: uuid.NewString(),
		MatchData: model.MatchData{
			SubjectInfo:    req.SubjectInfo,
			AssignmentData: assignment,
		},
		Minutiae: encodePoints(req.Points),
	}
	record.SRN = record.ResolveSRN()

	if err := e.storage.SaveReferenceRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEnrollmentFailed, err)
	}

	slog.Info("enrolled reference record", "id", record.ID, "srn", record.SRN, "points", len(req.Points))
	return record, nil
}

// NewFingerprintID generates an identifier of the fixed readable format
// "FP" followed by 8 uppercase hex characters.
func NewFingerprintID() string {
	u := uuid.New()
	return "FP" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

// encodePoints converts normalized points to the named-key stored shape.
func encodePoints(points model.PointSet) []any {
	encoded := make([]any, 0, len(points))
	for _, p := range points {
		encoded = append(encoded, map[string]any{
			"x":     p.X,
			"y":     p.Y,
			"type":  p.Type,
			"angle": p.Angle,
		})
	}
	return encoded
}
