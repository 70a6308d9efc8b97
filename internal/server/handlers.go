package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferrovax/ridgeline/internal/engine"
	"github.com/ferrovax/ridgeline/internal/ingest"
	"github.com/ferrovax/ridgeline/internal/model"
)

// MatchResponse wraps the ranked outcome for one identification attempt.
type MatchResponse struct {
	Result  *model.RankedOutcome `json:"result"`
	Message string               `json:"message,omitempty"`
	Elapsed string               `json:"elapsed,omitempty"`
}

// RecordSummary is the list view of a reference record.
type RecordSummary struct {
	ID        string    `json:"id"`
	SRN       string    `json:"srn"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleMatch(c *fiber.Ctx) error {
	start := time.Now()

	table, err := s.readTable(c)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "minutiae table is empty")
	}

	outcome, err := s.identifier.Identify(c.Context(), table)
	if err != nil {
		return fmt.Errorf("match attempt failed: %w", err)
	}

	resp := MatchResponse{
		Result:  outcome,
		Elapsed: time.Since(start).String(),
	}
	if outcome == nil {
		resp.Message = "no match found"
	}
	return c.JSON(resp)
}

func (s *Server) handleEnroll(c *fiber.Ctx) error {
	table, err := s.readTable(c)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "minutiae table is empty")
	}

	// Enrollment uploads are in canonical column order.
	points := canonicalPoints(table)

	subjectInfo := map[string]any{}
	if id := c.FormValue("subject_id"); id != "" {
		subjectInfo["id"] = id
	}
	if name := c.FormValue("subject_name"); name != "" {
		subjectInfo["name"] = name
	}
	if raw := c.FormValue("subject_info"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &subjectInfo); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid subject_info JSON")
		}
	}

	assignment := map[string]any{}
	if notes := c.FormValue("notes"); notes != "" {
		assignment["additionalNotes"] = notes
	}
	if raw := c.FormValue("assignment_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &assignment); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid assignment_data JSON")
		}
	}

	req := engine.EnrollmentRequest{
		Points:         points,
		SubjectInfo:    subjectInfo,
		AssignmentData: assignment,
	}
	if file, err := c.FormFile("image"); err == nil {
		data, contentType, err := readUpload(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "failed to read image upload")
		}
		req.Image = data
		req.ImageExt = strings.ToLower(filepath.Ext(file.Filename))
		req.ImageType = contentType
	}

	record, err := s.enroller.Enroll(c.Context(), req)
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        record.ID,
		"srn":       record.SRN,
		"points":    len(record.Minutiae),
		"matchData": record.MatchData,
	})
}

func (s *Server) handleListRecords(c *fiber.Ctx) error {
	records, err := s.storage.ListReferenceRecords(c.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	summaries := make([]RecordSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, RecordSummary{
			ID:        r.ID,
			SRN:       r.ResolveSRN(),
			Points:    len(r.Minutiae),
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"records": summaries, "count": len(summaries)})
}

func (s *Server) handleGetRecord(c *fiber.Ctx) error {
	record, err := s.storage.GetReferenceRecord(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) handleDeleteRecord(c *fiber.Ctx) error {
	if err := s.storage.DeleteReferenceRecord(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRecordImage(c *fiber.Ctx) error {
	record, err := s.storage.GetReferenceRecord(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	name, ok := imageBlobName(record)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "record has no image")
	}

	blob, contentType, err := s.blobs.Open(c.Context(), name)
	if err != nil {
		return err
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(blob)
}

// readTable pulls the minutiae table from a multipart upload or, failing
// that, the raw request body.
func (s *Server) readTable(c *fiber.Ctx) ([][]string, error) {
	if file, err := c.FormFile("minutiae"); err == nil {
		data, _, err := readUpload(file)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "failed to read minutiae upload")
		}
		return parseTable(data)
	}

	if len(c.Body()) > 0 {
		return parseTable(c.Body())
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "minutiae CSV is required")
}

func parseTable(data []byte) ([][]string, error) {
	table, err := ingest.ReadTable(bytes.NewReader(data))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "minutiae CSV is malformed")
	}
	return table, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, file.Header.Get("Content-Type"), nil
}

// canonicalPoints interprets a table in the canonical x,y,type,angle order.
func canonicalPoints(table [][]string) model.PointSet {
	points := make(model.PointSet, 0, len(table))
	for _, row := range table {
		p := map[string]any{}
		if len(row) > 0 {
			p["x"] = row[0]
		}
		if len(row) > 1 {
			p["y"] = row[1]
		}
		if len(row) > 2 {
			p["type"] = row[2]
		}
		if len(row) > 3 {
			p["angle"] = row[3]
		}
		points = append(points, model.NormalizePoint(p))
	}
	return points
}

// imageBlobName reconstructs the blob key for a record's stored image.
func imageBlobName(record *model.ReferenceRecord) (string, bool) {
	fid, _ := record.MatchData.AssignmentData["fingerprintId"].(string)
	url, _ := record.MatchData.AssignmentData["imageUrl"].(string)
	if fid == "" || url == "" {
		return "", false
	}
	ext := filepath.Ext(url)
	if ext == "" {
		ext = ".png"
	}
	return "fingerprints/" + fid + ext, true
}
