package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/model"
)

// SaveReferenceRecord persists an enrolled fingerprint. The minutiae
// payload is stored as JSON with whatever key shape it arrived in;
// normalization happens at scoring time.
func (s *SQLiteStorage) SaveReferenceRecord(ctx context.Context, record *model.ReferenceRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	minutiae, err := json.Marshal(record.Minutiae)
	if err != nil {
		return fmt.Errorf("failed to marshal minutiae: %w", err)
	}
	subjectInfo, err := json.Marshal(record.MatchData.SubjectInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal subject info: %w", err)
	}
	assignmentData, err := json.Marshal(record.MatchData.AssignmentData)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment data: %w", err)
	}

	query := `
		INSERT INTO reference_records (id, srn, minutiae, subject_info, assignment_data)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query,
		record.ID, record.ResolveSRN(), string(minutiae), string(subjectInfo), string(assignmentData),
	); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("reference record %s: %w", record.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save reference record: %w", err)
	}

	slog.Info("saved reference record", "id", record.ID, "srn", record.ResolveSRN(), "points", len(record.Minutiae))
	return nil
}

// GetReferenceRecord retrieves a single record by ID.
func (s *SQLiteStorage) GetReferenceRecord(ctx context.Context, id string) (*model.ReferenceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, srn, minutiae, subject_info, assignment_data, created_at
		FROM reference_records
		WHERE id = ?`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reference record %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reference record: %w", err)
	}
	return record, nil
}

// ListReferenceRecords returns the whole reference collection in
// enrollment order. This is the fetch the matching engine runs against.
func (s *SQLiteStorage) ListReferenceRecords(ctx context.Context) ([]model.ReferenceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, srn, minutiae, subject_info, assignment_data, created_at
		FROM reference_records
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reference records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []model.ReferenceRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reference record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reference records: %w", err)
	}
	return records, nil
}

// DeleteReferenceRecord removes a record from the collection.
func (s *SQLiteStorage) DeleteReferenceRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM reference_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reference record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reference record %s: %w", id, common.ErrNotFound)
	}

	slog.Info("deleted reference record", "id", id)
	return nil
}

// CountReferenceRecords returns the size of the reference collection.
func (s *SQLiteStorage) CountReferenceRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reference_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reference records: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.ReferenceRecord, error) {
	var record model.ReferenceRecord
	var srn sql.NullString
	var minutiae, subjectInfo, assignmentData sql.NullString

	if err := row.Scan(&record.ID, &srn, &minutiae, &subjectInfo, &assignmentData, &record.CreatedAt); err != nil {
		return nil, err
	}

	record.SRN = srn.String

	if minutiae.Valid && minutiae.String != "" {
		if err := json.Unmarshal([]byte(minutiae.String), &record.Minutiae); err != nil {
			return nil, fmt.Errorf("failed to unmarshal minutiae: %w", err)
		}
	}
	if subjectInfo.Valid && subjectInfo.String != "" && subjectInfo.String != "null" {
		if err := json.Unmarshal([]byte(subjectInfo.String), &record.MatchData.SubjectInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subject info: %w", err)
		}
	}
	if assignmentData.Valid && assignmentData.String != "" && assignmentData.String != "null" {
		if err := json.Unmarshal([]byte(assignmentData.String), &record.MatchData.AssignmentData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assignment data: %w", err)
		}
	}

	return &record, nil
}
