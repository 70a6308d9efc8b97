// Package testutil provides test helpers for storage-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/ferrovax/ridgeline/internal/model"
	"github.com/ferrovax/ridgeline/internal/service"
	"github.com/ferrovax/ridgeline/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite storage that is closed
// automatically when the test finishes.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// NamedPoint builds a stored minutia map with role-name keys.
func NamedPoint(x, y float64, typ any, angle float64) map[string]any {
	return map[string]any{"x": x, "y": y, "type": typ, "angle": angle}
}

// DigitKeyedPoint builds a stored minutia map with positional digit-string keys.
func DigitKeyedPoint(x, y float64, typ any, angle float64) map[string]any {
	return map[string]any{"0": x, "1": y, "2": typ, "3": angle}
}

// PositionalPoint builds a stored minutia as a positional array.
func PositionalPoint(x, y float64, typ any, angle float64) []any {
	return []any{x, y, typ, angle}
}

// MakeRecord builds a reference record ready to persist.
func MakeRecord(id, srn string, minutiae ...any) *model.ReferenceRecord {
	return &model.ReferenceRecord{
		ID:       id,
		SRN:      srn,
		Minutiae: minutiae,
		MatchData: model.MatchData{
			SubjectInfo: map[string]any{"id": srn},
		},
	}
}
