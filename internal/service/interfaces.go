// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ferrovax/ridgeline/internal/model"
)

// Storage defines the contract for the reference collection persistence
// layer. The matching core never talks to it directly; it receives
// already-materialized records.
type Storage interface {
	SaveReferenceRecord(ctx context.Context, record *model.ReferenceRecord) error
	GetReferenceRecord(ctx context.Context, id string) (*model.ReferenceRecord, error)
	ListReferenceRecords(ctx context.Context) ([]model.ReferenceRecord, error)
	DeleteReferenceRecord(ctx context.Context, id string) error
	CountReferenceRecords(ctx context.Context) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for collaborator calls. The
// matching core itself never retries; recovery belongs to the
// collaborator layer.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
