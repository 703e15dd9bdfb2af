package repository

import (
	"context"
	"encoding/json"
	"time"

	"careersight-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// CreatePending allocates the next version for (owner, reportType) and
	// inserts a PENDING placeholder. Version allocation is atomic per key;
	// returns ErrPendingExists when a live pending row already exists.
	CreatePending(ctx context.Context, opts CreatePendingOptions) (*model.Report, error)

	// Publish transitions PENDING to PUBLISHED with the generation output.
	// Returns ErrNotPending when the row is no longer pending.
	Publish(ctx context.Context, opts PublishOptions) error

	// MarkFailed transitions any non-terminal row to FAILED. A no-op when the
	// row already reached a terminal status.
	MarkFailed(ctx context.Context, opts MarkFailedOptions) error

	// GetCurrent returns the highest published version, or nil when none.
	GetCurrent(ctx context.Context, ownerID, reportType string) (*model.Report, error)

	// GetPending returns the live pending row, or nil when none.
	GetPending(ctx context.Context, ownerID, reportType string) (*model.Report, error)

	GetByID(ctx context.Context, id string) (*model.Report, error)

	// MarkViewed sets viewed_at if unset. First view wins, later calls no-op.
	MarkViewed(ctx context.Context, id string, viewedAt time.Time) error

	// ListByOwner returns a page of reports plus the total row count.
	ListByOwner(ctx context.Context, opts ListByOwnerOptions) ([]*model.Report, int64, error)
}

// Cache holds the current published report data per (owner, reportType).
// Entries have no TTL and are invalidated explicitly.
//
//go:generate mockery --name Cache
type Cache interface {
	GetReportData(ctx context.Context, ownerID, reportType string) (json.RawMessage, error)
	SetReportData(ctx context.Context, ownerID, reportType string, data json.RawMessage) error
	DeleteReportData(ctx context.Context, ownerID, reportType string) error
}
