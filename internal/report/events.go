package report

import (
	"context"
	"time"
)

// ReportEvent describes one lifecycle transition for downstream consumers
// (notification service, analytics).
type ReportEvent struct {
	ReportID   string
	OwnerID    string
	ReportType string
	Version    int
	Status     string
	ErrorKind  string
	OccurredAt time.Time
}

// EventPublisher emits report lifecycle events. Publishing is best-effort:
// the pipeline never fails a generation because an event could not be sent.
//
//go:generate mockery --name EventPublisher
type EventPublisher interface {
	PublishReportPublished(ctx context.Context, evt ReportEvent) error
	PublishReportFailed(ctx context.Context, evt ReportEvent) error
}
