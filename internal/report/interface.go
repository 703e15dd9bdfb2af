package report

import (
	"context"

	"careersight-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// HasMinimumData reports whether every required source form for the report
	// type has a completed answer set. Optional forms never gate this.
	HasMinimumData(ctx context.Context, sc model.Scope, reportType string) (ReadinessOutput, error)

	// GetExistingReport returns the current published report from cache or
	// store, or nil when none exists. Never triggers generation.
	GetExistingReport(ctx context.Context, sc model.Scope, reportType string) (*ReportOutput, error)

	// GetPendingReport returns the in-flight pending report, or nil. Used for
	// UI polling.
	GetPendingReport(ctx context.Context, sc model.Scope, reportType string) (*ReportOutput, error)

	// QueueReportGeneration creates a pending placeholder and schedules
	// background generation. Idempotent while a pending report exists.
	QueueReportGeneration(ctx context.Context, sc model.Scope, input QueueInput) (QueueOutput, error)

	// GenerateReport runs the full pipeline synchronously. Unless forced, a
	// published report whose source hash still matches is returned without
	// calling the LLM.
	GenerateReport(ctx context.Context, sc model.Scope, input GenerateInput) (ReportOutput, error)

	// ProcessInBackground handles one claimed queue item. A nil error means
	// the item is finished (including terminal generation failures and
	// superseded placeholders); an error means infra trouble and the item
	// should be retried.
	ProcessInBackground(ctx context.Context, item QueueItem) error

	// ProcessNext claims one due queue item and processes it, completing or
	// releasing it based on the outcome. Returns false when the queue is empty.
	ProcessNext(ctx context.Context) (bool, error)

	MarkViewed(ctx context.Context, sc model.Scope, reportID string) error
	ClearCache(ctx context.Context, sc model.Scope, reportType string) error
	DownloadReport(ctx context.Context, sc model.Scope, reportType string) (DownloadOutput, error)
	ListReports(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
}
