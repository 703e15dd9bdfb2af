package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careersight-srv/internal/model"
	"careersight-srv/internal/prompt"
	"careersight-srv/internal/report"
	"careersight-srv/internal/report/repository"
	"careersight-srv/pkg/minio"
	"careersight-srv/pkg/paginator"
)

const downloadURLExpiry = 30 * time.Minute

// HasMinimumData checks that every required source form for the report type
// has a completed answer set. Optional forms never gate readiness.
func (uc *implUseCase) HasMinimumData(ctx context.Context, sc model.Scope, reportType string) (report.ReadinessOutput, error) {
	cfg, err := prompt.ConfigFor(reportType)
	if err != nil {
		return report.ReadinessOutput{}, report.ErrInvalidReportType
	}

	missing := make([]string, 0)
	for _, formType := range cfg.RequiredForms {
		as, err := uc.submissions.GetLatestCompleted(ctx, sc.UserID, formType)
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.HasMinimumData: Failed to get submission %s: %v", formType, err)
			return report.ReadinessOutput{}, err
		}
		if as == nil {
			missing = append(missing, formType)
		}
	}

	return report.ReadinessOutput{
		ReportType:   reportType,
		Ready:        len(missing) == 0,
		MissingForms: missing,
	}, nil
}

// GetExistingReport returns the current published report, cache first. Never
// triggers generation.
func (uc *implUseCase) GetExistingReport(ctx context.Context, sc model.Scope, reportType string) (*report.ReportOutput, error) {
	if !prompt.IsValidReportType(reportType) {
		return nil, report.ErrInvalidReportType
	}

	data, err := uc.cache.GetReportData(ctx, sc.UserID, reportType)
	if err == nil {
		out := report.ReportOutput{
			ReportType: reportType,
			Status:     model.ReportStatusPublished,
			Data:       data,
		}
		return &out, nil
	}
	if err != repository.ErrCacheMiss {
		uc.l.Warnf(ctx, "report.usecase.GetExistingReport: Cache read failed, falling back to store: %v", err)
	}

	rpt, err := uc.repo.GetCurrent(ctx, sc.UserID, reportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetExistingReport: Failed to get current report: %v", err)
		return nil, err
	}
	if rpt == nil {
		return nil, nil
	}

	if err := uc.cache.SetReportData(ctx, sc.UserID, reportType, rpt.Data); err != nil {
		uc.l.Warnf(ctx, "report.usecase.GetExistingReport: Failed to repopulate cache: %v", err)
	}

	out := buildReportOutput(rpt)
	return &out, nil
}

// GetPendingReport returns the in-flight placeholder for UI polling, or nil.
func (uc *implUseCase) GetPendingReport(ctx context.Context, sc model.Scope, reportType string) (*report.ReportOutput, error) {
	if !prompt.IsValidReportType(reportType) {
		return nil, report.ErrInvalidReportType
	}

	rpt, err := uc.repo.GetPending(ctx, sc.UserID, reportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GetPendingReport: Failed to get pending report: %v", err)
		return nil, err
	}
	if rpt == nil {
		return nil, nil
	}

	out := buildReportOutput(rpt)
	return &out, nil
}

// QueueReportGeneration creates a pending placeholder and schedules
// background generation. While a pending report exists, or the current
// published report already covers the caller's latest answers, this is a
// no-op that returns the existing entity.
func (uc *implUseCase) QueueReportGeneration(ctx context.Context, sc model.Scope, input report.QueueInput) (report.QueueOutput, error) {
	if !prompt.IsValidReportType(input.ReportType) {
		return report.QueueOutput{}, report.ErrInvalidReportType
	}

	src, missing, err := uc.collectSource(ctx, sc.UserID, input.ReportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to collect source data: %v", err)
		return report.QueueOutput{}, err
	}
	if len(missing) > 0 {
		return report.QueueOutput{}, report.ErrInsufficientData
	}

	current, err := uc.repo.GetCurrent(ctx, sc.UserID, input.ReportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to get current report: %v", err)
		return report.QueueOutput{}, err
	}
	if current != nil && current.SourceDataHash == src.hash {
		// Source answers have not changed since the last generation;
		// regenerating would produce an equivalent report.
		return report.QueueOutput{
			ReportID: current.ID,
			Status:   model.ReportStatusPublished,
			Message:  "Report is already up to date",
		}, nil
	}

	rpt, err := uc.repo.CreatePending(ctx, repository.CreatePendingOptions{
		OwnerID:    sc.UserID,
		ReportType: input.ReportType,
	})
	if err == repository.ErrPendingExists {
		pending, getErr := uc.repo.GetPending(ctx, sc.UserID, input.ReportType)
		if getErr != nil {
			uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to get existing pending report: %v", getErr)
			return report.QueueOutput{}, getErr
		}
		out := report.QueueOutput{
			Status:  model.ReportStatusPending,
			Message: "Report generation is already pending",
		}
		if pending != nil {
			out.ReportID = pending.ID
			out.QueuedAt = pending.CreatedAt.Format(time.RFC3339)
		}
		return out, nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to create pending report: %v", err)
		return report.QueueOutput{}, err
	}

	payload, err := report.EncodeQueueItem(report.QueueItem{
		ReportType:      input.ReportType,
		OwnerID:         sc.UserID,
		PendingReportID: rpt.ID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to encode queue item: %v", err)
		uc.failPending(ctx, rpt, "failed to encode queue item")
		return report.QueueOutput{}, err
	}

	if err := uc.queue.Enqueue(ctx, payload, uc.config.QueueDelay); err != nil {
		uc.l.Errorf(ctx, "report.usecase.QueueReportGeneration: Failed to enqueue item: %v", err)
		// Do not leave an orphan placeholder nobody will ever process.
		uc.failPending(ctx, rpt, "failed to enqueue generation task")
		return report.QueueOutput{}, err
	}

	if uc.config.ImmediateDispatch && uc.config.QueueDelay <= 0 {
		go func() {
			if _, err := uc.ProcessNext(context.Background()); err != nil {
				uc.l.Errorf(context.Background(), "report.usecase.QueueReportGeneration: Immediate dispatch failed: %v", err)
			}
		}()
	}

	return report.QueueOutput{
		ReportID: rpt.ID,
		Status:   model.ReportStatusPending,
		Message:  "Report generation queued",
		QueuedAt: rpt.CreatedAt.Format(time.RFC3339),
	}, nil
}

// MarkViewed stamps first view on a report owned by the caller.
func (uc *implUseCase) MarkViewed(ctx context.Context, sc model.Scope, reportID string) error {
	rpt, err := uc.repo.GetByID(ctx, reportID)
	if err == repository.ErrReportNotFound {
		return report.ErrReportNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.MarkViewed: Failed to get report: %v", err)
		return err
	}
	if rpt.OwnerID != sc.UserID {
		return report.ErrReportNotFound
	}

	if err := uc.repo.MarkViewed(ctx, reportID, time.Now()); err != nil {
		uc.l.Errorf(ctx, "report.usecase.MarkViewed: Failed to mark viewed: %v", err)
		return err
	}

	return nil
}

// ClearCache drops the cached report data for the caller and type.
func (uc *implUseCase) ClearCache(ctx context.Context, sc model.Scope, reportType string) error {
	if !prompt.IsValidReportType(reportType) {
		return report.ErrInvalidReportType
	}
	return uc.cache.DeleteReportData(ctx, sc.UserID, reportType)
}

// DownloadReport returns a presigned URL for the current published report's
// JSON artifact.
func (uc *implUseCase) DownloadReport(ctx context.Context, sc model.Scope, reportType string) (report.DownloadOutput, error) {
	if !prompt.IsValidReportType(reportType) {
		return report.DownloadOutput{}, report.ErrInvalidReportType
	}

	rpt, err := uc.repo.GetCurrent(ctx, sc.UserID, reportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to get current report: %v", err)
		return report.DownloadOutput{}, err
	}
	if rpt == nil {
		return report.DownloadOutput{}, report.ErrReportNotFound
	}
	if rpt.ArtifactURL == "" {
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	presigned, err := uc.storage.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: uc.config.ReportBucket,
		ObjectName: rpt.ArtifactURL,
		Expiry:     downloadURLExpiry,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to generate presigned URL: %v", err)
		return report.DownloadOutput{}, report.ErrDownloadURLFailed
	}

	return report.DownloadOutput{
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt.Format(time.RFC3339),
		FileName:    downloadFileName(rpt),
	}, nil
}

// ListReports returns a page of the caller's report history.
func (uc *implUseCase) ListReports(ctx context.Context, sc model.Scope, input report.ListInput) (report.ListOutput, error) {
	if input.ReportType != "" && !prompt.IsValidReportType(input.ReportType) {
		return report.ListOutput{}, report.ErrInvalidReportType
	}

	input.PagQuery.Adjust()

	reports, total, err := uc.repo.ListByOwner(ctx, repository.ListByOwnerOptions{
		OwnerID:    sc.UserID,
		ReportType: input.ReportType,
		Status:     input.Status,
		Limit:      input.PagQuery.Limit,
		Offset:     input.PagQuery.Offset(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports: Failed to list reports: %v", err)
		return report.ListOutput{}, err
	}

	outputs := make([]report.ReportOutput, 0, len(reports))
	for _, rpt := range reports {
		outputs = append(outputs, buildReportOutput(rpt))
	}

	return report.ListOutput{
		Reports: outputs,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(outputs)),
			PerPage:     input.PagQuery.Limit,
			CurrentPage: input.PagQuery.Page,
		},
	}, nil
}

// ----------- Private helpers -----------

// failPending marks a placeholder failed, logging but otherwise swallowing
// store errors since this already runs on a failure path.
func (uc *implUseCase) failPending(ctx context.Context, rpt *model.Report, message string) {
	if err := uc.repo.MarkFailed(ctx, repository.MarkFailedOptions{
		ReportID:     rpt.ID,
		ErrorMessage: message,
	}); err != nil {
		uc.l.Errorf(ctx, "report.usecase: Failed to mark report %s failed: %v", rpt.ID, err)
	}
}

func downloadFileName(rpt *model.Report) string {
	return fmt.Sprintf("%s_v%d.json", strings.ToLower(rpt.ReportType), rpt.Version)
}

func buildReportOutput(rpt *model.Report) report.ReportOutput {
	out := report.ReportOutput{
		ID:                        rpt.ID,
		ReportType:                rpt.ReportType,
		Version:                   rpt.Version,
		Status:                    rpt.Status,
		Data:                      rpt.Data,
		ErrorMessage:              rpt.ErrorMessage,
		ModelUsed:                 rpt.ModelUsed,
		GenerationDurationSeconds: rpt.GenerationDurationSeconds,
		CreatedAt:                 rpt.CreatedAt.Format(time.RFC3339),
	}
	if rpt.GeneratedAt != nil {
		t := rpt.GeneratedAt.Format(time.RFC3339)
		out.GeneratedAt = &t
	}
	if rpt.ViewedAt != nil {
		t := rpt.ViewedAt.Format(time.RFC3339)
		out.ViewedAt = &t
	}
	return out
}
