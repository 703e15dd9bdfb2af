package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"careersight-srv/internal/model"
	"careersight-srv/internal/prompt"
	"careersight-srv/internal/report"
	"careersight-srv/internal/report/repository"
	"careersight-srv/pkg/minio"
	"careersight-srv/pkg/openai"
)

// GenerateReport runs the full pipeline synchronously.
//
// Order of checks: minimum data, cache (unless forced), published entity with
// a matching source hash (unless forced), then the LLM pipeline on a fresh
// pending placeholder.
func (uc *implUseCase) GenerateReport(ctx context.Context, sc model.Scope, input report.GenerateInput) (report.ReportOutput, error) {
	if !prompt.IsValidReportType(input.ReportType) {
		return report.ReportOutput{}, report.ErrInvalidReportType
	}

	readiness, err := uc.HasMinimumData(ctx, sc, input.ReportType)
	if err != nil {
		return report.ReportOutput{}, err
	}
	if !readiness.Ready {
		return report.ReportOutput{}, report.ErrInsufficientData
	}

	if !input.Force {
		if data, err := uc.cache.GetReportData(ctx, sc.UserID, input.ReportType); err == nil {
			return report.ReportOutput{
				ReportType: input.ReportType,
				Status:     model.ReportStatusPublished,
				Data:       data,
			}, nil
		}
	}

	src, missing, err := uc.collectSource(ctx, sc.UserID, input.ReportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GenerateReport: Failed to collect source data: %v", err)
		return report.ReportOutput{}, err
	}
	if len(missing) > 0 {
		return report.ReportOutput{}, report.ErrInsufficientData
	}

	if !input.Force {
		current, err := uc.repo.GetCurrent(ctx, sc.UserID, input.ReportType)
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.GenerateReport: Failed to get current report: %v", err)
			return report.ReportOutput{}, err
		}
		if current != nil && current.SourceDataHash == src.hash {
			// Source answers have not changed since the last generation, so
			// the stored result is equivalent. Skip the LLM entirely.
			if err := uc.cache.SetReportData(ctx, sc.UserID, input.ReportType, current.Data); err != nil {
				uc.l.Warnf(ctx, "report.usecase.GenerateReport: Failed to repopulate cache: %v", err)
			}
			return buildReportOutput(current), nil
		}
	}

	rpt, err := uc.repo.CreatePending(ctx, repository.CreatePendingOptions{
		OwnerID:    sc.UserID,
		ReportType: input.ReportType,
	})
	if err == repository.ErrPendingExists {
		// Someone else already queued this; report their placeholder instead
		// of erroring.
		pending, getErr := uc.repo.GetPending(ctx, sc.UserID, input.ReportType)
		if getErr != nil || pending == nil {
			return report.ReportOutput{}, report.ErrReportNotFound
		}
		return buildReportOutput(pending), nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.GenerateReport: Failed to create pending report: %v", err)
		return report.ReportOutput{}, err
	}

	published, err := uc.runGeneration(ctx, rpt, src, input.Force)
	if err != nil {
		return report.ReportOutput{}, err
	}

	return buildReportOutput(published), nil
}

// ProcessInBackground handles one decoded queue item. Nil means the item is
// finished; an error means infra trouble and the caller should release it.
func (uc *implUseCase) ProcessInBackground(ctx context.Context, item report.QueueItem) error {
	rpt, err := uc.repo.GetByID(ctx, item.PendingReportID)
	if err == repository.ErrReportNotFound {
		uc.l.Warnf(ctx, "report.usecase.ProcessInBackground: Pending report %s no longer exists", item.PendingReportID)
		return nil
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ProcessInBackground: Failed to get report: %v", err)
		return err
	}
	if rpt.Status != model.ReportStatusPending {
		// Superseded: someone already published or failed this placeholder.
		uc.l.Infof(ctx, "report.usecase.ProcessInBackground: Report %s is %s, skipping", rpt.ID, rpt.Status)
		return nil
	}

	src, missing, err := uc.collectSource(ctx, rpt.OwnerID, rpt.ReportType)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ProcessInBackground: Failed to collect source data: %v", err)
		return err
	}
	if len(missing) > 0 {
		uc.failPending(ctx, rpt, "required source forms not complete: "+strings.Join(missing, ", "))
		uc.publishFailedEvent(ctx, rpt, report.KindException)
		return nil
	}

	if _, err := uc.runGeneration(ctx, rpt, src, false); err != nil {
		var genErr *report.GenerateError
		if errors.As(err, &genErr) {
			// Terminal generation failure, already persisted. The item is done.
			return nil
		}
		return err
	}

	return nil
}

// ProcessNext claims one due item and drives it to completion or release.
func (uc *implUseCase) ProcessNext(ctx context.Context) (bool, error) {
	payload, err := uc.queue.Claim(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ProcessNext: Failed to claim queue item: %v", err)
		return false, err
	}
	if payload == nil {
		return false, nil
	}

	item, err := report.DecodeQueueItem(payload)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ProcessNext: Dropping undecodable queue item: %v", err)
		if cerr := uc.queue.Complete(ctx, payload); cerr != nil {
			uc.l.Errorf(ctx, "report.usecase.ProcessNext: Failed to complete bad item: %v", cerr)
		}
		return true, nil
	}

	if err := uc.ProcessInBackground(ctx, item); err != nil {
		if rerr := uc.queue.Release(ctx, payload); rerr != nil {
			uc.l.Errorf(ctx, "report.usecase.ProcessNext: Failed to release item: %v", rerr)
		}
		return true, err
	}

	if err := uc.queue.Complete(ctx, payload); err != nil {
		uc.l.Errorf(ctx, "report.usecase.ProcessNext: Failed to complete item: %v", err)
		return true, err
	}

	return true, nil
}

// runGeneration executes prompt → gateway → parse → publish on an existing
// pending placeholder. All failures are persisted on the placeholder and
// returned as a *report.GenerateError; other error types mean infrastructure
// trouble where the placeholder was left pending.
func (uc *implUseCase) runGeneration(ctx context.Context, rpt *model.Report, src *sourceData, force bool) (out *model.Report, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "report.usecase.runGeneration: panic recovered: %v", r)
			uc.failPending(ctx, rpt, fmt.Sprintf("internal panic: %v", r))
			uc.publishFailedEvent(ctx, rpt, report.KindException)
			out = nil
			err = &report.GenerateError{Kind: report.KindException, Message: "unexpected internal error"}
		}
	}()

	if !force {
		current, cerr := uc.repo.GetCurrent(ctx, rpt.OwnerID, rpt.ReportType)
		if cerr != nil {
			uc.l.Errorf(ctx, "report.usecase.runGeneration: Failed to get current report: %v", cerr)
			return nil, cerr
		}
		if current != nil && current.SourceDataHash == src.hash {
			// Equivalent source data: republish the stored result so the
			// placeholder still resolves, without invoking the LLM.
			return uc.publishResult(ctx, rpt, src, current.Data, current.ModelUsed, current.ArtifactURL, 0)
		}
	}

	promptText, requiredFields, perr := prompt.Build(rpt.ReportType, src.promptCtx)
	if perr != nil {
		uc.failPending(ctx, rpt, fmt.Sprintf("prompt build failed: %v", perr))
		uc.publishFailedEvent(ctx, rpt, report.KindException)
		return nil, &report.GenerateError{Kind: report.KindException, Message: "could not prepare the report prompt"}
	}

	raw, lerr := uc.llm.ChatCompletion(ctx, uc.config.SystemPrompt, promptText)
	if lerr != nil {
		kind := report.KindException
		message := "the report service hit an unexpected error"
		if errors.Is(lerr, openai.ErrTimeout) {
			kind = report.KindAPITimeout
			message = "report generation took longer than expected, please retry"
		}
		uc.l.Errorf(ctx, "report.usecase.runGeneration: LLM call failed for report %s: %v", rpt.ID, lerr)
		uc.failPending(ctx, rpt, fmt.Sprintf("LLM call failed: %v", lerr))
		uc.publishFailedEvent(ctx, rpt, kind)
		return nil, &report.GenerateError{Kind: kind, Message: message}
	}

	obj, verr := prompt.ParseResponse(raw, requiredFields)
	if verr != nil {
		uc.l.Errorf(ctx, "report.usecase.runGeneration: Invalid LLM response for report %s: %v", rpt.ID, verr)
		uc.failPending(ctx, rpt, fmt.Sprintf("invalid LLM response: %v", verr))
		uc.publishFailedEvent(ctx, rpt, report.KindParseError)
		return nil, &report.GenerateError{Kind: report.KindParseError, Message: "the generated report was malformed, try regenerating"}
	}

	data, merr := json.Marshal(obj)
	if merr != nil {
		uc.failPending(ctx, rpt, fmt.Sprintf("failed to serialize report data: %v", merr))
		uc.publishFailedEvent(ctx, rpt, report.KindException)
		return nil, &report.GenerateError{Kind: report.KindException, Message: "the report service hit an unexpected error"}
	}

	artifact := uc.uploadArtifact(ctx, rpt, data)

	return uc.publishResult(ctx, rpt, src, data, uc.llm.Model(), artifact, time.Since(start).Seconds())
}

// publishResult transitions the placeholder to PUBLISHED, populates the
// cache and emits the lifecycle event.
func (uc *implUseCase) publishResult(ctx context.Context, rpt *model.Report, src *sourceData, data json.RawMessage, modelUsed, artifactURL string, durationSeconds float64) (*model.Report, error) {
	err := uc.repo.Publish(ctx, repository.PublishOptions{
		ReportID:                  rpt.ID,
		Data:                      data,
		SourceDataHash:            src.hash,
		SourceSubmissionIDs:       src.submissionIDs,
		ModelUsed:                 modelUsed,
		GenerationDurationSeconds: durationSeconds,
		ArtifactURL:               artifactURL,
	})
	if err == repository.ErrNotPending {
		// Lost a double-write race; whoever won owns the result.
		uc.l.Warnf(ctx, "report.usecase.publishResult: Report %s no longer pending", rpt.ID)
		current, cerr := uc.repo.GetCurrent(ctx, rpt.OwnerID, rpt.ReportType)
		if cerr == nil && current != nil {
			return current, nil
		}
		return nil, &report.GenerateError{Kind: report.KindException, Message: "the report was superseded, try again"}
	}
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.publishResult: Failed to publish report %s: %v", rpt.ID, err)
		uc.failPending(ctx, rpt, fmt.Sprintf("failed to persist report: %v", err))
		uc.publishFailedEvent(ctx, rpt, report.KindException)
		return nil, &report.GenerateError{Kind: report.KindException, Message: "the report service hit an unexpected error"}
	}

	if err := uc.cache.SetReportData(ctx, rpt.OwnerID, rpt.ReportType, data); err != nil {
		uc.l.Warnf(ctx, "report.usecase.publishResult: Failed to populate cache: %v", err)
	}

	now := time.Now()
	published := *rpt
	published.Status = model.ReportStatusPublished
	published.Data = data
	published.SourceDataHash = src.hash
	published.SourceSubmissionIDs = src.submissionIDs
	published.ModelUsed = modelUsed
	published.GenerationDurationSeconds = durationSeconds
	published.ArtifactURL = artifactURL
	published.GeneratedAt = &now

	uc.publishPublishedEvent(ctx, &published)

	return &published, nil
}

// uploadArtifact stores the report body as a JSON object for later download.
// Best-effort: a storage failure never fails the generation.
func (uc *implUseCase) uploadArtifact(ctx context.Context, rpt *model.Report, data []byte) string {
	if uc.storage == nil {
		return ""
	}

	objectName := fmt.Sprintf("reports/%s/%s/v%d.json", rpt.OwnerID, rpt.ReportType, rpt.Version)
	_, err := uc.storage.UploadFile(ctx, &minio.UploadRequest{
		BucketName:  uc.config.ReportBucket,
		ObjectName:  objectName,
		Reader:      strings.NewReader(string(data)),
		Size:        int64(len(data)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"report_id":   rpt.ID,
			"report_type": rpt.ReportType,
			"owner_id":    rpt.OwnerID,
		},
	})
	if err != nil {
		uc.l.Warnf(ctx, "report.usecase.uploadArtifact: Failed to upload artifact for report %s: %v", rpt.ID, err)
		return ""
	}

	return objectName
}

func (uc *implUseCase) publishPublishedEvent(ctx context.Context, rpt *model.Report) {
	if uc.events == nil {
		return
	}
	evt := report.ReportEvent{
		ReportID:   rpt.ID,
		OwnerID:    rpt.OwnerID,
		ReportType: rpt.ReportType,
		Version:    rpt.Version,
		Status:     rpt.Status,
		OccurredAt: time.Now(),
	}
	if err := uc.events.PublishReportPublished(ctx, evt); err != nil {
		uc.l.Warnf(ctx, "report.usecase: Failed to publish lifecycle event for report %s: %v", rpt.ID, err)
	}
}

func (uc *implUseCase) publishFailedEvent(ctx context.Context, rpt *model.Report, kind string) {
	if uc.events == nil {
		return
	}
	evt := report.ReportEvent{
		ReportID:   rpt.ID,
		OwnerID:    rpt.OwnerID,
		ReportType: rpt.ReportType,
		Version:    rpt.Version,
		Status:     model.ReportStatusFailed,
		ErrorKind:  kind,
		OccurredAt: time.Now(),
	}
	if err := uc.events.PublishReportFailed(ctx, evt); err != nil {
		uc.l.Warnf(ctx, "report.usecase: Failed to publish lifecycle event for report %s: %v", rpt.ID, err)
	}
}
