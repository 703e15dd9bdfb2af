package postgre

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"careersight-srv/internal/model"
	"careersight-srv/internal/report/repository"
)

// CreatePending allocates the next version and inserts a PENDING placeholder.
// The key's existing rows are locked inside the transaction so two concurrent
// requests cannot both allocate the same version; a unique index on
// (owner_id, report_type, version) backstops the first-ever insert race.
func (r *implRepository) CreatePending(ctx context.Context, opts repository.CreatePendingOptions) (*model.Report, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to begin transaction: %v", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT version, status FROM reports WHERE owner_id = $1 AND report_type = $2 FOR UPDATE`,
		opts.OwnerID, opts.ReportType)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to lock report rows: %v", err)
		return nil, err
	}

	maxVersion := 0
	pendingExists := false
	for rows.Next() {
		var (
			version int
			status  string
		)
		if err := rows.Scan(&version, &status); err != nil {
			rows.Close()
			r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to scan row: %v", err)
			return nil, err
		}
		if version > maxVersion {
			maxVersion = version
		}
		if status == model.ReportStatusPending {
			pendingExists = true
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to iterate rows: %v", err)
		return nil, err
	}

	if pendingExists {
		return nil, repository.ErrPendingExists
	}

	now := time.Now().UTC()
	rpt := &model.Report{
		ID:         uuid.NewString(),
		OwnerID:    opts.OwnerID,
		ReportType: opts.ReportType,
		Version:    maxVersion + 1,
		Status:     model.ReportStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query, args, err := r.builder.
		Insert("reports").
		Columns("id", "owner_id", "report_type", "version", "status", "created_at", "updated_at").
		Values(rpt.ID, rpt.OwnerID, rpt.ReportType, rpt.Version, rpt.Status, rpt.CreatedAt, rpt.UpdatedAt).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to build insert: %v", err)
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// Lost the race on the very first version for this key.
			return nil, repository.ErrPendingExists
		}
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to insert report: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.CreatePending: Failed to commit: %v", err)
		return nil, err
	}

	return rpt, nil
}

// Publish transitions a pending report to PUBLISHED with the generation
// output. The status guard in the WHERE clause rejects double-writes.
func (r *implRepository) Publish(ctx context.Context, opts repository.PublishOptions) error {
	now := time.Now().UTC()
	query, args, err := r.builder.
		Update("reports").
		Set("status", model.ReportStatusPublished).
		Set("data", []byte(opts.Data)).
		Set("source_data_hash", opts.SourceDataHash).
		Set("source_submission_ids", pq.Array(opts.SourceSubmissionIDs)).
		Set("model_used", opts.ModelUsed).
		Set("generation_duration_seconds", opts.GenerationDurationSeconds).
		Set("artifact_url", opts.ArtifactURL).
		Set("error_message", "").
		Set("generated_at", now).
		Set("updated_at", now).
		Where("id = ? AND status = ?", opts.ReportID, model.ReportStatusPending).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Publish: Failed to build update: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.Publish: Failed to update report: %v", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotPending
	}

	return nil
}

// MarkFailed moves a non-terminal report to FAILED. Rows already terminal
// are left untouched.
func (r *implRepository) MarkFailed(ctx context.Context, opts repository.MarkFailedOptions) error {
	query, args, err := r.builder.
		Update("reports").
		Set("status", model.ReportStatusFailed).
		Set("error_message", opts.ErrorMessage).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND status NOT IN (?, ?, ?)",
			opts.ReportID, model.ReportStatusPublished, model.ReportStatusFailed, model.ReportStatusArchived).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkFailed: Failed to build update: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkFailed: Failed to update report: %v", err)
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		r.l.Warnf(ctx, "report.repository.postgre.MarkFailed: Report %s already terminal", opts.ReportID)
	}

	return nil
}

// MarkViewed sets viewed_at once. Later calls find viewed_at already set and
// change nothing.
func (r *implRepository) MarkViewed(ctx context.Context, id string, viewedAt time.Time) error {
	query, args, err := r.builder.
		Update("reports").
		Set("viewed_at", viewedAt.UTC()).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND viewed_at IS NULL", id).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkViewed: Failed to build update: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.MarkViewed: Failed to update report: %v", err)
		return err
	}

	return nil
}
