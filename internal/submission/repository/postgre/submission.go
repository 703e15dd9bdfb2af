package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"careersight-srv/internal/model"
)

// GetLatestCompleted returns the newest completed answer set for the form,
// or nil when none exists.
func (r *implRepository) GetLatestCompleted(ctx context.Context, ownerID, formType string) (*model.AnswerSet, error) {
	query, args, err := r.builder.
		Select("id", "owner_id", "form_type", "answers", "completed_at").
		From("form_submissions").
		Where("owner_id = ? AND form_type = ? AND status = ?", ownerID, formType, "COMPLETED").
		OrderBy("completed_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "submission.repository.postgre.GetLatestCompleted: Failed to build query: %v", err)
		return nil, err
	}

	var (
		as         model.AnswerSet
		rawAnswers []byte
		completed  time.Time
	)
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&as.SubmissionID, &as.OwnerID, &as.FormType, &rawAnswers, &completed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.l.Errorf(ctx, "submission.repository.postgre.GetLatestCompleted: Failed to scan row: %v", err)
		return nil, err
	}

	if err := json.Unmarshal(rawAnswers, &as.Answers); err != nil {
		r.l.Errorf(ctx, "submission.repository.postgre.GetLatestCompleted: Failed to decode answers for %s: %v", as.SubmissionID, err)
		return nil, fmt.Errorf("decode answers for submission %s: %w", as.SubmissionID, err)
	}
	as.CompletedAt = completed

	return &as, nil
}
