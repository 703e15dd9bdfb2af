package postgre

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"careersight-srv/internal/model"
)

var reportColumns = []string{
	"id", "owner_id", "report_type", "version", "status",
	"data", "error_message",
	"source_data_hash", "source_submission_ids", "model_used",
	"generation_duration_seconds", "artifact_url",
	"generated_at", "viewed_at", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanReport maps one row (selected with reportColumns) to the model.
func scanReport(row rowScanner) (*model.Report, error) {
	var (
		rpt           model.Report
		data          []byte
		errorMessage  sql.NullString
		sourceHash    sql.NullString
		submissionIDs pq.StringArray
		modelUsed     sql.NullString
		duration      sql.NullFloat64
		artifactURL   sql.NullString
		generatedAt   sql.NullTime
		viewedAt      sql.NullTime
	)

	err := row.Scan(
		&rpt.ID, &rpt.OwnerID, &rpt.ReportType, &rpt.Version, &rpt.Status,
		&data, &errorMessage,
		&sourceHash, &submissionIDs, &modelUsed,
		&duration, &artifactURL,
		&generatedAt, &viewedAt, &rpt.CreatedAt, &rpt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		rpt.Data = json.RawMessage(data)
	}
	rpt.ErrorMessage = errorMessage.String
	rpt.SourceDataHash = sourceHash.String
	rpt.SourceSubmissionIDs = []string(submissionIDs)
	rpt.ModelUsed = modelUsed.String
	rpt.GenerationDurationSeconds = duration.Float64
	rpt.ArtifactURL = artifactURL.String
	if generatedAt.Valid {
		t := generatedAt.Time
		rpt.GeneratedAt = &t
	}
	if viewedAt.Valid {
		t := viewedAt.Time
		rpt.ViewedAt = &t
	}

	return &rpt, nil
}
