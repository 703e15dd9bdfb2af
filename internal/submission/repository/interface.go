package repository

import (
	"context"

	"careersight-srv/internal/model"
)

// Repository reads completed form submissions. The pipeline never writes
// submissions; the survey service owns that table.
//
//go:generate mockery --name Repository
type Repository interface {
	// GetLatestCompleted returns the newest completed answer set for a form,
	// or nil when the owner has not completed that form.
	GetLatestCompleted(ctx context.Context, ownerID, formType string) (*model.AnswerSet, error)
}
