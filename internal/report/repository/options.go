package repository

import "encoding/json"

type CreatePendingOptions struct {
	OwnerID    string
	ReportType string
}

type PublishOptions struct {
	ReportID                  string
	Data                      json.RawMessage
	SourceDataHash            string
	SourceSubmissionIDs       []string
	ModelUsed                 string
	GenerationDurationSeconds float64
	ArtifactURL               string
}

type MarkFailedOptions struct {
	ReportID     string
	ErrorMessage string
}

type ListByOwnerOptions struct {
	OwnerID    string
	ReportType string
	Status     string
	Limit      int64
	Offset     int64
}
