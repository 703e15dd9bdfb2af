package model

import (
	"encoding/json"
	"time"
)

// Report lifecycle statuses. A PENDING row is the in-flight placeholder and
// always transitions to PUBLISHED or FAILED. ARCHIVED is set externally when
// a regeneration discards history.
const (
	ReportStatusPending   = "PENDING"
	ReportStatusPublished = "PUBLISHED"
	ReportStatusFailed    = "FAILED"
	ReportStatusArchived  = "ARCHIVED"
)

// Report types producible by the pipeline.
const (
	ReportTypeRoleImpact        = "ROLE_IMPACT"
	ReportTypeSkillsGap         = "SKILLS_GAP"
	ReportTypeCareerTransitions = "CAREER_TRANSITIONS"
	ReportTypeLearningPath      = "LEARNING_PATH"
	ReportTypeStrengthsProfile  = "STRENGTHS_PROFILE"
	ReportTypeIndustryOutlook   = "INDUSTRY_OUTLOOK"
)

// Report is a generated career-analysis report record. Identity is
// (OwnerID, ReportType, Version); Version strictly increases per key and the
// current report is the highest published version.
type Report struct {
	ID         string
	OwnerID    string
	ReportType string
	Version    int

	Status       string
	Data         json.RawMessage
	ErrorMessage string

	// Generation metadata
	SourceDataHash            string
	SourceSubmissionIDs       []string
	ModelUsed                 string
	GenerationDurationSeconds float64
	ArtifactURL               string

	GeneratedAt *time.Time
	ViewedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the status can no longer change
// (except for external archival).
func (r *Report) IsTerminal() bool {
	return r.Status == ReportStatusPublished || r.Status == ReportStatusFailed || r.Status == ReportStatusArchived
}
