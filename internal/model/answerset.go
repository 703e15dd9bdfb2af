package model

import "time"

// Source form types. Required forms gate report generation; PREFERENCES and
// INDUSTRY_CONTEXT are always optional and only enrich prompts when present.
const (
	FormCareerProfile    = "CAREER_PROFILE"
	FormSkillsAssessment = "SKILLS_ASSESSMENT"
	FormWorkHistory      = "WORK_HISTORY"
	FormCareerGoals      = "CAREER_GOALS"
	FormPreferences      = "PREFERENCES"
	FormIndustryContext  = "INDUSTRY_CONTEXT"
)

// AnswerSet is an immutable snapshot of one completed form submission.
// Produced by the submission store; read-only to the report pipeline.
type AnswerSet struct {
	FormType     string
	OwnerID      string
	SubmissionID string
	Answers      map[string]any
	CompletedAt  time.Time
}
