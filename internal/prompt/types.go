package prompt

import (
	"errors"

	"careersight-srv/internal/model"
)

// Placeholder is interpolated for any answer the user has not provided.
const Placeholder = "not specified"

// ErrUnknownReportType is returned when no TypeConfig exists for a report type.
var ErrUnknownReportType = errors.New("prompt: unknown report type")

// Context is the bundle of completed answer sets assembled for one
// generation, keyed by form type. It includes the required forms plus any
// optional ones that happened to be present.
type Context map[string]model.AnswerSet

// field names one answer that a report type reads from a source form.
type field struct {
	Label    string
	FormType string
	Key      string
}

// TypeConfig is the per-report-type configuration. Report types are plain
// data values; the builder and the orchestrator are shared across all of them.
type TypeConfig struct {
	ReportType    string
	Title         string
	Instruction   string
	RequiredForms []string
	OptionalForms []string

	// Fields are interpolated into the prompt body in order.
	Fields []field

	// RequiredFields are the top-level keys the model response must contain.
	// FieldGuide describes each key inside the JSON-shape instruction.
	RequiredFields []string
	FieldGuide     map[string]string
}

var registry = map[string]TypeConfig{
	model.ReportTypeRoleImpact: {
		ReportType: model.ReportTypeRoleImpact,
		Title:      "AI Role Impact Analysis",
		Instruction: "Assess how AI and automation will reshape this person's current role over the next five years. " +
			"Be specific about which of their responsibilities are exposed and which become more valuable.",
		RequiredForms: []string{model.FormCareerProfile, model.FormSkillsAssessment, model.FormWorkHistory},
		OptionalForms: []string{model.FormPreferences, model.FormIndustryContext},
		Fields: []field{
			{Label: "Current role", FormType: model.FormCareerProfile, Key: "current_role"},
			{Label: "Industry", FormType: model.FormCareerProfile, Key: "industry"},
			{Label: "Years of experience", FormType: model.FormCareerProfile, Key: "years_experience"},
			{Label: "Education", FormType: model.FormCareerProfile, Key: "education_level"},
			{Label: "Technical skills", FormType: model.FormSkillsAssessment, Key: "technical_skills"},
			{Label: "Soft skills", FormType: model.FormSkillsAssessment, Key: "soft_skills"},
			{Label: "Recent positions", FormType: model.FormWorkHistory, Key: "recent_positions"},
			{Label: "Key responsibilities", FormType: model.FormWorkHistory, Key: "key_responsibilities"},
		},
		RequiredFields: []string{"impact_summary", "automation_risk", "augmentation_opportunities", "recommended_actions"},
		FieldGuide: map[string]string{
			"impact_summary":             "two-paragraph assessment of how AI changes this role",
			"automation_risk":            "object with a 0-100 score and the reasoning behind it",
			"augmentation_opportunities": "array of responsibilities AI makes more valuable",
			"recommended_actions":        "array of concrete actions ordered by urgency",
		},
	},
	model.ReportTypeSkillsGap: {
		ReportType: model.ReportTypeSkillsGap,
		Title:      "Skills Gap Analysis",
		Instruction: "Compare this person's current skills against what their stated career goal demands. " +
			"Identify the gaps that matter most and how to close them.",
		RequiredForms: []string{model.FormCareerProfile, model.FormSkillsAssessment, model.FormCareerGoals},
		OptionalForms: []string{model.FormPreferences, model.FormIndustryContext},
		Fields: []field{
			{Label: "Current role", FormType: model.FormCareerProfile, Key: "current_role"},
			{Label: "Industry", FormType: model.FormCareerProfile, Key: "industry"},
			{Label: "Technical skills", FormType: model.FormSkillsAssessment, Key: "technical_skills"},
			{Label: "Soft skills", FormType: model.FormSkillsAssessment, Key: "soft_skills"},
			{Label: "Skill confidence", FormType: model.FormSkillsAssessment, Key: "confidence_ratings"},
			{Label: "Target role", FormType: model.FormCareerGoals, Key: "target_role"},
			{Label: "Goal timeframe", FormType: model.FormCareerGoals, Key: "timeframe"},
		},
		RequiredFields: []string{"current_strengths", "skill_gaps", "priority_skills", "development_plan"},
		FieldGuide: map[string]string{
			"current_strengths": "array of skills already strong enough for the target role",
			"skill_gaps":        "array of objects naming each gap and its severity",
			"priority_skills":   "array of at most five skills to develop first",
			"development_plan":  "object mapping each priority skill to a concrete first step",
		},
	},
	model.ReportTypeCareerTransitions: {
		ReportType: model.ReportTypeCareerTransitions,
		Title:      "Career Transition Paths",
		Instruction: "Propose realistic career transitions from this person's current position, " +
			"weighing their transferable skills against the risk of each move.",
		RequiredForms: []string{model.FormCareerProfile, model.FormSkillsAssessment, model.FormWorkHistory, model.FormCareerGoals},
		OptionalForms: []string{model.FormPreferences, model.FormIndustryContext},
		Fields: []field{
			{Label: "Current role", FormType: model.FormCareerProfile, Key: "current_role"},
			{Label: "Industry", FormType: model.FormCareerProfile, Key: "industry"},
			{Label: "Years of experience", FormType: model.FormCareerProfile, Key: "years_experience"},
			{Label: "Technical skills", FormType: model.FormSkillsAssessment, Key: "technical_skills"},
			{Label: "Recent positions", FormType: model.FormWorkHistory, Key: "recent_positions"},
			{Label: "Target role", FormType: model.FormCareerGoals, Key: "target_role"},
			{Label: "Motivation", FormType: model.FormCareerGoals, Key: "motivation"},
		},
		RequiredFields: []string{"transition_paths", "transferable_skills", "risk_assessment", "next_steps"},
		FieldGuide: map[string]string{
			"transition_paths":    "array of up to three transition options, each with a role and rationale",
			"transferable_skills": "array of skills that carry over into the proposed paths",
			"risk_assessment":     "object rating each path low, medium or high risk with reasoning",
			"next_steps":          "array of actions to validate the most promising path",
		},
	},
	model.ReportTypeLearningPath: {
		ReportType: model.ReportTypeLearningPath,
		Title:      "Personalized Learning Path",
		Instruction: "Design a learning path that takes this person from their current skills to their " +
			"stated goal within the timeframe they gave. Prefer fewer, deeper resources over long lists.",
		RequiredForms: []string{model.FormSkillsAssessment, model.FormCareerGoals},
		OptionalForms: []string{model.FormPreferences},
		Fields: []field{
			{Label: "Technical skills", FormType: model.FormSkillsAssessment, Key: "technical_skills"},
			{Label: "Skill confidence", FormType: model.FormSkillsAssessment, Key: "confidence_ratings"},
			{Label: "Target role", FormType: model.FormCareerGoals, Key: "target_role"},
			{Label: "Goal timeframe", FormType: model.FormCareerGoals, Key: "timeframe"},
			{Label: "Weekly learning budget", FormType: model.FormCareerGoals, Key: "weekly_hours"},
		},
		RequiredFields: []string{"learning_objectives", "recommended_resources", "milestones", "timeline"},
		FieldGuide: map[string]string{
			"learning_objectives":   "array of measurable objectives",
			"recommended_resources": "array of objects with resource name, format and objective it serves",
			"milestones":            "array of checkpoints with expected completion markers",
			"timeline":              "object mapping each milestone to a week offset",
		},
	},
	model.ReportTypeStrengthsProfile: {
		ReportType: model.ReportTypeStrengthsProfile,
		Title:      "Professional Strengths Profile",
		Instruction: "Build a strengths profile for this person. Focus on what differentiates them in their " +
			"market rather than generic virtues, and be honest about blind spots.",
		RequiredForms: []string{model.FormCareerProfile, model.FormSkillsAssessment, model.FormWorkHistory},
		OptionalForms: []string{model.FormPreferences},
		Fields: []field{
			{Label: "Current role", FormType: model.FormCareerProfile, Key: "current_role"},
			{Label: "Years of experience", FormType: model.FormCareerProfile, Key: "years_experience"},
			{Label: "Technical skills", FormType: model.FormSkillsAssessment, Key: "technical_skills"},
			{Label: "Soft skills", FormType: model.FormSkillsAssessment, Key: "soft_skills"},
			{Label: "Notable achievements", FormType: model.FormWorkHistory, Key: "achievements"},
			{Label: "Key responsibilities", FormType: model.FormWorkHistory, Key: "key_responsibilities"},
		},
		RequiredFields: []string{"core_strengths", "differentiators", "blind_spots", "leverage_strategies"},
		FieldGuide: map[string]string{
			"core_strengths":      "array of strengths with supporting evidence from their history",
			"differentiators":     "array of traits uncommon in their peer group",
			"blind_spots":         "array of likely weaknesses inferred from the profile",
			"leverage_strategies": "array of ways to apply the strengths toward career growth",
		},
	},
	model.ReportTypeIndustryOutlook: {
		ReportType: model.ReportTypeIndustryOutlook,
		Title:      "Industry Outlook Briefing",
		Instruction: "Produce an outlook for this person's industry with emphasis on how the trends affect " +
			"someone in their position. Distinguish durable shifts from hype.",
		RequiredForms: []string{model.FormCareerProfile, model.FormCareerGoals},
		OptionalForms: []string{model.FormIndustryContext},
		Fields: []field{
			{Label: "Current role", FormType: model.FormCareerProfile, Key: "current_role"},
			{Label: "Industry", FormType: model.FormCareerProfile, Key: "industry"},
			{Label: "Region", FormType: model.FormCareerProfile, Key: "region"},
			{Label: "Target role", FormType: model.FormCareerGoals, Key: "target_role"},
			{Label: "Goal timeframe", FormType: model.FormCareerGoals, Key: "timeframe"},
		},
		RequiredFields: []string{"industry_trends", "emerging_roles", "declining_roles", "strategic_positioning"},
		FieldGuide: map[string]string{
			"industry_trends":       "array of trends with an assessment of durability",
			"emerging_roles":        "array of roles gaining demand in this industry",
			"declining_roles":       "array of roles losing demand",
			"strategic_positioning": "two-paragraph advice on positioning given their goal",
		},
	},
}

// ConfigFor returns the configuration for a report type.
func ConfigFor(reportType string) (TypeConfig, error) {
	cfg, ok := registry[reportType]
	if !ok {
		return TypeConfig{}, ErrUnknownReportType
	}
	return cfg, nil
}

// IsValidReportType reports whether a report type is registered.
func IsValidReportType(reportType string) bool {
	_, ok := registry[reportType]
	return ok
}

// AllReportTypes returns the registered report types in a stable order.
func AllReportTypes() []string {
	return []string{
		model.ReportTypeRoleImpact,
		model.ReportTypeSkillsGap,
		model.ReportTypeCareerTransitions,
		model.ReportTypeLearningPath,
		model.ReportTypeStrengthsProfile,
		model.ReportTypeIndustryOutlook,
	}
}
