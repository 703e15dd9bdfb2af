package prompt

import (
	"strings"
	"testing"

	"careersight-srv/internal/model"
)

func answerSet(formType string, answers map[string]any) model.AnswerSet {
	return model.AnswerSet{
		FormType:     formType,
		OwnerID:      "user-1",
		SubmissionID: "sub-" + formType,
		Answers:      answers,
	}
}

func TestBuild(t *testing.T) {
	t.Run("unknown report type", func(t *testing.T) {
		_, _, err := Build("WEATHER_FORECAST", Context{})
		if err != ErrUnknownReportType {
			t.Fatalf("expected ErrUnknownReportType, got %v", err)
		}
	})

	t.Run("interpolates answers and returns required fields", func(t *testing.T) {
		ctx := Context{
			model.FormCareerProfile: answerSet(model.FormCareerProfile, map[string]any{
				"current_role":     "Data Analyst",
				"industry":         "Finance",
				"years_experience": float64(6),
			}),
			model.FormSkillsAssessment: answerSet(model.FormSkillsAssessment, map[string]any{
				"technical_skills": []any{"SQL", "Python"},
			}),
			model.FormWorkHistory: answerSet(model.FormWorkHistory, map[string]any{
				"recent_positions": "Analyst at AcmeBank",
			}),
		}

		text, required, err := Build(model.ReportTypeRoleImpact, ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "Current role: Data Analyst") {
			t.Errorf("prompt missing current role, got:\n%s", text)
		}
		if !strings.Contains(text, "Technical skills: SQL, Python") {
			t.Errorf("list answer not flattened, got:\n%s", text)
		}
		if !strings.Contains(text, "Years of experience: 6") {
			t.Errorf("numeric answer not rendered, got:\n%s", text)
		}
		if len(required) != 4 || required[0] != "impact_summary" {
			t.Errorf("unexpected required fields: %v", required)
		}
	})

	t.Run("absent answers use placeholder", func(t *testing.T) {
		ctx := Context{
			model.FormCareerProfile: answerSet(model.FormCareerProfile, map[string]any{
				"current_role": "Nurse",
			}),
		}

		text, _, err := Build(model.ReportTypeRoleImpact, ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "Education: "+Placeholder) {
			t.Errorf("missing answer should use placeholder, got:\n%s", text)
		}
		if !strings.Contains(text, "Technical skills: "+Placeholder) {
			t.Errorf("missing form should use placeholder, got:\n%s", text)
		}
	})

	t.Run("optional block only when form present", func(t *testing.T) {
		base := Context{
			model.FormCareerProfile: answerSet(model.FormCareerProfile, map[string]any{"current_role": "PM"}),
		}

		without, _, err := Build(model.ReportTypeRoleImpact, base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(without, "Stated preferences") {
			t.Errorf("preferences block rendered without the form")
		}

		base[model.FormPreferences] = answerSet(model.FormPreferences, map[string]any{
			"tone":         "direct",
			"detail_level": "high",
		})
		with, _, err := Build(model.ReportTypeRoleImpact, base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(with, "== Stated preferences ==") {
			t.Errorf("preferences block missing, got:\n%s", with)
		}
		if !strings.Contains(with, "tone: direct") {
			t.Errorf("preference answers missing, got:\n%s", with)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		ctx := Context{
			model.FormCareerProfile: answerSet(model.FormCareerProfile, map[string]any{
				"current_role": "Teacher", "industry": "Education",
			}),
			model.FormPreferences: answerSet(model.FormPreferences, map[string]any{
				"b": "2", "a": "1", "c": "3",
			}),
		}

		first, _, err := Build(model.ReportTypeRoleImpact, ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 10; i++ {
			again, _, err := Build(model.ReportTypeRoleImpact, ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if again != first {
				t.Fatalf("prompt output not deterministic")
			}
		}
	})

	t.Run("json shape instruction lists every required key", func(t *testing.T) {
		for _, reportType := range AllReportTypes() {
			text, required, err := Build(reportType, Context{})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", reportType, err)
			}
			for _, key := range required {
				if !strings.Contains(text, `"`+key+`"`) {
					t.Errorf("%s: instruction missing key %q", reportType, key)
				}
			}
		}
	})
}

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "  hello ", "hello"},
		{"bool", true, "true"},
		{"float", float64(3.5), "3.5"},
		{"whole float", float64(10), "10"},
		{"string slice", []string{"a", "b"}, "a, b"},
		{"any slice", []any{"x", float64(2)}, "x, 2"},
		{"nested map", map[string]any{"b": "2", "a": []any{"1"}}, "a: 1; b: 2"},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := flatten(tc.in); got != tc.want {
				t.Errorf("flatten(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
