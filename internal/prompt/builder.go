package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"careersight-srv/internal/model"
)

// Build renders the prompt for a report type from the assembled answer sets
// and returns it together with the required top-level response fields.
// It is pure: absent answers become the placeholder, optional forms that are
// missing simply omit their block, and it never performs I/O.
func Build(reportType string, ctx Context) (string, []string, error) {
	cfg, err := ConfigFor(reportType)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "You are preparing a %s for the candidate below.\n\n", cfg.Title)

	b.WriteString("== Candidate profile ==\n")
	for _, f := range cfg.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, fieldValue(ctx, f.FormType, f.Key))
	}

	for _, formType := range cfg.OptionalForms {
		as, ok := ctx[formType]
		if !ok {
			continue
		}
		writeOptionalBlock(&b, formType, as)
	}

	b.WriteString("\n")
	b.WriteString(cfg.Instruction)
	b.WriteString("\n\n")

	b.WriteString("Respond with a single JSON object containing exactly these keys:\n")
	for _, key := range cfg.RequiredFields {
		fmt.Fprintf(&b, "- %q: %s\n", key, cfg.FieldGuide[key])
	}
	b.WriteString("Return only the JSON object, with no surrounding text.\n")

	required := make([]string, len(cfg.RequiredFields))
	copy(required, cfg.RequiredFields)

	return b.String(), required, nil
}

// writeOptionalBlock appends every answer of an optional form, sorted by key
// so the output stays deterministic.
func writeOptionalBlock(b *strings.Builder, formType string, as model.AnswerSet) {
	switch formType {
	case model.FormPreferences:
		b.WriteString("\n== Stated preferences ==\n")
	case model.FormIndustryContext:
		b.WriteString("\n== Industry context ==\n")
	default:
		fmt.Fprintf(b, "\n== %s ==\n", formType)
	}

	keys := make([]string, 0, len(as.Answers))
	for k := range as.Answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s: %s\n", k, flatten(as.Answers[k]))
	}
}

func fieldValue(ctx Context, formType, key string) string {
	as, ok := ctx[formType]
	if !ok {
		return Placeholder
	}
	v, ok := as.Answers[key]
	if !ok || v == nil {
		return Placeholder
	}
	s := flatten(v)
	if s == "" {
		return Placeholder
	}
	return s
}

// flatten turns an answer value into a plain string. Lists are joined with
// ", " so structured values never reach the prompt verbatim.
func flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+flatten(t[k]))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
