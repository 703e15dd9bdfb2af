package prompt

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrMalformed indicates the response did not decode to a JSON object.
var ErrMalformed = errors.New("prompt: response is not a JSON object")

// MissingFieldsError lists every required top-level key absent from the
// decoded response.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "prompt: response missing required fields: " + strings.Join(e.Fields, ", ")
}

var (
	fencedJSONRe = regexp.MustCompile("(?is)```json\\s*(.*?)```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// ParseResponse extracts the JSON object from a model response and checks
// that every required top-level key is present. Extraction is lenient since
// models sometimes wrap the object in prose: a ```json fenced block wins,
// then any fenced block, then the whole text.
func ParseResponse(raw string, requiredFields []string) (map[string]any, error) {
	candidate := extractCandidate(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil || obj == nil {
		return nil, ErrMalformed
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return obj, nil
}

func extractCandidate(raw string) string {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fencedAnyRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}
