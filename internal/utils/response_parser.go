package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

const (
	PlaceholderTitle           = "Test case"
	PlaceholderSuggestionTitle = "Suggestion"
)

// MalformedOutputError means the model answered but the reply does not fit
// the expected structure. Raw keeps the full reply for diagnostics.
type MalformedOutputError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	msg := "malformed model output: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s. Response: %s", msg, truncateString(strings.TrimSpace(e.Raw), 500))
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func IsMalformedOutput(err error) bool {
	var m *MalformedOutputError
	return errors.As(err, &m)
}

// ExtractJSON returns the JSON object held in response. It accepts a bare
// object, one wrapped in a markdown code fence, or one embedded in prose.
func ExtractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return "", errors.New("empty response")
	}

	if json.Valid([]byte(response)) {
		return response, nil
	}

	if strings.Contains(response, "```") {
		if extracted := extractFromCodeBlock(response); extracted != "" && json.Valid([]byte(extracted)) {
			return extracted, nil
		}
	}

	if extracted := extractObject(response); extracted != "" && json.Valid([]byte(extracted)) {
		return extracted, nil
	}

	return "", errors.New("no JSON object found")
}

// decodeObject extracts and decodes a top-level JSON object, keeping numbers
// as json.Number so integers can be told apart from fractions.
func decodeObject(raw string) (map[string]any, error) {
	content, err := ExtractJSON(raw)
	if err != nil {
		return nil, &MalformedOutputError{Reason: "reply is not valid JSON", Raw: raw, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &MalformedOutputError{Reason: "reply is not valid JSON", Raw: raw, Err: err}
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedOutputError{Reason: "reply is not a JSON object", Raw: raw}
	}
	return obj, nil
}

// ParseTestCases reads {"test_cases":[...]} leniently: a missing title gets a
// placeholder, non-string steps are dropped and a missing expected result is
// left empty. Items that are not objects are skipped.
func ParseTestCases(raw string) ([]types.TestCase, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	items, err := optionalArray(obj, "test_cases")
	if err != nil {
		return nil, &MalformedOutputError{Reason: err.Error(), Raw: raw}
	}

	cases := make([]types.TestCase, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		tc := types.TestCase{
			Title:    stringOr(m["title"], PlaceholderTitle),
			Steps:    []string{},
			Expected: stringOr(m["expected"], ""),
		}
		if steps, ok := m["steps"].([]any); ok {
			for _, s := range steps {
				if str, ok := s.(string); ok {
					tc.Steps = append(tc.Steps, str)
				}
			}
		}
		cases = append(cases, tc)
	}

	return cases, nil
}

// ParseReview reads {"summary","score","suggestions"}. A missing score
// defaults to types.DefaultReviewScore; a fractional or out-of-range score is
// rejected, never clamped.
func ParseReview(raw string) (types.ReviewResult, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return types.ReviewResult{}, err
	}

	result := types.ReviewResult{
		Summary:     stringOr(obj["summary"], ""),
		Score:       types.DefaultReviewScore,
		Suggestions: []types.ReviewSuggestion{},
	}

	if v, present := obj["score"]; present && v != nil {
		score, err := integer(v)
		if err != nil {
			return types.ReviewResult{}, &MalformedOutputError{Reason: "invalid score", Raw: raw, Err: err}
		}
		result.Score = score
	}

	items, err := optionalArray(obj, "suggestions")
	if err != nil {
		return types.ReviewResult{}, &MalformedOutputError{Reason: err.Error(), Raw: raw}
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := types.ReviewSuggestion{
			Title:   stringOr(m["title"], PlaceholderSuggestionTitle),
			Comment: stringOr(m["comment"], ""),
		}
		if d, ok := m["diff"].(string); ok {
			s.Diff = &d
		}
		result.Suggestions = append(result.Suggestions, s)
	}

	if err := result.Validate(); err != nil {
		return types.ReviewResult{}, &MalformedOutputError{Reason: "review failed validation", Raw: raw, Err: err}
	}

	return result, nil
}

func optionalArray(obj map[string]any, key string) ([]any, error) {
	v, present := obj[key]
	if !present || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not an array", key)
	}
	return arr, nil
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// integer accepts a JSON number or a numeric string such as "85".
func integer(v any) (int, error) {
	var n json.Number
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("score must be a number, got %T", v)
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("score %q is not a number", n.String())
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("score %s is not an integer", n.String())
	}
	return int(f), nil
}

func extractObject(response string) string {
	startIdx := strings.Index(response, "{")
	if startIdx == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := startIdx; i < len(response); i++ {
		char := response[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return response[startIdx : i+1]
				}
			}
		}
	}

	return ""
}

func extractFromCodeBlock(response string) string {
	lines := strings.Split(response, "\n")
	inCodeBlock := false
	var jsonLines []string

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCodeBlock {
				break
			}
			inCodeBlock = true
			continue
		}
		if inCodeBlock {
			jsonLines = append(jsonLines, line)
		}
	}

	return strings.TrimSpace(strings.Join(jsonLines, "\n"))
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
