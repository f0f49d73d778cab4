package utils

import (
	"strings"
	"testing"

	"github.com/agusespa/testsmith/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		expected    string
		expectError bool
	}{
		{name: "bare object", response: ` {"a":1} `, expected: `{"a":1}`},
		{name: "fenced object", response: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "object in prose", response: "Here you go: {\"a\":{\"b\":\"}\"}} hope it helps", expected: `{"a":{"b":"}"}}`},
		{name: "empty", response: "   ", expectError: true},
		{name: "no json", response: "I cannot help with that", expectError: true},
		{name: "unterminated", response: `{"a":`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTestCases(t *testing.T) {
	raw := `{"test_cases":[
		{"title":"Login works","steps":["Open /login","Submit"],"expected":"Dashboard"},
		{"steps":["a", 1, null, "b", {"x":1}]},
		{"title":"","expected":null},
		"not an object",
		42
	]}`

	cases, err := ParseTestCases(raw)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, types.TestCase{Title: "Login works", Steps: []string{"Open /login", "Submit"}, Expected: "Dashboard"}, cases[0])
	assert.Equal(t, types.TestCase{Title: PlaceholderTitle, Steps: []string{"a", "b"}, Expected: ""}, cases[1])
	assert.Equal(t, PlaceholderTitle, cases[2].Title)
	assert.NotNil(t, cases[2].Steps)
	assert.Empty(t, cases[2].Steps)
}

func TestParseTestCasesEmptyIsNotAnError(t *testing.T) {
	for _, raw := range []string{`{"test_cases":[]}`, `{}`, `{"test_cases":null}`} {
		cases, err := ParseTestCases(raw)
		require.NoError(t, err, raw)
		assert.Empty(t, cases, raw)
	}
}

func TestParseTestCasesMalformed(t *testing.T) {
	tests := []string{
		"Sure! Here are some test cases.",
		`[{"title":"x"}]`,
		`{"test_cases":"none"}`,
	}

	for _, raw := range tests {
		_, err := ParseTestCases(raw)
		require.Error(t, err, raw)
		assert.True(t, IsMalformedOutput(err), raw)

		var m *MalformedOutputError
		require.ErrorAs(t, err, &m)
		assert.Equal(t, raw, m.Raw)
	}
}

func TestMalformedOutputErrorTruncatesOnlyMessage(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	_, err := ParseTestCases(raw)

	var m *MalformedOutputError
	require.ErrorAs(t, err, &m)
	assert.Len(t, m.Raw, 2000)
	assert.Less(t, len(err.Error()), 700)
}

func TestParseReview(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "Mostly stable",
		"score": 85,
		"suggestions": [
			{"title": "Use roles", "comment": "Prefer getByRole", "diff": "@@ -1,1 +1,1 @@\n-a\n+b\n"},
			{"comment": "Avoid sleeps", "diff": null},
			"junk"
		]
	}` + "\n```"

	review, err := ParseReview(raw)
	require.NoError(t, err)
	assert.Equal(t, "Mostly stable", review.Summary)
	assert.Equal(t, 85, review.Score)
	require.Len(t, review.Suggestions, 2)

	assert.Equal(t, "Use roles", review.Suggestions[0].Title)
	require.NotNil(t, review.Suggestions[0].Diff)
	assert.Equal(t, "@@ -1,1 +1,1 @@\n-a\n+b\n", *review.Suggestions[0].Diff)

	assert.Equal(t, PlaceholderSuggestionTitle, review.Suggestions[1].Title)
	assert.Nil(t, review.Suggestions[1].Diff)
}

func TestParseReviewScore(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    int
		expectError bool
	}{
		{name: "missing defaults", raw: `{"summary":"s"}`, expected: types.DefaultReviewScore},
		{name: "null defaults", raw: `{"score":null}`, expected: types.DefaultReviewScore},
		{name: "zero", raw: `{"score":0}`, expected: 0},
		{name: "hundred", raw: `{"score":100}`, expected: 100},
		{name: "integral float", raw: `{"score":90.0}`, expected: 90},
		{name: "fraction", raw: `{"score":72.5}`, expectError: true},
		{name: "numeric string", raw: `{"score":"85"}`, expected: 85},
		{name: "padded numeric string", raw: `{"score":" 70 "}`, expected: 70},
		{name: "fractional string", raw: `{"score":"85.5"}`, expectError: true},
		{name: "empty string", raw: `{"score":""}`, expectError: true},
		{name: "string", raw: `{"score":"high"}`, expectError: true},
		{name: "string above range", raw: `{"score":"150"}`, expectError: true},
		{name: "above range", raw: `{"score":150}`, expectError: true},
		{name: "below range", raw: `{"score":-5}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := ParseReview(tt.raw)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, IsMalformedOutput(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, review.Score)
			assert.NotNil(t, review.Suggestions)
		})
	}
}
