package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetLanguage(t *testing.T) {
	tests := []struct {
		in          string
		expected    TargetLanguage
		expectError bool
	}{
		{in: "", expected: LanguageTypeScript},
		{in: "TS", expected: LanguageTypeScript},
		{in: "typescript", expected: LanguageTypeScript},
		{in: "javascript", expected: LanguageJavaScript},
		{in: "py", expected: LanguagePython},
		{in: "Java", expected: LanguageJava},
		{in: "ruby", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTargetLanguage(tt.in)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "supported: ts, js, python, java")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewDemoAppBundleHasFixedKeys(t *testing.T) {
	b := NewDemoAppBundle()
	assert.Len(t, b, 3)
	for _, name := range DemoAppFiles {
		v, ok := b[name]
		assert.True(t, ok, name)
		assert.Empty(t, v)
	}
}

func TestReviewResultValidate(t *testing.T) {
	tests := []struct {
		score int
		valid bool
	}{
		{score: 0, valid: true},
		{score: 70, valid: true},
		{score: 100, valid: true},
		{score: -1, valid: false},
		{score: 101, valid: false},
		{score: 250, valid: false},
	}

	for _, tt := range tests {
		err := ReviewResult{Summary: "s", Score: tt.score}.Validate()
		if tt.valid {
			assert.NoError(t, err, "score %d", tt.score)
		} else {
			assert.Error(t, err, "score %d", tt.score)
		}
	}
}

func strPtr(s string) *string { return &s }

func TestReviewSuggestionDiffStats(t *testing.T) {
	tests := []struct {
		name     string
		diff     *string
		expected DiffStat
		ok       bool
	}{
		{name: "no diff", diff: nil, ok: false},
		{name: "blank diff", diff: strPtr("  \n"), ok: false},
		{name: "not a diff", diff: strPtr("use getByRole instead"), ok: false},
		{
			name:     "file diff",
			diff:     strPtr("--- a/login.spec.ts\n+++ b/login.spec.ts\n@@ -1,3 +1,3 @@\n import { test } from '@playwright/test';\n-await page.click('#submit');\n+await page.getByRole('button', { name: 'Login' }).click();\n await expect(page).toHaveURL('/dashboard');\n"),
			expected: DiffStat{Files: 1, Hunks: 1, Added: 1, Removed: 1},
			ok:       true,
		},
		{
			name:     "bare hunk",
			diff:     strPtr("@@ -1,2 +1,3 @@\n test('login', async ({ page }) => {\n+  await page.waitForLoadState();\n   await page.goto('/login');\n"),
			expected: DiffStat{Files: 1, Hunks: 1, Added: 1, Removed: 0},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReviewSuggestion{Title: "t", Diff: tt.diff}
			stat, ok := s.DiffStats()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, stat)
			}
		})
	}
}

func TestDiffStatsLeavesDiffUntouched(t *testing.T) {
	raw := "@@ -1,1 +1,1 @@\n-a\n+b\n"
	s := ReviewSuggestion{Diff: strPtr(raw)}
	_, _ = s.DiffStats()
	assert.Equal(t, raw, *s.Diff)
}
