package prompts

import (
	"encoding/json"
	"testing"

	"github.com/agusespa/testsmith/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptTemplates(t *testing.T) {
	tmpl, err := LoadPromptTemplates()
	require.NoError(t, err)
	for _, name := range ListPrompts() {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestGetPrompt(t *testing.T) {
	p, err := GetPrompt(ReviewPrompt)
	require.NoError(t, err)
	assert.Equal(t, ReviewPrompt, p.Name)

	_, err = GetPrompt("nonexistent")
	assert.Error(t, err)

	_, err = Render("nonexistent", nil)
	assert.Error(t, err)
}

func TestTestCasesSystem(t *testing.T) {
	tests := []struct {
		lang     string
		contains []string
	}{
		{lang: "en", contains: []string{"language: en", "Successful login", `"test_cases"`, "between 1 and 5"}},
		{lang: "ru", contains: []string{"language: ru", "Успешный вход"}},
		{lang: "", contains: []string{"language: ru"}},
		{lang: "de", contains: []string{"language: de", "Successful login"}},
		{lang: "en-US", contains: []string{"language: en-US", "Successful login"}},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			prompt, err := TestCasesSystem(tt.lang)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, prompt, want)
			}
		})
	}
}

func TestCodeSystem(t *testing.T) {
	ts, err := CodeSystem(types.LanguageTypeScript)
	require.NoError(t, err)
	assert.Contains(t, ts, "TypeScript")
	assert.Contains(t, ts, "getByTestId")
	assert.Contains(t, ts, "relative paths")

	js, err := CodeSystem(types.LanguageJavaScript)
	require.NoError(t, err)
	assert.Contains(t, js, "JavaScript")

	py, err := CodeSystem(types.LanguagePython)
	require.NoError(t, err)
	assert.Contains(t, py, "pytest")
	assert.Contains(t, py, "def test_user_can_log_in")

	java, err := CodeSystem(types.LanguageJava)
	require.NoError(t, err)
	assert.Contains(t, java, "JUnit 5")
}

func TestCodeUser(t *testing.T) {
	tc := types.TestCase{Title: "Login <admin>", Steps: []string{"Open /login"}, Expected: "Dashboard & menu"}

	out, err := CodeUser(tc, types.LanguageTypeScript, " https://app.local ")
	require.NoError(t, err)
	assert.Contains(t, out, "Login <admin>")
	assert.Contains(t, out, "Dashboard & menu")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "ts", decoded["language"])
	assert.Equal(t, "https://app.local", decoded["base_url"])

	out, err = CodeUser(types.TestCase{Title: "t"}, types.LanguagePython, "")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Nil(t, decoded["base_url"])
	assert.Equal(t, []any{}, decoded["test_case"].(map[string]any)["steps"])
}

func TestStaticPrompts(t *testing.T) {
	demo, err := DemoAppSystem()
	require.NoError(t, err)
	for _, f := range types.DemoAppFiles {
		assert.Contains(t, demo, f)
	}

	review, err := ReviewSystem()
	require.NoError(t, err)
	assert.Contains(t, review, `"score"`)
}

func TestHasExamples(t *testing.T) {
	assert.True(t, HasExamples("EN"))
	assert.True(t, HasExamples("ru_RU"))
	assert.False(t, HasExamples("fr"))
}
