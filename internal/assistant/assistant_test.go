package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginCases = `{"test_cases":[
	{"title":"Successful login","steps":["Open /login","Enter valid credentials","Click 'Log in'"],"expected":"Dashboard is shown"},
	{"title":"Wrong password","steps":["Open /login","Enter a wrong password","Click 'Log in'"],"expected":"Error is shown"}
]}`

func TestGenerateTestCases(t *testing.T) {
	fake := llm.NewFakeProvider(loginCases)
	a := New(fake, nil)

	set, err := a.GenerateTestCases(context.Background(), "user login feature", "en", false)
	require.NoError(t, err)

	require.NotEmpty(t, set.TestCases)
	for _, tc := range set.TestCases {
		assert.NotEmpty(t, tc.Steps, tc.Title)
	}
	assert.Empty(t, set.Markdown)

	req := fake.Requests()[0]
	assert.True(t, req.JSON)
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content, "language: en")
	assert.Contains(t, req.Messages[1].Content, "user login feature")
}

func TestGenerateTestCasesMarkdown(t *testing.T) {
	a := New(llm.NewFakeProvider(loginCases), nil)

	set, err := a.GenerateTestCases(context.Background(), "login", "ru", true)
	require.NoError(t, err)
	assert.Equal(t, utils.RenderTestCasesMarkdown(set.TestCases, "ru"), set.Markdown)
	assert.Contains(t, set.Markdown, "### Successful login")
	assert.Contains(t, set.Markdown, "- Шаги:")
}

func TestGenerateTestCasesMalformed(t *testing.T) {
	fake := llm.NewFakeProvider("Sorry, I can only answer in prose.")
	a := New(fake, nil)

	_, err := a.GenerateTestCases(context.Background(), "login", "en", false)
	require.Error(t, err)
	assert.True(t, utils.IsMalformedOutput(err))
	assert.Equal(t, 1, fake.Calls(), "malformed output is not retried")
}

func TestGenerateTestCasesTransportError(t *testing.T) {
	want := &llm.TransportError{Provider: "fake", StatusCode: 503}
	fake := llm.NewFakeProvider()
	fake.Replies = []llm.FakeReply{{Err: want}}

	_, err := New(fake, nil).GenerateTestCases(context.Background(), "login", "en", false)

	var te *llm.TransportError
	require.ErrorAs(t, err, &te)
	assert.Same(t, want, te)
}

func TestGenerateCode(t *testing.T) {
	body := "test('login', async ({ page }) => {\n  await page.goto('/login');\n});"
	tc := types.TestCase{Title: "Login", Steps: []string{"Open /login"}, Expected: "Form visible"}

	tests := []struct {
		name     string
		lang     types.TargetLanguage
		reply    string
		expected string
	}{
		{name: "ts adds header", lang: types.LanguageTypeScript, reply: "\n" + body + "\n", expected: utils.HeaderTypeScript + "\n" + body + "\n"},
		{name: "js adds header", lang: types.LanguageJavaScript, reply: body, expected: utils.HeaderJavaScript + "\n" + body + "\n"},
		{name: "ts keeps own imports", lang: types.LanguageTypeScript, reply: "import { test } from '@playwright/test';\n" + body, expected: "import { test } from '@playwright/test';\n" + body},
		{name: "python untouched", lang: types.LanguagePython, reply: "  def test_login(page):\n    page.goto('/login')\n", expected: "def test_login(page):\n    page.goto('/login')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := llm.NewFakeProvider(tt.reply)
			code, err := New(fake, nil).GenerateCode(context.Background(), tc, tt.lang, "http://localhost:3000")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)

			req := fake.Requests()[0]
			assert.False(t, req.JSON)
			assert.Contains(t, req.Messages[1].Content, `"base_url": "http://localhost:3000"`)
			assert.Contains(t, req.Messages[1].Content, `"title": "Login"`)
		})
	}
}

func TestGenerateDemoApp(t *testing.T) {
	reply := "---index.html---\n<html></html>\n---script.js---\nalert(1);\n---styles.css---\nbody{}\n"
	files, err := New(llm.NewFakeProvider(reply), nil).GenerateDemoApp(context.Background(), "counter app")
	require.NoError(t, err)

	assert.Equal(t, "<html></html>\n", files[types.DemoIndexHTML])
	assert.Equal(t, "alert(1);\n", files[types.DemoScriptJS])
	assert.Equal(t, "body{}\n", files[types.DemoStylesCSS])
}

func TestGenerateDemoAppWithoutMarkers(t *testing.T) {
	files, err := New(llm.NewFakeProvider("Here is an app, enjoy!"), nil).GenerateDemoApp(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, types.NewDemoAppBundle(), files)
}

func TestReviewCode(t *testing.T) {
	fake := llm.NewFakeProvider(`{"summary":"Flaky waits","suggestions":[{"title":"Remove sleep","comment":"Use expect","diff":null}]}`)
	review, err := New(fake, nil).ReviewCode(context.Background(), "await page.waitForTimeout(5000);")
	require.NoError(t, err)

	assert.Equal(t, types.DefaultReviewScore, review.Score)
	assert.Equal(t, "Flaky waits", review.Summary)
	require.Len(t, review.Suggestions, 1)
	assert.Nil(t, review.Suggestions[0].Diff)
	assert.True(t, fake.Requests()[0].JSON)
	assert.Equal(t, "await page.waitForTimeout(5000);", fake.Requests()[0].Messages[1].Content)
}

func TestReviewCodeRejectsOutOfRangeScore(t *testing.T) {
	_, err := New(llm.NewFakeProvider(`{"summary":"s","score":101}`), nil).ReviewCode(context.Background(), "code")
	require.Error(t, err)
	assert.True(t, utils.IsMalformedOutput(err))
}

func TestSuggestedFilename(t *testing.T) {
	tc := types.TestCase{Title: "User Login Works"}

	assert.Equal(t, "test_user_login_works.spec.ts", SuggestedFilename(tc, types.LanguageTypeScript))
	assert.Equal(t, "test_user_login_works.spec.js", SuggestedFilename(tc, types.LanguageJavaScript))
	assert.Equal(t, "test_user_login_works.py", SuggestedFilename(tc, types.LanguagePython))
	assert.Equal(t, "UserLoginWorksTest.java", SuggestedFilename(tc, types.LanguageJava))

	assert.Equal(t, "test_a_b.spec.ts", SuggestedFilename(types.TestCase{Title: "a/b"}, types.LanguageTypeScript))
	assert.Equal(t, "Generated3dViewTest.java", SuggestedFilename(types.TestCase{Title: "3d view"}, types.LanguageJava))
	assert.Equal(t, "GeneratedTest.java", SuggestedFilename(types.TestCase{Title: "!!!"}, types.LanguageJava))
}

func TestContextCancellationStopsGeneration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(llm.NewFakeProvider(loginCases), nil).GenerateTestCases(ctx, "x", "en", false)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFallbackTestCase(t *testing.T) {
	tc := FallbackTestCase()
	assert.NotEmpty(t, tc.Title)
	assert.True(t, strings.HasPrefix(tc.Steps[0], "Open"))
}
