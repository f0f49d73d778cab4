package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/agusespa/testsmith/internal/types"
)

type Prompt struct {
	Name        string
	Description string
	Template    string
}

const (
	TestCasesPrompt      = "test_cases"
	PlaywrightPrompt     = "playwright"
	PlaywrightPyPrompt   = "playwright_python"
	PlaywrightJavaPrompt = "playwright_java"
	DemoAppPrompt        = "demo_app"
	ReviewPrompt         = "review"
)

var Prompts = map[string]Prompt{
	TestCasesPrompt: {
		Name:        TestCasesPrompt,
		Description: "Synthesizes 1-5 test cases as JSON from a feature description",
		Template:    testCasesTemplate,
	},
	PlaywrightPrompt: {
		Name:        PlaywrightPrompt,
		Description: "Playwright test for @playwright/test in TypeScript or JavaScript",
		Template:    playwrightTemplate,
	},
	PlaywrightPyPrompt: {
		Name:        PlaywrightPyPrompt,
		Description: "Playwright test for pytest-playwright",
		Template:    playwrightPythonTemplate,
	},
	PlaywrightJavaPrompt: {
		Name:        PlaywrightJavaPrompt,
		Description: "Playwright test for the Java binding with JUnit 5",
		Template:    playwrightJavaTemplate,
	},
	DemoAppPrompt: {
		Name:        DemoAppPrompt,
		Description: "Minimal three-file web app demonstrating a scenario",
		Template:    demoAppTemplate,
	},
	ReviewPrompt: {
		Name:        ReviewPrompt,
		Description: "Review of Playwright test code with a 0-100 score",
		Template:    reviewTemplate,
	},
}

var templates = mustLoad()

func mustLoad() *template.Template {
	tmpl, err := LoadPromptTemplates()
	if err != nil {
		panic(err)
	}
	return tmpl
}

func LoadPromptTemplates() (*template.Template, error) {
	tmpl := template.New("prompts")

	for name, p := range Prompts {
		if _, err := tmpl.New(name).Parse(p.Template); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}

	return tmpl, nil
}

func GetPrompt(name string) (Prompt, error) {
	p, exists := Prompts[name]
	if !exists {
		return Prompt{}, fmt.Errorf("prompt '%s' not found", name)
	}
	return p, nil
}

func ListPrompts() []string {
	names := make([]string, 0, len(Prompts))
	for name := range Prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Render(name string, data any) (string, error) {
	if _, err := GetPrompt(name); err != nil {
		return "", err
	}

	var result strings.Builder
	if err := templates.ExecuteTemplate(&result, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return strings.TrimSpace(result.String()), nil
}

type testCasesData struct {
	Language string
	Examples Examples
}

// TestCasesSystem builds the synthesis prompt with few-shot examples in the
// requested natural language.
func TestCasesSystem(lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = DefaultLanguage
	}
	return Render(TestCasesPrompt, testCasesData{Language: lang, Examples: ExamplesFor(lang)})
}

func TestCasesUser(description string) string {
	return "Feature description:\n" + description
}

// CodeSystem picks the generation prompt for a target language.
func CodeSystem(lang types.TargetLanguage) (string, error) {
	switch lang {
	case types.LanguagePython:
		return Render(PlaywrightPyPrompt, nil)
	case types.LanguageJava:
		return Render(PlaywrightJavaPrompt, nil)
	default:
		return Render(PlaywrightPrompt, struct{ LanguageName string }{lang.DisplayName()})
	}
}

type codeUserPayload struct {
	TestCase types.TestCase `json:"test_case"`
	Language string         `json:"language"`
	BaseURL  *string        `json:"base_url"`
}

// CodeUser serializes the test case the model should automate. An empty
// baseURL is sent as null.
func CodeUser(tc types.TestCase, lang types.TargetLanguage, baseURL string) (string, error) {
	payload := codeUserPayload{TestCase: tc, Language: string(lang)}
	if tc.Steps == nil {
		payload.TestCase.Steps = []string{}
	}
	if strings.TrimSpace(baseURL) != "" {
		u := strings.TrimSpace(baseURL)
		payload.BaseURL = &u
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("failed to encode test case: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func DemoAppSystem() (string, error) { return Render(DemoAppPrompt, nil) }

func ReviewSystem() (string, error) { return Render(ReviewPrompt, nil) }

const testCasesTemplate = `You are a QA engineer's assistant. From the feature description, write between 1 and 5 test cases.
Cover the main positive path first, then the most likely negative paths.

Respond with a single JSON object and nothing else:
{"test_cases":[{"title":"...","steps":["..."],"expected":"..."}]}

RULES:
- "title" is a short sentence naming the scenario
- "steps" is an ordered list of plain strings, one user action each
- "expected" is the observable result after the last step
- Write every title, step and expected result in this language: {{.Language}}

GOOD EXAMPLE (positive case):
{{.Examples.Positive}}

GOOD EXAMPLE (negative case):
{{.Examples.Negative}}

BAD EXAMPLE (do not do this):
{{.Examples.Bad}}
`

const locatorRules = `LOCATOR RULES:
- Prefer test ids, roles and labels (getByTestId, getByRole, getByLabel) over CSS or XPath
- Never rely on element order, nth-child or generated class names
WAIT RULES:
- Use web-first assertions and auto-waiting locators; never use fixed sleeps
- Wait for navigation or network idle only when the step depends on it
NAVIGATION:
- If base_url is given, navigate with relative paths (page.goto('/login'))
- Assert the expected result from the test case at the end of the test`

const playwrightTemplate = `Write a {{.LanguageName}} browser test with Playwright using @playwright/test.
Import { test, expect }. Output only code, no markdown fences and no explanations.

` + locatorRules + `

EXAMPLE:
import { test, expect } from '@playwright/test';

test('user can log in', async ({ page }) => {
  await page.goto('/login');
  await page.getByLabel('Email').fill('user@example.com');
  await page.getByLabel('Password').fill('Passw0rd!');
  await page.getByRole('button', { name: 'Log in' }).click();
  await expect(page).toHaveURL(/dashboard/);
});
`

const playwrightPythonTemplate = `Write a Python browser test with Playwright (pytest + pytest-playwright).
Import pytest and use the page fixture. Output only complete, self-contained code, no markdown fences and no explanations.

` + locatorRules + `

EXAMPLE:
import re

import pytest
from playwright.sync_api import Page, expect


def test_user_can_log_in(page: Page):
    page.goto("/login")
    page.get_by_label("Email").fill("user@example.com")
    page.get_by_label("Password").fill("Passw0rd!")
    page.get_by_role("button", name="Log in").click()
    expect(page).to_have_url(re.compile("dashboard"))
`

const playwrightJavaTemplate = `Write a Java browser test with the Playwright Java binding and JUnit 5.
Output only code, no markdown fences and no explanations.

` + locatorRules + `

EXAMPLE:
import com.microsoft.playwright.*;
import org.junit.jupiter.api.Test;

import static com.microsoft.playwright.assertions.PlaywrightAssertions.assertThat;

class LoginTest {
    @Test
    void userCanLogIn() {
        try (Playwright playwright = Playwright.create()) {
            Page page = playwright.chromium().launch().newPage();
            page.navigate("http://localhost:3000/login");
            page.getByLabel("Email").fill("user@example.com");
            page.getByLabel("Password").fill("Passw0rd!");
            page.getByRole(AriaRole.BUTTON, new Page.GetByRoleOptions().setName("Log in")).click();
            assertThat(page).hasURL(java.util.regex.Pattern.compile("dashboard"));
        }
    }
}
`

const demoAppTemplate = `Create a minimal web application with exactly three files (index.html, script.js, styles.css) that demonstrates the scenario.
index.html must include script.js and styles.css. Keep the code simple and self-contained.

Put each file after a header line containing only its name, in this order:
---index.html---
---script.js---
---styles.css---
`

const reviewTemplate = `You review Playwright test code. Find stability problems, duplication, brittle locators and missing waits.

Respond with a single JSON object and nothing else:
{"summary":"...","score":0-100,"suggestions":[{"title":"...","comment":"...","diff":"..."}]}

RULES:
- "score" is an integer from 0 to 100
- "diff" is a unified diff against the reviewed code, or null when the suggestion has no code change
`
