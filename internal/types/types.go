package types

import (
	"fmt"
	"strings"
)

// TestCase is a manual test scenario: an ordered list of steps and the
// observable outcome that proves the feature works.
type TestCase struct {
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
	Expected string   `json:"expected"`
}

// TestCaseSet is the result of test-case synthesis. Markdown is only filled
// when the caller asked for it.
type TestCaseSet struct {
	TestCases []TestCase `json:"test_cases"`
	Markdown  string     `json:"markdown,omitempty"`
}

// DemoAppBundle maps the three demo-app file names to their content.
type DemoAppBundle map[string]string

const (
	DemoIndexHTML = "index.html"
	DemoScriptJS  = "script.js"
	DemoStylesCSS = "styles.css"
)

// DemoAppFiles lists the bundle keys in the order they are requested from the model.
var DemoAppFiles = []string{DemoIndexHTML, DemoScriptJS, DemoStylesCSS}

func NewDemoAppBundle() DemoAppBundle {
	return DemoAppBundle{DemoIndexHTML: "", DemoScriptJS: "", DemoStylesCSS: ""}
}

// TargetLanguage is the language generated automation code is written in.
type TargetLanguage string

const (
	LanguageTypeScript TargetLanguage = "ts"
	LanguageJavaScript TargetLanguage = "js"
	LanguagePython     TargetLanguage = "python"
	LanguageJava       TargetLanguage = "java"
)

var SupportedLanguages = []TargetLanguage{LanguageTypeScript, LanguageJavaScript, LanguagePython, LanguageJava}

func ParseTargetLanguage(s string) (TargetLanguage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ts", "typescript":
		return LanguageTypeScript, nil
	case "js", "javascript":
		return LanguageJavaScript, nil
	case "python", "py":
		return LanguagePython, nil
	case "java":
		return LanguageJava, nil
	default:
		names := make([]string, len(SupportedLanguages))
		for i, l := range SupportedLanguages {
			names[i] = string(l)
		}
		return "", fmt.Errorf("unsupported target language %q (supported: %s)", s, strings.Join(names, ", "))
	}
}

// DisplayName is used inside prompts.
func (l TargetLanguage) DisplayName() string {
	switch l {
	case LanguageJavaScript:
		return "JavaScript"
	case LanguagePython:
		return "Python"
	case LanguageJava:
		return "Java"
	default:
		return "TypeScript"
	}
}
