package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/prompts"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/internal/utils"
)

// Assistant turns feature descriptions into test artifacts through a single
// model provider. It holds no per-call state and is safe for concurrent use.
type Assistant struct {
	provider llm.Provider
	logger   *slog.Logger
}

func New(provider llm.Provider, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{provider: provider, logger: logger}
}

func (a *Assistant) Provider() llm.Provider {
	return a.provider
}

func (a *Assistant) GenerateTestCases(ctx context.Context, description, lang string, wantMarkdown bool) (types.TestCaseSet, error) {
	system, err := prompts.TestCasesSystem(lang)
	if err != nil {
		return types.TestCaseSet{}, err
	}

	reply, err := a.provider.Chat(ctx, llm.NewChatRequest(system, prompts.TestCasesUser(description), true))
	if err != nil {
		return types.TestCaseSet{}, fmt.Errorf("failed to generate test cases: %w", err)
	}

	cases, err := utils.ParseTestCases(reply)
	if err != nil {
		return types.TestCaseSet{}, err
	}
	a.logger.Debug("test cases parsed", "count", len(cases), "lang", lang)

	set := types.TestCaseSet{TestCases: cases}
	if wantMarkdown {
		set.Markdown = utils.RenderTestCasesMarkdown(cases, lang)
	}
	return set, nil
}

// GenerateCode writes automation code for one test case. TypeScript,
// JavaScript and Java replies get their import header when missing; Python
// replies are returned trimmed.
func (a *Assistant) GenerateCode(ctx context.Context, tc types.TestCase, lang types.TargetLanguage, baseURL string) (string, error) {
	system, err := prompts.CodeSystem(lang)
	if err != nil {
		return "", err
	}
	user, err := prompts.CodeUser(tc, lang, baseURL)
	if err != nil {
		return "", err
	}

	reply, err := a.provider.Chat(ctx, llm.NewChatRequest(system, user, false))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s code: %w", lang.DisplayName(), err)
	}

	if lang == types.LanguagePython {
		return strings.TrimSpace(reply), nil
	}
	return utils.EnsureImportHeader(reply, lang), nil
}

func (a *Assistant) GenerateDemoApp(ctx context.Context, description string) (types.DemoAppBundle, error) {
	system, err := prompts.DemoAppSystem()
	if err != nil {
		return nil, err
	}

	reply, err := a.provider.Chat(ctx, llm.NewChatRequest(system, description, false))
	if err != nil {
		return nil, fmt.Errorf("failed to generate demo app: %w", err)
	}

	files := utils.SplitDemoApp(reply)
	for _, name := range types.DemoAppFiles {
		if files[name] == "" {
			a.logger.Warn("demo app reply has no content for file", "file", name)
		}
	}
	return files, nil
}

func (a *Assistant) ReviewCode(ctx context.Context, code string) (types.ReviewResult, error) {
	system, err := prompts.ReviewSystem()
	if err != nil {
		return types.ReviewResult{}, err
	}

	reply, err := a.provider.Chat(ctx, llm.NewChatRequest(system, code, true))
	if err != nil {
		return types.ReviewResult{}, fmt.Errorf("failed to review code: %w", err)
	}

	return utils.ParseReview(reply)
}

// FallbackTestCase is used by the pipeline when synthesis yields nothing.
func FallbackTestCase() types.TestCase {
	return types.TestCase{
		Title:    "Smoke test",
		Steps:    []string{"Open /"},
		Expected: "The page loads",
	}
}

// SuggestedFilename derives a file name for generated code from the test
// case title.
func SuggestedFilename(tc types.TestCase, lang types.TargetLanguage) string {
	if lang == types.LanguageJava {
		return javaClassName(tc.Title) + ".java"
	}

	base := "test_" + strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(strings.ToLower(tc.Title))
	switch lang {
	case types.LanguagePython:
		return base + ".py"
	case types.LanguageJavaScript:
		return base + ".spec.js"
	default:
		return base + ".spec.ts"
	}
}

func javaClassName(title string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(title, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}

	name := b.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "Generated" + name
	}
	return name + "Test"
}
