package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/agusespa/testsmith/internal/types"
)

// Saver persists one generated file at a path relative to its root and
// returns where it ended up.
type Saver interface {
	Save(ctx context.Context, relPath, content string) (string, error)
}

type Pusher interface {
	AddCommitPush(ctx context.Context, message, remote, branch string) (string, error)
}

// Formatter rewrites generated code in the language's canonical style and
// returns the input unchanged when it cannot.
type Formatter interface {
	Format(ctx context.Context, code string, lang types.TargetLanguage) string
}

type PipelineOptions struct {
	Requirements string
	OutDir       string
	Lang         string
	Markdown     bool
	Target       types.TargetLanguage
	BaseURL      string
	// Pusher is called after every file is saved when non-nil.
	Pusher    Pusher
	Formatter Formatter
	// Progress receives a short description of each step.
	Progress func(step string)
}

func (o PipelineOptions) progress(step string) {
	if o.Progress != nil {
		o.Progress(step)
	}
}

type PipelineResult struct {
	TestCases []types.TestCase
	Files     []string
	Commit    string
}

const pipelineCommitMessage = "feat: generated tests and demo"

// RunPipeline generates test cases, automation code for the first case and a
// demo app from one requirements text, saving everything under OutDir.
func (a *Assistant) RunPipeline(ctx context.Context, opts PipelineOptions, saver Saver) (PipelineResult, error) {
	if opts.OutDir == "" {
		opts.OutDir = "generated"
	}
	if opts.Lang == "" {
		opts.Lang = "ru"
	}
	if opts.Target == "" {
		opts.Target = types.LanguagePython
	}

	var result PipelineResult
	save := func(rel, content string) error {
		saved, err := saver.Save(ctx, path.Join(opts.OutDir, rel), content)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", rel, err)
		}
		result.Files = append(result.Files, saved)
		return nil
	}

	opts.progress("Generating test cases...")
	set, err := a.GenerateTestCases(ctx, opts.Requirements, opts.Lang, opts.Markdown)
	if err != nil {
		return result, err
	}
	result.TestCases = set.TestCases

	if opts.Markdown && set.Markdown != "" {
		err = save("test_cases.md", set.Markdown)
	} else {
		var data string
		data, err = testCasesJSON(set.TestCases)
		if err == nil {
			err = save("test_cases.json", data)
		}
	}
	if err != nil {
		return result, err
	}

	tc := FallbackTestCase()
	if len(set.TestCases) > 0 {
		tc = set.TestCases[0]
	} else {
		a.logger.Warn("no test cases generated, using fallback case")
	}

	opts.progress(fmt.Sprintf("Generating %s test code...", opts.Target.DisplayName()))
	code, err := a.GenerateCode(ctx, tc, opts.Target, opts.BaseURL)
	if err != nil {
		return result, err
	}
	if opts.Formatter != nil {
		code = opts.Formatter.Format(ctx, code, opts.Target)
	}
	if err := save(path.Join(codeDir(opts.Target), SuggestedFilename(tc, opts.Target)), code); err != nil {
		return result, err
	}

	opts.progress("Generating demo app...")
	files, err := a.GenerateDemoApp(ctx, opts.Requirements)
	if err != nil {
		return result, err
	}
	for _, name := range types.DemoAppFiles {
		if err := save(path.Join("demo_app", name), files[name]); err != nil {
			return result, err
		}
	}

	if opts.Pusher != nil {
		opts.progress("Committing and pushing...")
		sha, err := opts.Pusher.AddCommitPush(ctx, pipelineCommitMessage, "origin", "main")
		if err != nil {
			return result, fmt.Errorf("failed to commit generated files: %w", err)
		}
		result.Commit = sha
	}

	return result, nil
}

func codeDir(lang types.TargetLanguage) string {
	switch lang {
	case types.LanguagePython:
		return "python_tests"
	case types.LanguageJava:
		return "tests/java"
	default:
		return "tests/e2e"
	}
}

func testCasesJSON(cases []types.TestCase) (string, error) {
	if cases == nil {
		cases = []types.TestCase{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.TestCaseSet{TestCases: cases}); err != nil {
		return "", fmt.Errorf("failed to encode test cases: %w", err)
	}
	return buf.String(), nil
}
