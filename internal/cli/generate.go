package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agusespa/testsmith/internal/assistant"
	"github.com/agusespa/testsmith/internal/templates"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/internal/utils"
	"github.com/spf13/cobra"
)

func NewRunCmd() *cobra.Command {
	var (
		requirements string
		file         string
		out          string
		lang         string
		format       string
		target       string
		baseURL      string
		store        string
		push         bool
		formatCode   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate test cases, test code and a demo app from requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			text, err := readText(requirements, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if format != "json" && format != "markdown" {
				return fmt.Errorf("unsupported format %q (supported: json, markdown)", format)
			}
			targetLang, err := types.ParseTargetLanguage(target)
			if err != nil {
				return err
			}

			a, err := app.assistant()
			if err != nil {
				return err
			}

			opts := assistant.PipelineOptions{
				Requirements: text,
				OutDir:       ".",
				Lang:         lang,
				Markdown:     format == "markdown",
				Target:       targetLang,
				BaseURL:      baseURL,
			}
			if formatCode {
				opts.Formatter = tools.NewCodeFormatter(app.Exec, app.Logger)
			}

			var saver assistant.Saver
			switch store {
			case "local":
				local, err := tools.NewLocalStorage(out)
				if err != nil {
					return err
				}
				saver = local
				if push {
					opts.Pusher = tools.NewLocalGit(local.Root(), app.Exec, app.Logger)
				}
			case "s3":
				if push {
					return fmt.Errorf("--push requires --store local")
				}
				objects, err := tools.NewObjectStore(app.Settings.ObjectStore, out)
				if err != nil {
					return err
				}
				saver = objects
			default:
				return fmt.Errorf("unsupported store %q (supported: local, s3)", store)
			}

			stop := func() {}
			opts.Progress = func(step string) {
				stop()
				stop = app.spin(cmd, step)
			}

			res, err := a.RunPipeline(cmd.Context(), opts, saver)
			stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range res.Files {
				fmt.Fprintf(w, "Saved %s\n", f)
			}
			if res.Commit != "" {
				fmt.Fprintf(w, "Pushed commit: %s\n", res.Commit)
			}
			fmt.Fprintf(w, "Done. Files saved under: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&requirements, "requirements", "", "Requirements text")
	cmd.Flags().StringVar(&file, "file", "", "Read requirements from a file (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "generated", "Output directory, or key prefix with --store s3")
	cmd.Flags().StringVar(&lang, "lang", "ru", "Test case language (ru, en)")
	cmd.Flags().StringVar(&format, "format", "json", "Test case file format (json, markdown)")
	cmd.Flags().StringVar(&target, "target", "python", "Automation language (python, ts, js, java)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the application under test")
	cmd.Flags().StringVar(&store, "store", "local", "Where to save files (local, s3)")
	cmd.Flags().BoolVar(&push, "push", false, "Commit and push the output directory")
	cmd.Flags().BoolVar(&formatCode, "format-code", false, "Run the language formatter over generated code")
	return cmd
}

func NewCasesCmd() *cobra.Command {
	var (
		requirements string
		file         string
		lang         string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Generate test cases from a feature description",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			text, err := readText(requirements, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			a, err := app.assistant()
			if err != nil {
				return err
			}

			stop := app.spin(cmd, "Generating test cases...")
			set, err := a.GenerateTestCases(cmd.Context(), text, lang, format == "markdown")
			stop()
			if err != nil {
				return err
			}

			if format == "markdown" {
				fmt.Fprintln(cmd.OutOrStdout(), set.Markdown)
				return nil
			}
			return writeJSON(cmd, set)
		},
	}

	cmd.Flags().StringVar(&requirements, "requirements", "", "Feature description")
	cmd.Flags().StringVar(&file, "file", "", "Read the description from a file (- for stdin)")
	cmd.Flags().StringVar(&lang, "lang", "ru", "Test case language (ru, en)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, markdown)")
	return cmd
}

func NewCodeCmd() *cobra.Command {
	var (
		language   string
		title      string
		steps      []string
		expected   string
		caseFile   string
		template   string
		params     map[string]string
		baseURL    string
		out        string
		formatCode bool
		check      bool
	)

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate Playwright test code for one test case",
		Long: "Generate Playwright test code for one test case. The case comes from --case-file,\n" +
			"from a template (--template with --param), or from --title/--step/--expected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			lang, err := types.ParseTargetLanguage(language)
			if err != nil {
				return err
			}

			tc, err := resolveTestCase(caseFile, template, params, title, steps, expected)
			if err != nil {
				return err
			}

			a, err := app.assistant()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stop := app.spin(cmd, fmt.Sprintf("Generating %s test code...", lang.DisplayName()))
			code, err := a.GenerateCode(ctx, tc, lang, baseURL)
			stop()
			if err != nil {
				return err
			}
			if formatCode {
				code = tools.NewCodeFormatter(app.Exec, app.Logger).Format(ctx, code, lang)
			}

			if check {
				if err := reportSyntax(cmd, code, lang); err != nil {
					app.Logger.Warn("syntax check unavailable", "error", err)
				}
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			}
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				out = filepath.Join(out, assistant.SuggestedFilename(tc, lang))
			}
			storage, err := tools.NewLocalStorage(filepath.Dir(out))
			if err != nil {
				return err
			}
			saved, err := storage.Save(ctx, filepath.Base(out), code)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "lang", "ts", "Automation language (ts, js, python, java)")
	cmd.Flags().StringVar(&title, "title", "", "Test case title")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Test case step (repeatable)")
	cmd.Flags().StringVar(&expected, "expected", "", "Expected result")
	cmd.Flags().StringVar(&caseFile, "case-file", "", "JSON file holding one test case")
	cmd.Flags().StringVar(&template, "template", "", "Build the test case from a template")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Template parameter key=value (repeatable)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the application under test")
	cmd.Flags().StringVar(&out, "out", "", "Write the code to this file or directory instead of stdout")
	cmd.Flags().BoolVar(&formatCode, "format-code", false, "Run the language formatter over the code")
	cmd.Flags().BoolVar(&check, "check", false, "Report syntax errors and detected tests on stderr")
	return cmd
}

func resolveTestCase(caseFile, template string, params map[string]string, title string, steps []string, expected string) (types.TestCase, error) {
	switch {
	case caseFile != "":
		data, err := os.ReadFile(caseFile)
		if err != nil {
			return types.TestCase{}, fmt.Errorf("failed to read test case: %w", err)
		}
		if strings.EqualFold(filepath.Ext(caseFile), ".md") {
			cases := utils.ParseTestCasesMarkdown(string(data))
			if len(cases) == 0 {
				return types.TestCase{}, fmt.Errorf("no test case found in %s", caseFile)
			}
			return cases[0], nil
		}
		var tc types.TestCase
		if err := json.Unmarshal(data, &tc); err != nil {
			return types.TestCase{}, fmt.Errorf("failed to parse test case: %w", err)
		}
		return tc, nil
	case template != "":
		p := templates.Params{}
		for k, v := range params {
			p[k] = v
		}
		return templates.Render(template, p)
	case strings.TrimSpace(title) != "":
		if steps == nil {
			steps = []string{}
		}
		return types.TestCase{Title: title, Steps: steps, Expected: expected}, nil
	}
	return types.TestCase{}, fmt.Errorf("a test case is required: use --case-file, --template or --title")
}

func reportSyntax(cmd *cobra.Command, code string, lang types.TargetLanguage) error {
	checker, err := tools.NewSyntaxChecker()
	if err != nil {
		return err
	}
	defer checker.Close()

	report, err := checker.Check(code, lang)
	if err != nil {
		return err
	}

	printSyntaxReport(cmd.ErrOrStderr(), "", report)
	return nil
}

func printSyntaxReport(w io.Writer, name string, report tools.SyntaxReport) {
	if name != "" {
		name += ": "
	}
	if report.Valid {
		fmt.Fprintf(w, "%sSyntax OK (%s), tests: %s\n", name, report.Language, strings.Join(report.Tests, ", "))
		return
	}
	fmt.Fprintf(w, "%sSyntax issues (%s):\n", name, report.Language)
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

func NewDemoCmd() *cobra.Command {
	var (
		requirements string
		file         string
		out          string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a minimal demo web app (index.html, script.js, styles.css)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			text, err := readText(requirements, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			a, err := app.assistant()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stop := app.spin(cmd, "Generating demo app...")
			files, err := a.GenerateDemoApp(ctx, text)
			stop()
			if err != nil {
				return err
			}

			storage, err := tools.NewLocalStorage(out)
			if err != nil {
				return err
			}
			for _, name := range types.DemoAppFiles {
				saved, err := storage.Save(ctx, name, files[name])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", saved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&requirements, "requirements", "", "App description")
	cmd.Flags().StringVar(&file, "file", "", "Read the description from a file (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "demo_app", "Output directory")
	return cmd
}

func NewReviewCmd() *cobra.Command {
	var file, output string

	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Review automation code and suggest improvements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if output != "json" && output != "text" {
				return fmt.Errorf("unsupported output %q (supported: json, text)", output)
			}
			if len(args) == 1 {
				file = args[0]
			}
			if file == "" {
				file = "-"
			}
			code, err := readText("", file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			a, err := app.assistant()
			if err != nil {
				return err
			}

			stop := app.spin(cmd, "Reviewing code...")
			result, err := a.ReviewCode(cmd.Context(), code)
			stop()
			if err != nil {
				return err
			}
			if output == "text" {
				printReview(cmd.OutOrStdout(), result)
				return nil
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "File to review (- for stdin, the default)")
	cmd.Flags().StringVar(&output, "output", "json", "Output format (json, text)")
	return cmd
}

func printReview(w io.Writer, r types.ReviewResult) {
	fmt.Fprintf(w, "Score: %d/100\n%s\n", r.Score, r.Summary)
	for i, sg := range r.Suggestions {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, sg.Title)
		if sg.Comment != "" {
			fmt.Fprintf(w, "   %s\n", sg.Comment)
		}
		if stat, ok := sg.DiffStats(); ok {
			fmt.Fprintf(w, "   diff: %s\n", stat)
		}
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
