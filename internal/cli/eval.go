package cli

import (
	"fmt"

	"github.com/agusespa/testsmith/internal/evaluation"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/spf13/cobra"
)

const defaultResultsDir = "eval_results"

func NewEvalCmd() *cobra.Command {
	var (
		suitePath  string
		runs       int
		resultsDir string
		codeLang   string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure test-case generation quality against a YAML suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", runs)
			}

			suite, err := evaluation.LoadSuite(suitePath)
			if err != nil {
				return err
			}

			a, err := app.assistant()
			if err != nil {
				return err
			}

			opts := evaluation.Options{
				Runs:     runs,
				Progress: cmd.OutOrStdout(),
				Logger:   app.Logger,
			}
			if codeLang != "" {
				lang, err := types.ParseTargetLanguage(codeLang)
				if err != nil {
					return err
				}
				checker, err := tools.NewSyntaxChecker()
				if err != nil {
					return err
				}
				defer checker.Close()
				opts.CodeLanguage, opts.Checker = lang, checker
			}

			provider := a.Provider()
			result, err := evaluation.NewEvaluator(suite, a, opts).Evaluate(cmd.Context(), provider.Name(), provider.Model())
			if err != nil {
				return err
			}
			evaluation.PrintSummary(cmd.OutOrStdout(), result)

			path, err := evaluation.NewResultsManager(resultsDir).SaveEvaluationResults(result)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&suitePath, "suite", "", "YAML file of scenarios to evaluate")
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of times to run the suite")
	cmd.Flags().StringVar(&resultsDir, "results", defaultResultsDir, "Directory for JSON results")
	cmd.Flags().StringVar(&codeLang, "code-lang", "", "Also generate and syntax-check code in this language (ts, js, python, java)")
	_ = cmd.MarkFlagRequired("suite")

	cmd.AddCommand(newEvalCompareCmd())
	return cmd
}

func newEvalCompareCmd() *cobra.Command {
	var resultsDir string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank saved evaluation results by average score",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := evaluation.NewResultsManager(resultsDir).LoadEvaluationResults()
			if err != nil {
				return err
			}
			evaluation.PrintComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results", defaultResultsDir, "Directory of JSON results")
	return cmd
}
