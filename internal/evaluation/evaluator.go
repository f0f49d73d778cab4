package evaluation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/pkg/logging"
)

// Generator is the part of the assistant an evaluation exercises.
type Generator interface {
	GenerateTestCases(ctx context.Context, description, lang string, wantMarkdown bool) (types.TestCaseSet, error)
	GenerateCode(ctx context.Context, tc types.TestCase, lang types.TargetLanguage, baseURL string) (string, error)
}

type SyntaxChecker interface {
	Check(code string, lang types.TargetLanguage) (tools.SyntaxReport, error)
}

type Options struct {
	Runs int
	// CodeLanguage, when set together with Checker, also generates code for
	// the first case of every scenario and scores its syntax.
	CodeLanguage types.TargetLanguage
	Checker      SyntaxChecker
	Scorer       Scorer
	Progress     io.Writer
	Logger       *slog.Logger
}

type Evaluator struct {
	suite    *types.EvalSuite
	gen      Generator
	opts     Options
	stats    *StatisticsCalculator
	progress io.Writer
	logger   *slog.Logger
}

func NewEvaluator(suite *types.EvalSuite, gen Generator, opts Options) *Evaluator {
	if opts.Runs < 1 {
		opts.Runs = 1
	}
	if opts.Scorer == nil {
		opts.Scorer = NewSimpleScorer()
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	opts.Logger = logging.OrDefault(opts.Logger)
	return &Evaluator{
		suite:    suite,
		gen:      gen,
		opts:     opts,
		stats:    NewStatisticsCalculator(),
		progress: opts.Progress,
		logger:   opts.Logger,
	}
}

// Evaluate runs the whole suite opts.Runs times and aggregates the results.
// Scenario failures are recorded, not returned; only cancellation aborts.
func (e *Evaluator) Evaluate(ctx context.Context, provider, model string) (*types.EvaluationResult, error) {
	result := &types.EvaluationResult{
		Suite:     e.suite.Name,
		Provider:  provider,
		Model:     model,
		TotalRuns: e.opts.Runs,
		StartTime: time.Now(),
	}

	for i := 1; i <= e.opts.Runs; i++ {
		if e.opts.Runs > 1 {
			fmt.Fprintf(e.progress, "Run %d/%d\n", i, e.opts.Runs)
		}
		run, err := e.RunOnce(ctx, i)
		if err != nil {
			return nil, err
		}
		result.IndividualRuns = append(result.IndividualRuns, *run)
	}

	result.EndTime = time.Now()
	result.TotalDuration = result.EndTime.Sub(result.StartTime)
	e.stats.CalculateEvaluationStats(result)
	return result, nil
}

func (e *Evaluator) RunOnce(ctx context.Context, runNumber int) (*types.EvaluationRun, error) {
	run := &types.EvaluationRun{
		RunNumber: runNumber,
		StartTime: time.Now(),
		Results:   make([]types.ScenarioResult, 0, len(e.suite.Scenarios)),
	}

	total := len(e.suite.Scenarios)
	for i, scenario := range e.suite.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(e.progress, "  [%d/%d] %s... ", i+1, total, scenario.Name)

		sr := e.runScenario(ctx, scenario)
		if sr.Success {
			fmt.Fprintf(e.progress, "DONE (%.2fs, score: %.2f)\n", sr.ExecutionTime.Seconds(), sr.Score)
		} else {
			fmt.Fprintf(e.progress, "ERROR: %s\n", sr.Error)
		}
		run.Results = append(run.Results, sr)
	}

	run.EndTime = time.Now()
	run.TotalDuration = run.EndTime.Sub(run.StartTime)
	e.stats.CalculateRunSummary(run)
	return run, nil
}

func (e *Evaluator) runScenario(ctx context.Context, scenario types.EvalScenario) types.ScenarioResult {
	start := time.Now()
	sr := types.ScenarioResult{Scenario: scenario, Cases: []types.TestCase{}}

	lang := scenario.Lang
	if lang == "" {
		lang = "ru"
	}
	set, err := e.gen.GenerateTestCases(ctx, scenario.Description, lang, false)
	if err != nil {
		e.logger.Warn("scenario failed", "scenario", scenario.Name, "error", err)
		sr.Error = err.Error()
		sr.ExecutionTime = time.Since(start)
		sr.Timestamp = time.Now()
		return sr
	}
	sr.Cases = set.TestCases

	outcome := Outcome{Cases: set.TestCases}
	if e.opts.CodeLanguage != "" && e.opts.Checker != nil && len(set.TestCases) > 0 {
		outcome.CodeChecked, outcome.CodeValid = e.checkCode(ctx, scenario, set.TestCases[0])
		if outcome.CodeChecked {
			valid := outcome.CodeValid
			sr.CodeValid = &valid
		}
	}

	sr.Score, sr.Metrics = e.opts.Scorer.Score(scenario, outcome)
	sr.Success = true
	sr.ExecutionTime = time.Since(start)
	sr.Timestamp = time.Now()
	return sr
}

// checkCode reports checked=false when generation or parsing itself failed,
// so the syntax metric does not apply.
func (e *Evaluator) checkCode(ctx context.Context, scenario types.EvalScenario, tc types.TestCase) (checked, valid bool) {
	code, err := e.gen.GenerateCode(ctx, tc, e.opts.CodeLanguage, "")
	if err != nil {
		e.logger.Warn("code generation failed", "scenario", scenario.Name, "error", err)
		return false, false
	}
	report, err := e.opts.Checker.Check(code, e.opts.CodeLanguage)
	if err != nil {
		e.logger.Warn("syntax check failed", "scenario", scenario.Name, "error", err)
		return false, false
	}
	if !report.Valid {
		e.logger.Debug("generated code has syntax issues", "scenario", scenario.Name, "issues", len(report.Issues))
	}
	return true, report.Valid
}
