package evaluation

import (
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

// Outcome is what one scenario produced in a single run.
type Outcome struct {
	Cases       []types.TestCase
	CodeChecked bool
	CodeValid   bool
}

// Scorer interface for different scoring strategies
type Scorer interface {
	Score(scenario types.EvalScenario, outcome Outcome) (float64, map[string]float64)
}

// ScoringMetric returns a value in [0,1], or -1 when it does not apply.
type ScoringMetric interface {
	Name() string
	Calculate(scenario types.EvalScenario, outcome Outcome) float64
}

// SimpleScorer averages the applicable metrics.
type SimpleScorer struct {
	metrics []ScoringMetric
}

func NewSimpleScorer() *SimpleScorer {
	return &SimpleScorer{metrics: []ScoringMetric{
		&CasesFoundMetric{},
		&CaseCountMetric{},
		&CompletenessMetric{},
		&KeywordCoverageMetric{},
		&CodeSyntaxMetric{},
	}}
}

func (s *SimpleScorer) Score(scenario types.EvalScenario, outcome Outcome) (float64, map[string]float64) {
	breakdown := make(map[string]float64, len(s.metrics))
	var total, applicable float64
	for _, metric := range s.metrics {
		score := metric.Calculate(scenario, outcome)
		if score < 0 {
			continue
		}
		breakdown[metric.Name()] = score
		total += score
		applicable++
	}

	if applicable == 0 {
		return 1.0, breakdown
	}
	return total / applicable, breakdown
}

type CasesFoundMetric struct{}

func (m *CasesFoundMetric) Name() string { return "cases_found" }

func (m *CasesFoundMetric) Calculate(_ types.EvalScenario, outcome Outcome) float64 {
	if len(outcome.Cases) > 0 {
		return 1.0
	}
	return 0.0
}

// CaseCountMetric checks the number of cases is within the scenario's range.
type CaseCountMetric struct{}

func (m *CaseCountMetric) Name() string { return "case_count" }

func (m *CaseCountMetric) Calculate(scenario types.EvalScenario, outcome Outcome) float64 {
	if scenario.MinCases == 0 && scenario.MaxCases == 0 {
		return -1.0
	}

	count := len(outcome.Cases)
	minOk := scenario.MinCases == 0 || count >= scenario.MinCases
	maxOk := scenario.MaxCases == 0 || count <= scenario.MaxCases
	if minOk && maxOk {
		return 1.0
	}
	return 0.0
}

// CompletenessMetric is the share of cases that have a title, at least one
// step and an expected result.
type CompletenessMetric struct{}

func (m *CompletenessMetric) Name() string { return "completeness" }

func (m *CompletenessMetric) Calculate(_ types.EvalScenario, outcome Outcome) float64 {
	if len(outcome.Cases) == 0 {
		return -1.0
	}

	complete := 0
	for _, tc := range outcome.Cases {
		if strings.TrimSpace(tc.Title) == "" || strings.TrimSpace(tc.Expected) == "" {
			continue
		}
		for _, step := range tc.Steps {
			if strings.TrimSpace(step) != "" {
				complete++
				break
			}
		}
	}
	return float64(complete) / float64(len(outcome.Cases))
}

// KeywordCoverageMetric is the share of expected keywords mentioned anywhere
// in the generated cases, case-insensitively.
type KeywordCoverageMetric struct{}

func (m *KeywordCoverageMetric) Name() string { return "keyword_coverage" }

func (m *KeywordCoverageMetric) Calculate(scenario types.EvalScenario, outcome Outcome) float64 {
	if len(scenario.Keywords) == 0 {
		return -1.0
	}

	var sb strings.Builder
	for _, tc := range outcome.Cases {
		sb.WriteString(tc.Title)
		sb.WriteByte('\n')
		for _, step := range tc.Steps {
			sb.WriteString(step)
			sb.WriteByte('\n')
		}
		sb.WriteString(tc.Expected)
		sb.WriteByte('\n')
	}
	text := strings.ToLower(sb.String())

	found := 0
	for _, kw := range scenario.Keywords {
		if strings.Contains(text, strings.ToLower(strings.TrimSpace(kw))) {
			found++
		}
	}
	return float64(found) / float64(len(scenario.Keywords))
}

// CodeSyntaxMetric applies only when code was generated and checked.
type CodeSyntaxMetric struct{}

func (m *CodeSyntaxMetric) Name() string { return "code_syntax" }

func (m *CodeSyntaxMetric) Calculate(_ types.EvalScenario, outcome Outcome) float64 {
	if !outcome.CodeChecked {
		return -1.0
	}
	if outcome.CodeValid {
		return 1.0
	}
	return 0.0
}
