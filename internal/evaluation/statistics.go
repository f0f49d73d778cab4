package evaluation

import (
	"math"
	"slices"

	"github.com/agusespa/testsmith/internal/types"
)

// StatisticsCalculator aggregates scenario scores across runs.
type StatisticsCalculator struct{}

func NewStatisticsCalculator() *StatisticsCalculator {
	return &StatisticsCalculator{}
}

// CalculateRunSummary fills the average score and success rate (percent) of one run.
func (s *StatisticsCalculator) CalculateRunSummary(r *types.EvaluationRun) {
	if len(r.Results) == 0 {
		return
	}

	scores := make([]float64, len(r.Results))
	passed := 0
	for i, sr := range r.Results {
		scores[i] = sr.Score
		if sr.Success {
			passed++
		}
	}
	r.AverageScore = s.CalculateMean(scores)
	r.SuccessRate = percent(passed, len(r.Results))
}

func (s *StatisticsCalculator) CalculateEvaluationStats(result *types.EvaluationResult) {
	if len(result.IndividualRuns) == 0 {
		return
	}

	n := len(result.IndividualRuns)
	scores := make([]float64, n)
	successRates := make([]float64, n)
	durations := make([]float64, n)
	for i, run := range result.IndividualRuns {
		scores[i] = run.AverageScore
		successRates[i] = run.SuccessRate
		durations[i] = run.TotalDuration.Seconds()
	}

	result.AggregatedStats = types.EvaluationStats{
		AverageScore:       s.CalculateMean(scores),
		ScoreStdDev:        s.CalculateStdDev(scores),
		MinScore:           s.CalculateMin(scores),
		MaxScore:           s.CalculateMax(scores),
		AverageSuccessRate: s.CalculateMean(successRates),
		SuccessRateStdDev:  s.CalculateStdDev(successRates),
		AverageDuration:    s.CalculateMean(durations),
		DurationStdDev:     s.CalculateStdDev(durations),
	}
	result.ScenarioStats = s.scenarioStats(result.IndividualRuns)
}

func (s *StatisticsCalculator) scenarioStats(runs []types.EvaluationRun) map[string]types.ScenarioStats {
	type samples struct {
		scores []float64
		passed int
	}
	byName := make(map[string]*samples)
	for _, run := range runs {
		for _, sr := range run.Results {
			acc, ok := byName[sr.Scenario.Name]
			if !ok {
				acc = &samples{}
				byName[sr.Scenario.Name] = acc
			}
			acc.scores = append(acc.scores, sr.Score)
			if sr.Success {
				acc.passed++
			}
		}
	}

	stats := make(map[string]types.ScenarioStats, len(byName))
	for name, acc := range byName {
		stats[name] = types.ScenarioStats{
			Name:             name,
			AverageScore:     s.CalculateMean(acc.scores),
			ScoreStdDev:      s.CalculateStdDev(acc.scores),
			SuccessRate:      percent(acc.passed, len(acc.scores)),
			ConsistencyScore: s.CalculateConsistency(acc.scores),
		}
	}
	return stats
}

func (s *StatisticsCalculator) CalculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CalculateStdDev is the sample standard deviation; 0 for fewer than two values.
func (s *StatisticsCalculator) CalculateStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := s.CalculateMean(values)
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func (s *StatisticsCalculator) CalculateMin(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Min(values)
}

func (s *StatisticsCalculator) CalculateMax(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// CalculateConsistency is 1/(1+|cv|) where cv is the coefficient of
// variation. Identical values and a zero mean count as fully consistent.
func (s *StatisticsCalculator) CalculateConsistency(values []float64) float64 {
	if len(values) < 2 || slices.Min(values) == slices.Max(values) {
		return 1.0
	}
	mean := s.CalculateMean(values)
	if mean == 0 {
		return 1.0
	}
	cv := s.CalculateStdDev(values) / mean
	return math.Min(1.0/(1.0+math.Abs(cv)), 1.0)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
