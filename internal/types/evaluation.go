package types

import "time"

// EvalSuite is a YAML file of feature descriptions used to measure how well a
// model synthesises test cases.
type EvalSuite struct {
	Name      string         `yaml:"name" json:"name"`
	Lang      string         `yaml:"lang,omitempty" json:"lang,omitempty"`
	Scenarios []EvalScenario `yaml:"scenarios" json:"scenarios"`
}

type EvalScenario struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Lang        string   `yaml:"lang,omitempty" json:"lang,omitempty"`
	MinCases    int      `yaml:"min_cases,omitempty" json:"min_cases,omitempty"`
	MaxCases    int      `yaml:"max_cases,omitempty" json:"max_cases,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

type ScenarioResult struct {
	Scenario      EvalScenario       `json:"scenario"`
	Cases         []TestCase         `json:"cases"`
	CodeValid     *bool              `json:"code_valid,omitempty"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
	Score         float64            `json:"score"`
	Success       bool               `json:"success"`
	Error         string             `json:"error,omitempty"`
	ExecutionTime time.Duration      `json:"execution_time"`
	Timestamp     time.Time          `json:"timestamp"`
}

type EvaluationRun struct {
	RunNumber     int              `json:"run_number"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       time.Time        `json:"end_time"`
	TotalDuration time.Duration    `json:"total_duration"`
	Results       []ScenarioResult `json:"results"`
	AverageScore  float64          `json:"average_score"`
	SuccessRate   float64          `json:"success_rate"`
}

type EvaluationResult struct {
	Suite           string                   `json:"suite"`
	Provider        string                   `json:"provider"`
	Model           string                   `json:"model"`
	TotalRuns       int                      `json:"total_runs"`
	StartTime       time.Time                `json:"start_time"`
	EndTime         time.Time                `json:"end_time"`
	TotalDuration   time.Duration            `json:"total_duration"`
	IndividualRuns  []EvaluationRun          `json:"individual_runs"`
	AggregatedStats EvaluationStats          `json:"aggregated_stats"`
	ScenarioStats   map[string]ScenarioStats `json:"scenario_stats"`
}

type EvaluationStats struct {
	AverageScore       float64 `json:"average_score"`
	ScoreStdDev        float64 `json:"score_std_dev"`
	MinScore           float64 `json:"min_score"`
	MaxScore           float64 `json:"max_score"`
	AverageSuccessRate float64 `json:"average_success_rate"`
	SuccessRateStdDev  float64 `json:"success_rate_std_dev"`
	AverageDuration    float64 `json:"average_duration_seconds"`
	DurationStdDev     float64 `json:"duration_std_dev_seconds"`
}

type ScenarioStats struct {
	Name             string  `json:"name"`
	AverageScore     float64 `json:"average_score"`
	ScoreStdDev      float64 `json:"score_std_dev"`
	SuccessRate      float64 `json:"success_rate"`
	ConsistencyScore float64 `json:"consistency_score"`
}
