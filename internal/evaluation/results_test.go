package evaluation

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/agusespa/testsmith/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsManagerFilename(t *testing.T) {
	rm := NewResultsManager(t.TempDir())
	start := time.Unix(1700000000, 0)

	single := &types.EvaluationResult{Provider: "ollama", Model: "qwen2.5:7b-instruct", TotalRuns: 1, StartTime: start}
	assert.Equal(t, "eval_ollama_qwen2.5-7b-instruct_1700000000.json", rm.Filename(single))

	multi := &types.EvaluationResult{Provider: "openai", Model: "gpt-4o-mini", TotalRuns: 3, StartTime: start}
	assert.Equal(t, "eval_openai_gpt-4o-mini_3runs_1700000000.json", rm.Filename(multi))
}

func TestSaveAndLoadEvaluationResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	rm := NewResultsManager(dir)

	low := &types.EvaluationResult{Provider: "ollama", Model: "small", TotalRuns: 1, StartTime: time.Unix(1, 0)}
	low.AggregatedStats.AverageScore = 0.4
	high := &types.EvaluationResult{Provider: "openai", Model: "large", TotalRuns: 1, StartTime: time.Unix(2, 0)}
	high.AggregatedStats.AverageScore = 0.9

	for _, r := range []*types.EvaluationResult{low, high} {
		path, err := rm.SaveEvaluationResults(r)
		require.NoError(t, err)
		assert.FileExists(t, path)
	}

	results, err := rm.LoadEvaluationResults()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "large", results[0].Model)
	assert.Equal(t, "small", results[1].Model)

	var out bytes.Buffer
	PrintComparison(&out, results)
	assert.Contains(t, out.String(), "MODEL")
	assert.Contains(t, out.String(), "large")
}

func TestLoadEvaluationResultsEmpty(t *testing.T) {
	results, err := NewResultsManager(t.TempDir()).LoadEvaluationResults()
	require.NoError(t, err)
	assert.Empty(t, results)

	var out bytes.Buffer
	PrintComparison(&out, results)
	assert.Contains(t, out.String(), "No evaluation results found")
}

func TestPrintSummary(t *testing.T) {
	result := &types.EvaluationResult{
		Suite:     "smoke",
		Provider:  "fake",
		Model:     "fake-model",
		TotalRuns: 2,
		ScenarioStats: map[string]types.ScenarioStats{
			"login": {Name: "login", AverageScore: 1, SuccessRate: 100, ConsistencyScore: 1},
			"cart":  {Name: "cart", AverageScore: 0.5, SuccessRate: 50, ConsistencyScore: 0.41},
		},
	}

	var out bytes.Buffer
	PrintSummary(&out, result)
	s := out.String()
	assert.Contains(t, s, "fake/fake-model on smoke")
	assert.Contains(t, s, "SCENARIO")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("cart")), bytes.Index(out.Bytes(), []byte("login")))
}
