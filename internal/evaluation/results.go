package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/agusespa/testsmith/internal/types"
)

type ResultsManager struct {
	resultsDir string
}

func NewResultsManager(resultsDir string) *ResultsManager {
	return &ResultsManager{
		resultsDir: resultsDir,
	}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (rm *ResultsManager) Filename(result *types.EvaluationResult) string {
	model := unsafeName.ReplaceAllString(result.Model, "-")
	if result.TotalRuns <= 1 {
		return fmt.Sprintf("eval_%s_%s_%d.json", result.Provider, model, result.StartTime.Unix())
	}
	return fmt.Sprintf("eval_%s_%s_%druns_%d.json", result.Provider, model, result.TotalRuns, result.StartTime.Unix())
}

// SaveEvaluationResults writes the result as indented JSON and returns its path.
func (rm *ResultsManager) SaveEvaluationResults(result *types.EvaluationResult) (string, error) {
	if err := os.MkdirAll(rm.resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory at %s: %w", rm.resultsDir, err)
	}

	path := filepath.Join(rm.resultsDir, rm.Filename(result))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write results file to %s: %w", path, err)
	}
	return path, nil
}

// LoadEvaluationResults reads every saved result in the directory, best
// average score first.
func (rm *ResultsManager) LoadEvaluationResults() ([]types.EvaluationResult, error) {
	files, err := filepath.Glob(filepath.Join(rm.resultsDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob for json files in %s: %w", rm.resultsDir, err)
	}

	var results []types.EvaluationResult
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read result file %s: %w", file, err)
		}
		var r types.EvaluationResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result file %s: %w", file, err)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AggregatedStats.AverageScore > results[j].AggregatedStats.AverageScore
	})
	return results, nil
}
