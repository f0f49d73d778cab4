package evaluation

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/agusespa/testsmith/internal/types"
)

// PrintSummary writes the aggregated statistics and the per-scenario table.
func PrintSummary(w io.Writer, result *types.EvaluationResult) {
	stats := result.AggregatedStats
	fmt.Fprintf(w, "\n--- %s/%s", result.Provider, result.Model)
	if result.Suite != "" {
		fmt.Fprintf(w, " on %s", result.Suite)
	}
	fmt.Fprintf(w, " (%d run(s), %.2fs) ---\n", result.TotalRuns, result.TotalDuration.Seconds())
	fmt.Fprintf(w, "Score:        %.2f ± %.2f (min %.2f, max %.2f)\n", stats.AverageScore, stats.ScoreStdDev, stats.MinScore, stats.MaxScore)
	fmt.Fprintf(w, "Success rate: %.1f%% ± %.1f\n", stats.AverageSuccessRate, stats.SuccessRateStdDev)
	fmt.Fprintf(w, "Duration:     %.2fs ± %.2f\n\n", stats.AverageDuration, stats.DurationStdDev)

	names := make([]string, 0, len(result.ScenarioStats))
	for name := range result.ScenarioStats {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSCORE\tSTDDEV\tSUCCESS\tCONSISTENCY")
	for _, name := range names {
		s := result.ScenarioStats[name]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.0f%%\t%.2f\n", name, s.AverageScore, s.ScoreStdDev, s.SuccessRate, s.ConsistencyScore)
	}
	tw.Flush()
}

// PrintComparison ranks previously saved results, which must already be sorted.
func PrintComparison(w io.Writer, results []types.EvaluationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No evaluation results found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROVIDER\tMODEL\tSUITE\tRUNS\tSCORE\tSUCCESS\tDURATION")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%.1f%%\t%.2fs\n",
			i+1, r.Provider, r.Model, r.Suite, r.TotalRuns,
			r.AggregatedStats.AverageScore, r.AggregatedStats.AverageSuccessRate, r.AggregatedStats.AverageDuration)
	}
	tw.Flush()
}
