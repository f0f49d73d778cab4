package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/go-diff/diff"
)

const DefaultReviewScore = 70

// ReviewSuggestion is one improvement found while reviewing automation code.
// Diff is carried through exactly as the model produced it.
type ReviewSuggestion struct {
	Title   string  `json:"title"`
	Comment string  `json:"comment"`
	Diff    *string `json:"diff"`
}

type ReviewResult struct {
	Summary     string             `json:"summary"`
	Score       int                `json:"score" validate:"min=0,max=100"`
	Suggestions []ReviewSuggestion `json:"suggestions"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the score bounds. Out of range scores are rejected, never clamped.
func (r ReviewResult) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid review result: score %d must be within [0,100]: %w", r.Score, err)
	}
	return nil
}

// DiffStat summarises a suggestion's unified diff.
type DiffStat struct {
	Files   int `json:"files"`
	Hunks   int `json:"hunks"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

func (s DiffStat) String() string {
	return fmt.Sprintf("%d file(s), %d hunk(s), +%d/-%d", s.Files, s.Hunks, s.Added, s.Removed)
}

// DiffStats parses the suggestion's diff. ok is false when there is no diff
// or it is not a unified diff.
func (s ReviewSuggestion) DiffStats() (stat DiffStat, ok bool) {
	if s.Diff == nil || strings.TrimSpace(*s.Diff) == "" {
		return DiffStat{}, false
	}
	raw := []byte(*s.Diff)

	if files, err := diff.ParseMultiFileDiff(raw); err == nil && len(files) > 0 {
		for _, f := range files {
			if len(f.Hunks) == 0 {
				continue
			}
			stat.Files++
			addHunks(&stat, f.Hunks)
		}
		if stat.Hunks > 0 {
			return stat, true
		}
	}

	// Models often emit bare hunks without file headers.
	hunks, err := diff.ParseHunks(raw)
	if err != nil || len(hunks) == 0 {
		return DiffStat{}, false
	}
	stat = DiffStat{Files: 1}
	addHunks(&stat, hunks)
	return stat, true
}

func addHunks(stat *DiffStat, hunks []*diff.Hunk) {
	for _, h := range hunks {
		st := h.Stat()
		stat.Hunks++
		stat.Added += int(st.Added + st.Changed)
		stat.Removed += int(st.Deleted + st.Changed)
	}
}
