package evaluation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agusespa/testsmith/internal/types"
)

const (
	DefaultMinCases = 1
	DefaultMaxCases = 5
)

// LoadSuite reads an evaluation suite from a YAML file.
func LoadSuite(path string) (*types.EvalSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file at %s: %w", path, err)
	}

	var suite types.EvalSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}

	if err := ValidateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}
	return &suite, nil
}

// ValidateSuite checks required fields and fills per-scenario defaults.
func ValidateSuite(suite *types.EvalSuite) error {
	if len(suite.Scenarios) == 0 {
		return errors.New("suite has no scenarios")
	}

	seen := make(map[string]bool, len(suite.Scenarios))
	for i := range suite.Scenarios {
		sc := &suite.Scenarios[i]
		sc.Name = strings.TrimSpace(sc.Name)
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: missing required 'name' field", i+1)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %q: duplicate name", sc.Name)
		}
		seen[sc.Name] = true

		if strings.TrimSpace(sc.Description) == "" {
			return fmt.Errorf("scenario %q: missing required 'description' field", sc.Name)
		}
		if sc.Lang == "" {
			sc.Lang = suite.Lang
		}
		if sc.MinCases == 0 && sc.MaxCases == 0 {
			sc.MinCases, sc.MaxCases = DefaultMinCases, DefaultMaxCases
		}
		if sc.MinCases < 0 || sc.MaxCases < 0 || (sc.MaxCases > 0 && sc.MinCases > sc.MaxCases) {
			return fmt.Errorf("scenario %q: invalid case range [%d,%d]", sc.Name, sc.MinCases, sc.MaxCases)
		}
	}
	return nil
}
