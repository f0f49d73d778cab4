package utils

import (
	"strings"
)

// ParseChangedFiles reads `git status --porcelain` output and returns the
// changed paths. Renames report the new path.
func ParseChangedFiles(output string) []string {
	files := []string{}
	for line := range strings.SplitSeq(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		_, path, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		path = strings.TrimSpace(path)
		if _, renamed, ok := strings.Cut(path, " -> "); ok {
			path = renamed
		}
		files = append(files, strings.Trim(path, `"`))
	}
	return files
}
