package utils

import (
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

// SplitDemoApp splits a free-text reply into the three demo files. A line
// whose lowercased, trimmed text mentions a file name starts that file's
// section and is itself dropped. Text before the first such line is ignored.
func SplitDemoApp(content string) types.DemoAppBundle {
	files := types.NewDemoAppBundle()
	current := ""

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	for _, line := range strings.Split(content, "\n") {
		if name := sectionMarker(line); name != "" {
			current = name
			continue
		}
		if current != "" {
			files[current] += line + "\n"
		}
	}

	return files
}

func sectionMarker(line string) string {
	h := strings.ToLower(strings.TrimSpace(line))
	for _, name := range types.DemoAppFiles {
		if strings.Contains(h, name) {
			return name
		}
	}
	return ""
}
