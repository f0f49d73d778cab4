package utils

import (
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

type MarkdownLabels struct {
	Steps    string
	Expected string
}

var markdownLabels = map[string]MarkdownLabels{
	"en": {Steps: "Steps", Expected: "Expected"},
	"ru": {Steps: "Шаги", Expected: "Ожидаемо"},
}

// LabelsFor returns the section labels for lang, English when unknown.
func LabelsFor(lang string) MarkdownLabels {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if l, ok := markdownLabels[lang]; ok {
		return l
	}
	return markdownLabels["en"]
}

// RenderTestCasesMarkdown formats already-parsed cases; it never changes them.
func RenderTestCasesMarkdown(cases []types.TestCase, lang string) string {
	labels := LabelsFor(lang)
	parts := make([]string, 0, len(cases))

	for _, c := range cases {
		var b strings.Builder
		b.WriteString("### " + c.Title + "\n\n")
		b.WriteString("- " + labels.Steps + ":\n")
		steps := make([]string, 0, len(c.Steps))
		for _, s := range c.Steps {
			steps = append(steps, "  - "+s)
		}
		b.WriteString(strings.Join(steps, "\n"))
		b.WriteString("\n\n- " + labels.Expected + ": " + c.Expected + "\n")
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n")
}

// ParseTestCasesMarkdown reads the format produced by RenderTestCasesMarkdown
// in any known label language.
func ParseTestCasesMarkdown(md string) []types.TestCase {
	var cases []types.TestCase
	var current *types.TestCase
	section := ""
	var expected []string

	flush := func() {
		if current == nil {
			return
		}
		current.Expected = strings.TrimRight(strings.Join(expected, "\n"), "\n")
		cases = append(cases, *current)
		current = nil
		expected = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "### ") {
			flush()
			current = &types.TestCase{Title: strings.TrimPrefix(line, "### "), Steps: []string{}}
			section = ""
			continue
		}
		if current == nil {
			continue
		}

		if section == "expected" {
			expected = append(expected, line)
			continue
		}

		if label, rest, ok := labelLine(line); ok {
			switch label {
			case "steps":
				section = "steps"
			case "expected":
				section = "expected"
				expected = append(expected, rest)
			}
			continue
		}

		if section == "steps" && strings.HasPrefix(line, "  - ") {
			current.Steps = append(current.Steps, strings.TrimPrefix(line, "  - "))
		}
	}
	flush()

	return cases
}

func labelLine(line string) (kind, rest string, ok bool) {
	if !strings.HasPrefix(line, "- ") {
		return "", "", false
	}
	for _, l := range markdownLabels {
		if line == "- "+l.Steps+":" {
			return "steps", "", true
		}
		if strings.HasPrefix(line, "- "+l.Expected+":") {
			rest = strings.TrimPrefix(line, "- "+l.Expected+":")
			return "expected", strings.TrimPrefix(rest, " "), true
		}
	}
	return "", "", false
}
