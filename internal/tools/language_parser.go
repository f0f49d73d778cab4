package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agusespa/testsmith/internal/types"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

const issueSnippetLimit = 40

type SyntaxIssue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet,omitempty"`
}

func (i SyntaxIssue) String() string {
	if i.Snippet == "" {
		return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Kind)
	}
	return fmt.Sprintf("%d:%d: %s near %q", i.Line, i.Column, i.Kind, i.Snippet)
}

// SyntaxReport is advisory: it says whether the grammar accepted the code and
// which test functions it declares.
type SyntaxReport struct {
	Language string        `json:"language"`
	Valid    bool          `json:"valid"`
	Issues   []SyntaxIssue `json:"issues"`
	Tests    []string      `json:"tests"`
}

// LanguageParser checks generated code for one grammar.
type LanguageParser interface {
	Language() string
	Targets() []types.TargetLanguage
	Check(code string) (SyntaxReport, error)
	Close()
}

// SyntaxChecker dispatches to the parser registered for a target language.
type SyntaxChecker struct {
	parsers map[types.TargetLanguage]LanguageParser
}

func NewSyntaxChecker() (*SyntaxChecker, error) {
	checker := &SyntaxChecker{parsers: make(map[types.TargetLanguage]LanguageParser)}

	ts, err := NewTypeScriptParser()
	if err != nil {
		return nil, err
	}
	checker.RegisterParser(ts)

	py, err := NewPythonParser()
	if err != nil {
		return nil, err
	}
	checker.RegisterParser(py)

	java, err := NewJavaParser()
	if err != nil {
		return nil, err
	}
	checker.RegisterParser(java)

	return checker, nil
}

func (c *SyntaxChecker) RegisterParser(parser LanguageParser) {
	for _, lang := range parser.Targets() {
		c.parsers[lang] = parser
	}
}

func (c *SyntaxChecker) GetParser(lang types.TargetLanguage) LanguageParser {
	return c.parsers[lang]
}

func (c *SyntaxChecker) Check(code string, lang types.TargetLanguage) (SyntaxReport, error) {
	parser := c.GetParser(lang)
	if parser == nil {
		return SyntaxReport{}, fmt.Errorf("no syntax parser for language %q (supported: %s)", lang, strings.Join(c.SupportedLanguages(), ", "))
	}
	return parser.Check(code)
}

func (c *SyntaxChecker) SupportedLanguages() []string {
	seen := make(map[string]bool)
	var result []string
	for _, parser := range c.parsers {
		if !seen[parser.Language()] {
			seen[parser.Language()] = true
			result = append(result, parser.Language())
		}
	}
	sort.Strings(result)
	return result
}

func (c *SyntaxChecker) Close() {
	seen := make(map[LanguageParser]bool)
	for _, parser := range c.parsers {
		if !seen[parser] {
			seen[parser] = true
			parser.Close()
		}
	}
}

// grammar holds what every tree-sitter backed parser shares. sitter.Parser is
// not safe for concurrent use, so parsing is serialized; the compiled query is
// read-only and shared between cursors.
type grammar struct {
	name     string
	mu       sync.Mutex
	parser   *sitter.Parser
	language *sitter.Language
	tests    *sitter.Query
}

func newGrammar(name string, lang *sitter.Language, testQuery string) (*grammar, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}
	q, qErr := sitter.NewQuery(lang, testQuery)
	if qErr != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to compile %s test query: %w", name, qErr)
	}
	return &grammar{name: name, parser: parser, language: lang, tests: q}, nil
}

func (g *grammar) Close() {
	g.tests.Close()
	g.parser.Close()
}

// check parses src, collects error nodes and hands every test-query match to
// pick, which returns the test name or "" to skip the match.
func (g *grammar) check(src []byte, pick func(captures map[string]string) string) (SyntaxReport, error) {
	g.mu.Lock()
	tree := g.parser.Parse(src, nil)
	g.mu.Unlock()
	if tree == nil {
		return SyntaxReport{}, fmt.Errorf("failed to parse %s code: tree-sitter returned nil", g.name)
	}
	defer tree.Close()

	root := tree.RootNode()
	report := SyntaxReport{Language: g.name, Issues: []SyntaxIssue{}, Tests: []string{}}
	if root.HasError() {
		collectIssues(root, src, &report.Issues)
	}
	report.Valid = len(report.Issues) == 0

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	names := g.tests.CaptureNames()
	matches := qc.Matches(g.tests, root, src)
	for {
		m := matches.Next()
		if m == nil {
			break
		}
		captures := make(map[string]string, len(m.Captures))
		for _, c := range m.Captures {
			captures[names[c.Index]] = c.Node.Utf8Text(src)
		}
		if name := pick(captures); name != "" {
			report.Tests = append(report.Tests, name)
		}
	}

	return report, nil
}

func collectIssues(node *sitter.Node, src []byte, out *[]SyntaxIssue) {
	if node == nil {
		return
	}
	pos := node.StartPosition()
	switch {
	case node.IsMissing():
		*out = append(*out, SyntaxIssue{
			Line:   int(pos.Row) + 1,
			Column: int(pos.Column) + 1,
			Kind:   "missing " + node.Kind(),
		})
		return
	case node.IsError():
		*out = append(*out, SyntaxIssue{
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Kind:    "syntax error",
			Snippet: snippet(node.Utf8Text(src)),
		})
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			collectIssues(child, src, out)
		}
	}
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > issueSnippetLimit {
		return text[:issueSnippetLimit] + "..."
	}
	return text
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
