package tools

import (
	"strings"

	"github.com/agusespa/testsmith/internal/types"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

const pythonTestQuery = `(function_definition name: (identifier) @name)`

type PythonParser struct {
	*grammar
}

func NewPythonParser() (*PythonParser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	g, err := newGrammar("Python", lang, pythonTestQuery)
	if err != nil {
		return nil, err
	}
	return &PythonParser{grammar: g}, nil
}

func (pp *PythonParser) Language() string {
	return "Python"
}

func (pp *PythonParser) Targets() []types.TargetLanguage {
	return []types.TargetLanguage{types.LanguagePython}
}

// Check reports pytest-style test functions, those named test_*.
func (pp *PythonParser) Check(code string) (SyntaxReport, error) {
	return pp.check([]byte(code), func(c map[string]string) string {
		if strings.HasPrefix(c["name"], "test_") {
			return c["name"]
		}
		return ""
	})
}
