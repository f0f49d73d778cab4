package tools

import (
	"github.com/agusespa/testsmith/internal/types"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

const javaTestQuery = `
(method_declaration
  (modifiers (marker_annotation name: (identifier) @annotation))
  name: (identifier) @name)
`

type JavaParser struct {
	*grammar
}

func NewJavaParser() (*JavaParser, error) {
	lang := sitter.NewLanguage(tree_sitter_java.Language())
	g, err := newGrammar("Java", lang, javaTestQuery)
	if err != nil {
		return nil, err
	}
	return &JavaParser{grammar: g}, nil
}

func (jp *JavaParser) Language() string {
	return "Java"
}

func (jp *JavaParser) Targets() []types.TargetLanguage {
	return []types.TargetLanguage{types.LanguageJava}
}

// Check reports JUnit methods annotated with @Test.
func (jp *JavaParser) Check(code string) (SyntaxReport, error) {
	return jp.check([]byte(code), func(c map[string]string) string {
		if c["annotation"] != "Test" {
			return ""
		}
		return c["name"]
	})
}
