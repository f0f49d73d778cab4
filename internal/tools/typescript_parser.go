package tools

import (
	"github.com/agusespa/testsmith/internal/types"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Playwright declares tests as test("name", ...) or, in older suites, it("name", ...).
const typeScriptTestQuery = `
(call_expression
  function: (identifier) @fn
  arguments: (arguments . (string) @name))
`

// TypeScriptParser also serves JavaScript: the TypeScript grammar is a
// superset for the code we generate.
type TypeScriptParser struct {
	*grammar
}

func NewTypeScriptParser() (*TypeScriptParser, error) {
	lang := sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	g, err := newGrammar("TypeScript", lang, typeScriptTestQuery)
	if err != nil {
		return nil, err
	}
	return &TypeScriptParser{grammar: g}, nil
}

func (tp *TypeScriptParser) Language() string {
	return "TypeScript"
}

func (tp *TypeScriptParser) Targets() []types.TargetLanguage {
	return []types.TargetLanguage{types.LanguageTypeScript, types.LanguageJavaScript}
}

func (tp *TypeScriptParser) Check(code string) (SyntaxReport, error) {
	return tp.check([]byte(code), func(c map[string]string) string {
		if c["fn"] != "test" && c["fn"] != "it" {
			return ""
		}
		return unquote(c["name"])
	})
}
