package utils

import (
	"path/filepath"
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

// LanguageFromPath maps a test file's extension to the automation language
// it is written in. ok is false for anything else.
func LanguageFromPath(filePath string) (types.TargetLanguage, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")

	languageMap := map[string]types.TargetLanguage{
		"ts":   types.LanguageTypeScript,
		"tsx":  types.LanguageTypeScript,
		"mts":  types.LanguageTypeScript,
		"js":   types.LanguageJavaScript,
		"jsx":  types.LanguageJavaScript,
		"mjs":  types.LanguageJavaScript,
		"cjs":  types.LanguageJavaScript,
		"py":   types.LanguagePython,
		"java": types.LanguageJava,
	}

	lang, ok := languageMap[ext]
	return lang, ok
}
