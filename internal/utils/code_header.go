package utils

import (
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

const (
	HeaderTypeScript = "import { test, expect } from '@playwright/test';\n"
	HeaderJavaScript = "const { test, expect } = require('@playwright/test');\n"
	HeaderJava       = "import com.microsoft.playwright.*;\nimport static com.microsoft.playwright.assertions.PlaywrightAssertions.assertThat;\n"
)

type importHeader struct {
	header   string
	prefixes []string
}

var importHeaders = map[types.TargetLanguage]importHeader{
	types.LanguageTypeScript: {header: HeaderTypeScript, prefixes: []string{"import ", "const {"}},
	types.LanguageJavaScript: {header: HeaderJavaScript, prefixes: []string{"import ", "const {"}},
	types.LanguageJava:       {header: HeaderJava, prefixes: []string{"import ", "package "}},
}

// EnsureImportHeader prepends the target's import header unless the code
// already starts with an import-like line. This is a prefix check only.
// Targets without a header (python) get the trimmed code back.
func EnsureImportHeader(code string, lang types.TargetLanguage) string {
	code = strings.TrimSpace(code)

	h, ok := importHeaders[lang]
	if !ok {
		return code
	}
	for _, p := range h.prefixes {
		if strings.HasPrefix(code, p) {
			return code
		}
	}

	return h.header + "\n" + code + "\n"
}
