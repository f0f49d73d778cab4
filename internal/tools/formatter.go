package tools

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/pkg/logging"
)

const formatTimeout = 10 * time.Second

type formatCommand struct {
	name string
	args []string
}

// CodeFormatter runs the language's external formatter over a temp copy of
// the code. Formatting is best effort: any failure yields the input unchanged.
type CodeFormatter struct {
	runner ExecRunner
	logger *slog.Logger
}

func NewCodeFormatter(runner ExecRunner, logger *slog.Logger) *CodeFormatter {
	if runner == nil {
		runner = RealExecRunner{}
	}
	return &CodeFormatter{runner: runner, logger: logging.OrDefault(logger)}
}

// commands lists the formatter attempts for lang. Later entries are tried
// only when the earlier tool could not be started.
func commands(lang types.TargetLanguage, file string) []formatCommand {
	switch lang {
	case types.LanguageTypeScript, types.LanguageJavaScript:
		return []formatCommand{{"npx", []string{"--yes", "prettier", "--write", file}}}
	case types.LanguagePython:
		return []formatCommand{
			{"black", []string{"--quiet", file}},
			{"ruff", []string{"format", file}},
		}
	case types.LanguageJava:
		return []formatCommand{{"google-java-format", []string{"--replace", file}}}
	}
	return nil
}

func extensionFor(lang types.TargetLanguage) string {
	switch lang {
	case types.LanguageTypeScript:
		return ".ts"
	case types.LanguageJavaScript:
		return ".js"
	case types.LanguagePython:
		return ".py"
	case types.LanguageJava:
		return ".java"
	}
	return ".txt"
}

func (f *CodeFormatter) Format(ctx context.Context, code string, lang types.TargetLanguage) string {
	cmds := commands(lang, "")
	if len(cmds) == 0 {
		return code
	}

	dir, err := os.MkdirTemp("", "testsmith-fmt-")
	if err != nil {
		f.logger.Warn("formatter temp dir failed", "error", err)
		return code
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "snippet"+extensionFor(lang))
	if err := os.WriteFile(file, []byte(code), 0o644); err != nil {
		f.logger.Warn("formatter temp file failed", "error", err)
		return code
	}

	for _, c := range commands(lang, file) {
		runCtx, cancel := context.WithTimeout(ctx, formatTimeout)
		res, err := f.runner.Run(runCtx, dir, c.name, c.args...)
		cancel()
		if err != nil {
			f.logger.Debug("formatter unavailable", "tool", c.name, "error", err)
			continue
		}
		if res.ExitCode != 0 {
			f.logger.Debug("formatter rejected code", "tool", c.name, "exit_code", res.ExitCode)
			return code
		}
		formatted, err := os.ReadFile(file)
		if err != nil {
			return code
		}
		return string(formatted)
	}
	return code
}
