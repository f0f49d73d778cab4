package cli

import (
	"fmt"
	"os"

	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/types"
	"github.com/agusespa/testsmith/internal/utils"
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Syntax-check test files and list the tests they declare",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var forced types.TargetLanguage
			if language != "" {
				lang, err := types.ParseTargetLanguage(language)
				if err != nil {
					return err
				}
				forced = lang
			}

			checker, err := tools.NewSyntaxChecker()
			if err != nil {
				return err
			}
			defer checker.Close()

			failed := 0
			for _, path := range args {
				lang := forced
				if lang == "" {
					detected, ok := utils.LanguageFromPath(path)
					if !ok {
						return fmt.Errorf("cannot detect the language of %s, pass --lang", path)
					}
					lang = detected
				}

				code, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				report, err := checker.Check(string(code), lang)
				if err != nil {
					return err
				}
				printSyntaxReport(cmd.OutOrStdout(), path, report)
				if !report.Valid {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) have syntax issues", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Language of every file (default: detect from the extension)")
	return cmd
}
