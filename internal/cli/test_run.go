package cli

import (
	"fmt"

	"github.com/agusespa/testsmith/internal/tools"
	"github.com/spf13/cobra"
)

func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run generated test suites",
	}
	cmd.AddCommand(newTestRunCmd())
	return cmd
}

func newTestRunCmd() *cobra.Command {
	var (
		kind string
		cwd  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the Playwright (npx) or pytest suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			testKind, err := tools.ParseTestKind(kind)
			if err != nil {
				return err
			}

			res := tools.NewTestRunner(app.Exec).Run(cmd.Context(), testKind, cwd)
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
			if res.ReturnCode != 0 {
				return fmt.Errorf("%s exited with code %d", testKind, res.ReturnCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "ts", "Suite kind (ts, js, playwright, python, pytest)")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory (default tests or python_tests)")
	return cmd
}
