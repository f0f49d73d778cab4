package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(factory AppFactory) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "testsmith",
		Short:         "Generate test cases, Playwright tests and demo apps from feature descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory(opts)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.Provider, "provider", "", "AI provider (openai, ollama); defaults to AI_PROVIDER")
	flags.StringVar(&opts.Model, "model", "", "Model name; defaults to the provider's configured model")
	flags.StringVar(&opts.EnvFile, "env-file", "", "Path to a .env file")
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewCasesCmd())
	root.AddCommand(NewCodeCmd())
	root.AddCommand(NewDemoCmd())
	root.AddCommand(NewReviewCmd())
	root.AddCommand(NewTemplatesCmd())
	root.AddCommand(NewPromptsCmd())
	root.AddCommand(NewTestCmd())
	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewEvalCmd())
	root.AddCommand(NewServeCmd())

	return root
}
