package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/server"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	var (
		addr string
		root string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}

			srv, cleanup, err := buildServer(app, root)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&root, "root", "", "Repository root for saved files (default DEFAULT_REPO_ROOT)")
	return cmd
}

func buildServer(app *App, root string) (*server.Server, func(), error) {
	if root == "" {
		root = app.Settings.DefaultRepoRoot
	}
	storage, err := tools.NewLocalStorage(root)
	if err != nil {
		return nil, nil, err
	}

	deps := server.Deps{
		Providers: func(provider, model string) (llm.Provider, error) {
			if provider == "" {
				provider = app.Options.Provider
			}
			if model == "" {
				model = app.Options.Model
			}
			return app.Providers(provider, model)
		},
		Storage: storage,
		Git:     tools.NewLocalGit(storage.Root(), app.Exec, app.Logger),
		Github: func() (server.GithubWriter, error) {
			gh, err := tools.NewGithubSaver(app.Settings.GithubToken, nil)
			if err != nil {
				return nil, err
			}
			return gh, nil
		},
		Runner:    tools.NewTestRunner(app.Exec),
		Formatter: tools.NewCodeFormatter(app.Exec, app.Logger),
		Logger:    app.Logger,
	}

	cleanup := func() {}
	checker, err := tools.NewSyntaxChecker()
	if err != nil {
		app.Logger.Warn("syntax checking disabled", "error", err)
	} else {
		deps.Checker = checker
		cleanup = checker.Close
	}

	return server.New(deps), cleanup, nil
}
