package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agusespa/testsmith/internal/assistant"
	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/pkg/config"
	"github.com/agusespa/testsmith/pkg/spinner"
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	Provider   string
	Model      string
	EnvFile    string
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// App carries what commands need. It is built once per invocation by an
// AppFactory supplied by main.
type App struct {
	Options     GlobalOptions
	Settings    config.Settings
	Logger      *slog.Logger
	Exec        tools.ExecRunner
	Providers   func(provider, model string) (llm.Provider, error)
	Interactive bool
}

type AppFactory func(opts GlobalOptions) (*App, error)

type appKey struct{}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func (a *App) assistant() (*assistant.Assistant, error) {
	provider, err := a.Providers(a.Options.Provider, a.Options.Model)
	if err != nil {
		return nil, err
	}
	return assistant.New(provider, a.Logger), nil
}

// spin starts a spinner on stderr for interactive sessions and returns its
// stop function.
func (a *App) spin(cmd *cobra.Command, message string) func() {
	if !a.Interactive {
		return func() {}
	}
	s := spinner.NewWithWriter(message, cmd.ErrOrStderr())
	s.Start()
	return s.Stop
}
