package main

import (
	"fmt"
	"os"

	"github.com/agusespa/testsmith/internal/cli"
	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/pkg/config"
	"github.com/agusespa/testsmith/pkg/logging"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	root := cli.NewRootCmd(loadApp)
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadApp(opts cli.GlobalOptions) (*cli.App, error) {
	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	settings := config.Load(envFiles...)

	if opts.ConfigPath != "" {
		var err error
		settings, err = config.LoadFile(opts.ConfigPath, settings)
		if err != nil {
			return nil, err
		}
	}

	level := opts.LogLevel
	if level == "" {
		level = settings.LogLevel
	}
	logger := logging.New(level, logging.Format(opts.LogFormat), os.Stderr)

	return &cli.App{
		Options:  opts,
		Settings: settings,
		Logger:   logger,
		Exec:     tools.RealExecRunner{},
		Providers: func(provider, model string) (llm.Provider, error) {
			return llm.NewFromSettings(settings, provider, model, logger)
		},
		Interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}, nil
}
