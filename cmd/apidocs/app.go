package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/apidocs/config"
	"github.com/vitalvas/apidocs/docs"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type app struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logger     *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}

	a.root = &cobra.Command{
		Use:               "apidocs",
		Short:             "Serve Swagger 1.2 documentation of a dispatch graph",
		Long:              "apidocs builds API documentation from a declarative dispatch graph and serves it as Swagger 1.2 resource listings, OpenAPI 3 or MCP tools.",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)

	flags := a.root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "apidocs.yaml", "Path to the configuration file")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	a.root.AddCommand(
		a.serveCommand(),
		a.printCommand(),
		a.openapiCommand(),
		a.mcpCommand(),
	)

	return a
}

// Execute runs the command line.
func (a *app) Execute() error {
	return a.root.Execute()
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(a.logLevel))); err != nil {
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// load reads the configuration and builds its documentation handler.
func (a *app) load() (*config.Config, *docs.Handler, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, nil, err
	}

	h, err := cfg.Handler(a.logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, h, nil
}
