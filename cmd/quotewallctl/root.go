package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

type services struct {
	quotes *app.QuoteService
	memes  *app.MemeService
}

type rootOptions struct {
	profile   string
	configDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "quotewallctl",
		Short:         "Fetch quotes and memes from the quote wall's upstream APIs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", profile, "Config profile to load")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs", "Directory holding base.yaml and profile files")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newQuoteCmd(opts),
		newMemeCmd(opts),
		newWallCmd(opts),
	)

	return cmd
}

// build loads config for opts and wires the services. Logs go to stderr.
func (o *rootOptions) build(cmd *cobra.Command) (*services, error) {
	cfg, err := config.LoadFrom(o.configDir, o.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "quotewallctl",
		Version: cfg.App.Version,
	}, cmd.ErrOrStderr())

	upstreams, err := acl.NewUpstreams(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &services{
		quotes: app.NewQuoteService(app.QuoteServiceConfig{QuoteClient: upstreams.Quotes, Logger: logger}),
		memes:  app.NewMemeService(app.MemeServiceConfig{MemeClient: upstreams.Memes, Logger: logger}),
	}, nil
}
