package main

import (
	"github.com/tokdeck/tokdeck/internal/api"
	"github.com/tokdeck/tokdeck/internal/catalog"
	"github.com/tokdeck/tokdeck/internal/config"
	"github.com/tokdeck/tokdeck/internal/logging"
	"github.com/tokdeck/tokdeck/internal/session"
)

// appEnv bundles the wired-up pieces every subcommand needs.
type appEnv struct {
	cfg    *config.Config
	logger *logging.Logger
	client *api.Client
	store  *catalog.Store
	token  string
}

// buildEnv loads configuration, applies flag overrides, loads the saved
// session, and wires the service client and the catalog store.
func buildEnv(flags *rootFlags) (*appEnv, error) {
	path := flags.config
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if flags.server != "" {
		cfg.Server = flags.server
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.verbose {
		cfg.LogLevel = "verbose"
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFile)
	if err != nil {
		return nil, err
	}

	token, err := session.Load(cfg.SessionFile)
	if err != nil {
		logger.Close()
		return nil, err
	}

	client := api.NewClient(cfg.Server, token, logger)
	client.Limit = cfg.ListLimit

	return &appEnv{
		cfg:    cfg,
		logger: logger,
		client: client,
		store:  catalog.NewStore(client),
		token:  token,
	}, nil
}

func (e *appEnv) Close() {
	if e.logger != nil {
		e.logger.Close()
	}
}

// hasSession reports whether a bearer token was on disk at startup.
func (e *appEnv) hasSession() bool { return e.token != "" }
