package main

import (
	"log/slog"

	"pwsplit/internal/config"
	"pwsplit/internal/logging"
	"pwsplit/internal/loopback"
	"pwsplit/internal/pipewire"
	"pwsplit/internal/routing"
	"pwsplit/internal/splitstate"
	"pwsplit/internal/splitter"
)

// commandContext carries lazily initialized shared state across cobra
// commands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	logger     *slog.Logger
	core       *core
}

// core bundles the wired components behind the CLI.
type core struct {
	client  *pipewire.Client
	planner *routing.Planner
	relays  *loopback.Manager
	store   *splitstate.Store
	manager *splitter.Manager
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.logger = logger
	return cfg, nil
}

func (c *commandContext) ensureCore() (*core, error) {
	if c.core != nil {
		return c.core, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	client := pipewire.NewClient(
		pipewire.WithBinary(cfg.Tools.PWDump),
		pipewire.WithLogger(c.logger),
	)
	planner := routing.NewPlanner(client,
		routing.WithBinary(cfg.Tools.PWLink),
		routing.WithLogger(c.logger),
	)
	relays := loopback.NewManager(
		loopback.WithBinary(cfg.Tools.PWLoopback),
		loopback.WithLogger(c.logger),
	)
	store := splitstate.NewStore(cfg.Paths.StateDir)
	manager, err := splitter.New(cfg, client, relays, planner, store, c.logger)
	if err != nil {
		return nil, err
	}

	c.core = &core{
		client:  client,
		planner: planner,
		relays:  relays,
		store:   store,
		manager: manager,
	}
	return c.core, nil
}
