package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.PWDump == "" {
		return errors.New("tools.pw_dump must be set")
	}
	if c.Tools.PWLink == "" {
		return errors.New("tools.pw_link must be set")
	}
	if c.Tools.PWLoopback == "" {
		return errors.New("tools.pw_loopback must be set")
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Timing.SpawnSettleMS < 0 {
		return errors.New("timing.spawn_settle_ms must not be negative")
	}
	if c.Timing.RespawnSettleMS < 0 {
		return errors.New("timing.respawn_settle_ms must not be negative")
	}
	if c.Timing.HealthIntervalSeconds <= 0 {
		return errors.New("timing.health_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
