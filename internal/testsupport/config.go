package testsupport

import (
	"path/filepath"
	"testing"

	"pwsplit/internal/config"
)

// NewConfig produces a config seeded with a unique temp state directory per
// test and zeroed settle delays so tests never sleep.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = ""
	cfg.Timing.SpawnSettleMS = 0
	cfg.Timing.RespawnSettleMS = 0
	cfg.Timing.HealthIntervalSeconds = 1
	return &cfg
}
