package config

const (
	defaultStateDir              = "/tmp/pwsplit"
	defaultPWDump                = "pw-dump"
	defaultPWLink                = "pw-link"
	defaultPWLoopback            = "pw-loopback"
	defaultSpawnSettleMS         = 500
	defaultRespawnSettleMS       = 300
	defaultHealthIntervalSeconds = 5
	defaultLogLevel              = "info"
	defaultLogFormat             = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Tools: Tools{
			PWDump:     defaultPWDump,
			PWLink:     defaultPWLink,
			PWLoopback: defaultPWLoopback,
		},
		Timing: Timing{
			SpawnSettleMS:         defaultSpawnSettleMS,
			RespawnSettleMS:       defaultRespawnSettleMS,
			HealthIntervalSeconds: defaultHealthIntervalSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
