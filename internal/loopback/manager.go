package loopback

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"pwsplit/internal/logging"
)

var command = exec.Command

// ErrSpawnFailed marks a pw-loopback launch failure.
var ErrSpawnFailed = errors.New("loopback spawn failed")

// Manager launches and controls pw-loopback relay processes.
type Manager struct {
	binary string
	logger *slog.Logger
}

// Option configures the manager.
type Option func(*Manager)

// WithBinary overrides the default pw-loopback binary name.
func WithBinary(binary string) Option {
	return func(m *Manager) {
		if binary != "" {
			m.binary = binary
		}
	}
}

// WithLogger attaches a logger to the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager constructs a Manager using defaults.
func NewManager(opts ...Option) *Manager {
	m := &Manager{binary: "pw-loopback", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.Or(m.logger)
	return m
}

// Spawn launches a detached relay named name. Both halves are created with
// node.autoconnect=false; the description carries an "input"/"output" role
// marker so the halves can be told apart in later snapshots. Returns the new
// process id.
//
// The relay's ports only become visible in a later snapshot after an
// initialization delay; callers wait the configured settle time before
// querying.
func (m *Manager) Spawn(name, description string) (int, error) {
	captureProps := fmt.Sprintf("node.name=%s node.description=\"%s input\" node.autoconnect=false", name, description)
	playbackProps := fmt.Sprintf("node.name=%s node.description=\"%s output\" node.autoconnect=false", name, description)

	cmd := command(m.binary,
		"--capture-props="+captureProps,
		"--playback-props="+playbackProps,
	) //nolint:gosec
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSpawnFailed, m.binary, err)
	}

	pid := cmd.Process.Pid
	// Detach: the relay must keep running after pwsplit exits.
	if err := cmd.Process.Release(); err != nil {
		m.logger.Warn("release loopback process handle", "pid", pid, "error", err)
	}
	m.logger.Info("loopback spawned", "name", name, "pid", pid)
	return pid, nil
}

// Terminate sends SIGTERM to pid. Failures are swallowed: at teardown time a
// dead target is not an error.
func (m *Manager) Terminate(pid int) {
	if pid <= 0 {
		return
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		m.logger.Debug("terminate loopback", "pid", pid, "error", err)
	}
}

// IsRunning is a cheap, non-blocking liveness probe for pid.
func (m *Manager) IsRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
