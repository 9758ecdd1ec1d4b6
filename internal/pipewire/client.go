package pipewire

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"pwsplit/internal/logging"
)

var commandContext = exec.CommandContext

// Client fetches graph snapshots through the pw-dump binary.
type Client struct {
	binary string
	logger *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBinary overrides the default pw-dump binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs a Client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{binary: "pw-dump", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.Or(client.logger)
	return client
}

// Snapshot runs pw-dump and parses the full graph.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	cmd := commandContext(ctx, c.binary) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrCommandFailed, c.binary, detail)
	}

	snap, err := ParseDump(output)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("graph snapshot",
		"nodes", len(snap.nodes),
		"ports", len(snap.ports),
		"links", len(snap.links))
	return snap, nil
}
