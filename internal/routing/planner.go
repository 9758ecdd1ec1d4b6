package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"pwsplit/internal/logging"
	"pwsplit/internal/pipewire"
)

var commandContext = exec.CommandContext

var (
	// ErrLinkCreate marks a genuine pw-link creation failure.
	ErrLinkCreate = errors.New("link creation failed")
	// ErrLinkDestroy marks a genuine pw-link destruction failure.
	ErrLinkDestroy = errors.New("link destruction failed")
)

// LinkSpec is one port-to-port pair in pw-link address form.
type LinkSpec struct {
	OutputPort string
	InputPort  string
}

// Grapher supplies fresh graph snapshots.
type Grapher interface {
	Snapshot(ctx context.Context) (*pipewire.Snapshot, error)
}

// Planner performs link mutations against the live graph.
type Planner struct {
	graph  Grapher
	binary string
	logger *slog.Logger
}

// Option configures the planner.
type Option func(*Planner)

// WithBinary overrides the default pw-link binary name.
func WithBinary(binary string) Option {
	return func(p *Planner) {
		if binary != "" {
			p.binary = binary
		}
	}
}

// WithLogger attaches a logger to the planner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// NewPlanner constructs a planner reading snapshots from graph.
func NewPlanner(graph Grapher, opts ...Option) *Planner {
	p := &Planner{graph: graph, binary: "pw-link", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.Or(p.logger)
	return p
}

// PortAddress renders a port in pw-link form: "<nodeName>:<portName>".
func PortAddress(nodeName, portName string) string {
	return nodeName + ":" + portName
}

// Link connects outputPort to inputPort. Already-connected pairs succeed
// with no effect.
func (p *Planner) Link(ctx context.Context, outputPort, inputPort string) error {
	stderr, err := p.runLink(ctx, outputPort, inputPort)
	if err != nil {
		if linkExists(stderr) {
			return nil
		}
		return fmt.Errorf("%w: %s -> %s: %s", ErrLinkCreate, outputPort, inputPort, failureDetail(stderr, err))
	}
	p.logger.Debug("link created", "output", outputPort, "input", inputPort)
	return nil
}

// LinkByID connects outputPort to a numeric input port id. The id form
// disambiguates destinations when multiple nodes share one name.
func (p *Planner) LinkByID(ctx context.Context, outputPort string, inputPortID uint32) error {
	input := strconv.FormatUint(uint64(inputPortID), 10)
	stderr, err := p.runLink(ctx, outputPort, input)
	if err != nil {
		if linkExists(stderr) {
			return nil
		}
		return fmt.Errorf("%w: %s -> port %d: %s", ErrLinkCreate, outputPort, inputPortID, failureDetail(stderr, err))
	}
	p.logger.Debug("link created", "output", outputPort, "input_port_id", inputPortID)
	return nil
}

// Unlink disconnects outputPort from inputPort. A nonexistent link succeeds
// with no effect.
func (p *Planner) Unlink(ctx context.Context, outputPort, inputPort string) error {
	stderr, err := p.runLink(ctx, "-d", outputPort, inputPort)
	if err != nil {
		// Silent failures are treated as already-gone links.
		if stderr == "" || linkMissing(stderr) {
			return nil
		}
		return fmt.Errorf("%w: %s -x- %s: %s", ErrLinkDestroy, outputPort, inputPort, failureDetail(stderr, err))
	}
	p.logger.Debug("link destroyed", "output", outputPort, "input", inputPort)
	return nil
}

func (p *Planner) runLink(ctx context.Context, args ...string) (string, error) {
	cmd := commandContext(ctx, p.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// pw-link reports a pre-existing link as "File exists"; older releases say
// "already connected".
func linkExists(stderr string) bool {
	return strings.Contains(stderr, "File exists") || strings.Contains(stderr, "already connected")
}

// A missing link surfaces as "No such file" or "not connected".
func linkMissing(stderr string) bool {
	return strings.Contains(stderr, "No such file") || strings.Contains(stderr, "not connected")
}

func failureDetail(stderr string, err error) string {
	if stderr != "" {
		return stderr
	}
	return err.Error()
}
