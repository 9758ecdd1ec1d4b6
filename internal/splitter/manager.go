package splitter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pwsplit/internal/config"
	"pwsplit/internal/logging"
	"pwsplit/internal/pipewire"
	"pwsplit/internal/routing"
	"pwsplit/internal/splitstate"
)

// ErrNoActiveConnection reports a setup attempt against a source with no
// existing output connection to take over.
var ErrNoActiveConnection = errors.New("no active connection found for source")

// State is the lifecycle state of one split as tracked in memory. The
// durable record remains the source of truth across process restarts.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateActive        State = "active"
	StateDegraded      State = "degraded"
	StateTornDown      State = "torn-down"
)

// Grapher supplies fresh graph snapshots.
type Grapher interface {
	Snapshot(ctx context.Context) (*pipewire.Snapshot, error)
}

// Relays spawns and controls loopback relay processes.
type Relays interface {
	Spawn(name, description string) (int, error)
	Terminate(pid int)
	IsRunning(pid int) bool
}

// Router mutates port-to-port connections.
type Router interface {
	Link(ctx context.Context, outputPort, inputPort string) error
	WireSourceToCapture(ctx context.Context, sourceNodeID uint32, loopbackName string) error
	WirePlaybackToNode(ctx context.Context, loopbackName string, destNodeID uint32) error
	WirePlaybackToSink(ctx context.Context, loopbackName, sinkName string) error
	Sever(ctx context.Context, snap *pipewire.Snapshot, sourceNodeID, targetNodeID uint32) []routing.LinkSpec
}

// Manager drives split setup, teardown, and recovery. All graph mutation
// flows through a single Manager on a single logical thread of control.
type Manager struct {
	graph  Grapher
	relays Relays
	router Router
	store  *splitstate.Store
	logger *slog.Logger

	spawnSettle   time.Duration
	respawnSettle time.Duration

	mu     sync.Mutex
	states map[string]State
}

// New constructs a manager with initialized dependencies.
func New(cfg *config.Config, graph Grapher, relays Relays, router Router, store *splitstate.Store, logger *slog.Logger) (*Manager, error) {
	if cfg == nil || graph == nil || relays == nil || router == nil || store == nil {
		return nil, errors.New("splitter requires config, graph, relays, router, and store")
	}
	return &Manager{
		graph:         graph,
		relays:        relays,
		router:        router,
		store:         store,
		logger:        logging.Or(logger),
		spawnSettle:   cfg.SpawnSettle(),
		respawnSettle: cfg.RespawnSettle(),
		states:        make(map[string]State),
	}, nil
}

// Store exposes the backing state store.
func (m *Manager) Store() *splitstate.Store {
	return m.store
}

// StateOf reports the in-memory lifecycle state of the named split.
func (m *Manager) StateOf(name string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[name]; ok {
		return state
	}
	return StateUninitialized
}

func (m *Manager) setState(name string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[name] = state
}

// settle waits for a freshly spawned loopback's ports to become visible.
// The fixed delay is a workaround for the absence of a graph-change feed,
// not a server guarantee.
func settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
