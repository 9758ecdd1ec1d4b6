// Package pipewire models the PipeWire routing graph as reported by pw-dump.
//
// A Snapshot is an immutable parse of one full graph dump. All derivations
// (sources, sinks, recording destinations, per-source connections) are pure
// reads over that one snapshot. The server mutates the graph asynchronously,
// so snapshots are never cached across mutation steps; callers fetch a fresh
// one immediately before acting.
//
// Prefer this package over ad-hoc pw-dump invocations so graph data is parsed
// and classified in one place.
package pipewire
