package splitter

import (
	"context"
	"fmt"
	"time"

	"pwsplit/internal/pipewire"
	"pwsplit/internal/splitstate"
)

// Setup creates a split for source: it spawns two loopbacks, severs the
// source's existing connections, rewires source -> loopbacks ->
// destinations, and persists the durable record.
//
// A hard failure after the loopbacks are spawned propagates immediately and
// leaves the graph and relays as-is. The absence of automatic rollback is a
// deliberate design decision; the persisted records plus pw-link suffice to
// finish restoring by hand.
func (m *Manager) Setup(ctx context.Context, source pipewire.Source, dest pipewire.RecordingDestination, originalConnections []pipewire.Connection) (*splitstate.Record, error) {
	primary, err := m.findPrimaryOutput(ctx, originalConnections)
	if err != nil {
		return nil, err
	}

	safeName := source.SafeName()
	splitName := m.store.UniqueName(safeName + "_Split")
	log := m.logger.With("split", splitName)

	recordingName := safeName + "_to_Recording"
	recordingDesc := fmt.Sprintf("%s -> %s", source.ApplicationName, dest.ApplicationName)
	recordingPID, err := m.relays.Spawn(recordingName, recordingDesc)
	if err != nil {
		return nil, err
	}

	localName := safeName + "_to_Local"
	localDesc := fmt.Sprintf("%s -> Local", source.ApplicationName)
	localPID, err := m.relays.Spawn(localName, localDesc)
	if err != nil {
		return nil, err
	}

	// Both halves of both loopbacks need time to publish their ports.
	settle(ctx, m.spawnSettle)

	snap, err := m.graph.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var severed []splitstate.SavedLink
	for _, conn := range originalConnections {
		for _, spec := range m.router.Sever(ctx, snap, source.NodeID, conn.TargetNodeID) {
			severed = append(severed, splitstate.SavedLink{
				OutputPort: spec.OutputPort,
				InputPort:  spec.InputPort,
			})
		}
	}
	log.Info("original connections severed", "links", len(severed))

	if err := m.router.WireSourceToCapture(ctx, source.NodeID, recordingName); err != nil {
		return nil, err
	}
	if err := m.router.WireSourceToCapture(ctx, source.NodeID, localName); err != nil {
		return nil, err
	}
	// The destination is addressed by node id: recording applications often
	// run several identically named stream nodes.
	if err := m.router.WirePlaybackToNode(ctx, recordingName, dest.NodeID); err != nil {
		return nil, err
	}
	if err := m.router.WirePlaybackToSink(ctx, localName, primary.TargetNodeName); err != nil {
		return nil, err
	}

	rec := &splitstate.Record{
		Name:                         splitName,
		SourceNodeID:                 source.NodeID,
		SourceNodeName:               source.NodeName,
		SourceApplicationName:        source.ApplicationName,
		RecordingLoopbackName:        recordingName,
		LocalLoopbackName:            localName,
		RecordingDestNodeID:          dest.NodeID,
		RecordingDestNodeName:        dest.NodeName,
		RecordingDestApplicationName: dest.ApplicationName,
		RecordingDestMediaName:       dest.MediaName,
		OriginalOutputNodeName:       primary.TargetNodeName,
		SeveredLinks:                 severed,
		RecordingLoopbackPID:         recordingPID,
		LocalLoopbackPID:             localPID,
		CreatedAt:                    time.Now().Unix(),
	}
	if err := m.store.Save(rec); err != nil {
		return nil, err
	}

	m.setState(splitName, StateActive)
	log.Info("split active",
		"source", source.ApplicationName,
		"recording_dest", dest.ApplicationName,
		"local_output", primary.TargetNodeName)
	return rec, nil
}

// findPrimaryOutput picks the connection whose target should receive the
// local loopback: a device sink when one exists, otherwise the first
// connection.
func (m *Manager) findPrimaryOutput(ctx context.Context, connections []pipewire.Connection) (pipewire.Connection, error) {
	if len(connections) == 0 {
		return pipewire.Connection{}, ErrNoActiveConnection
	}

	snap, err := m.graph.Snapshot(ctx)
	if err != nil {
		return pipewire.Connection{}, err
	}
	for _, conn := range connections {
		for _, sink := range snap.Sinks() {
			if sink.NodeID == conn.TargetNodeID {
				return conn, nil
			}
		}
	}
	return connections[0], nil
}
