package splitter

import (
	"context"
	"fmt"

	"pwsplit/internal/splitstate"
)

// HealthCheck probes both loopback pids of rec and respawns any that died,
// persisting the replacement pid. The recording loopback is fully rewired
// after a respawn because a fresh loopback's ports start unconnected. The
// local loopback is respawned but deliberately not rewired; see the package
// tests pinning that asymmetry.
//
// It returns true when anything was repaired. A repair failure leaves the
// split degraded and is returned to the caller.
func (m *Manager) HealthCheck(ctx context.Context, rec *splitstate.Record) (bool, error) {
	log := m.logger.With("split", rec.Name)
	repaired := false

	if !m.relays.IsRunning(rec.RecordingLoopbackPID) {
		log.Warn("recording loopback not running", "pid", rec.RecordingLoopbackPID)
		m.setState(rec.Name, StateDegraded)

		desc := fmt.Sprintf("%s -> %s", rec.SourceApplicationName, rec.RecordingDestApplicationName)
		pid, err := m.relays.Spawn(rec.RecordingLoopbackName, desc)
		if err != nil {
			return false, err
		}
		rec.RecordingLoopbackPID = pid
		settle(ctx, m.respawnSettle)

		if err := m.router.WireSourceToCapture(ctx, rec.SourceNodeID, rec.RecordingLoopbackName); err != nil {
			return false, err
		}
		if err := m.router.WirePlaybackToNode(ctx, rec.RecordingLoopbackName, rec.RecordingDestNodeID); err != nil {
			return false, err
		}
		if err := m.store.Save(rec); err != nil {
			return false, err
		}
		log.Info("recording loopback respawned", "pid", pid)
		repaired = true
	}

	if !m.relays.IsRunning(rec.LocalLoopbackPID) {
		log.Warn("local loopback not running", "pid", rec.LocalLoopbackPID)
		m.setState(rec.Name, StateDegraded)

		desc := fmt.Sprintf("%s -> Local", rec.SourceApplicationName)
		pid, err := m.relays.Spawn(rec.LocalLoopbackName, desc)
		if err != nil {
			return false, err
		}
		rec.LocalLoopbackPID = pid
		settle(ctx, m.respawnSettle)

		if err := m.store.Save(rec); err != nil {
			return false, err
		}
		log.Info("local loopback respawned", "pid", pid)
		repaired = true
	}

	m.setState(rec.Name, StateActive)
	return repaired, nil
}
