package splitter_test

import (
	"context"
	"errors"
	"testing"

	"pwsplit/internal/splitstate"
	"pwsplit/internal/splitter"
)

func healthRecord() *splitstate.Record {
	return &splitstate.Record{
		Name:                         "Firefox_Split",
		SourceNodeID:                 30,
		SourceApplicationName:        "Firefox",
		RecordingLoopbackName:        "Firefox_to_Recording",
		LocalLoopbackName:            "Firefox_to_Local",
		RecordingDestNodeID:          50,
		RecordingDestApplicationName: "OBS",
		RecordingLoopbackPID:         2001,
		LocalLoopbackPID:             2002,
	}
}

func TestHealthCheckRespawnsAndRewiresRecordingLoopback(t *testing.T) {
	h := newHarness(t)
	rec := healthRecord()
	if err := h.store.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	h.relays.running[2002] = true // local alive, recording dead

	repaired, err := h.manager.HealthCheck(context.Background(), rec)
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if !repaired {
		t.Fatal("expected a repair to be reported")
	}
	if len(h.relays.spawns) != 1 || h.relays.spawns[0].name != "Firefox_to_Recording" {
		t.Fatalf("unexpected spawns %+v", h.relays.spawns)
	}
	if h.relays.spawns[0].description != "Firefox -> OBS" {
		t.Fatalf("unexpected respawn description %q", h.relays.spawns[0].description)
	}

	wantWires := []wireCall{
		{kind: "capture", nodeID: 30, loopback: "Firefox_to_Recording"},
		{kind: "playback-node", nodeID: 50, loopback: "Firefox_to_Recording"},
	}
	if len(h.router.wires) != len(wantWires) {
		t.Fatalf("wire calls = %+v", h.router.wires)
	}
	for i, want := range wantWires {
		if h.router.wires[i] != want {
			t.Fatalf("wire call %d = %+v, want %+v", i, h.router.wires[i], want)
		}
	}

	loaded, err := h.store.Load(rec.Name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RecordingLoopbackPID == 2001 {
		t.Fatal("replacement pid must be persisted")
	}
	if loaded.RecordingLoopbackPID != rec.RecordingLoopbackPID {
		t.Fatalf("in-memory and persisted pids differ: %d vs %d", rec.RecordingLoopbackPID, loaded.RecordingLoopbackPID)
	}

	// A second check finds the new pid live and performs no further action.
	repaired, err = h.manager.HealthCheck(context.Background(), rec)
	if err != nil {
		t.Fatalf("second HealthCheck: %v", err)
	}
	if repaired {
		t.Fatal("second check must be a no-op")
	}
	if len(h.relays.spawns) != 1 {
		t.Fatalf("no further spawn expected, got %+v", h.relays.spawns)
	}
	if h.manager.StateOf(rec.Name) != splitter.StateActive {
		t.Fatalf("expected active state, got %s", h.manager.StateOf(rec.Name))
	}
}

// The local loopback is respawned but never rewired after a crash. That
// asymmetry matches the observed recovery behavior and is pinned here so a
// change to it is a conscious decision.
func TestHealthCheckDoesNotRewireLocalLoopback(t *testing.T) {
	h := newHarness(t)
	rec := healthRecord()
	if err := h.store.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	h.relays.running[2001] = true // recording alive, local dead

	repaired, err := h.manager.HealthCheck(context.Background(), rec)
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if !repaired {
		t.Fatal("expected a repair to be reported")
	}
	if len(h.relays.spawns) != 1 || h.relays.spawns[0].name != "Firefox_to_Local" {
		t.Fatalf("unexpected spawns %+v", h.relays.spawns)
	}
	if len(h.router.wires) != 0 {
		t.Fatalf("local loopback must not be rewired, got %+v", h.router.wires)
	}

	loaded, err := h.store.Load(rec.Name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.LocalLoopbackPID == 2002 {
		t.Fatal("replacement pid must be persisted")
	}
}

func TestHealthCheckNoopWhenBothAlive(t *testing.T) {
	h := newHarness(t)
	rec := healthRecord()
	h.relays.running[2001] = true
	h.relays.running[2002] = true

	repaired, err := h.manager.HealthCheck(context.Background(), rec)
	if err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if repaired {
		t.Fatal("nothing should be repaired")
	}
	if len(h.relays.spawns) != 0 || len(h.router.wires) != 0 {
		t.Fatal("no side effects expected when both relays are alive")
	}
}

func TestHealthCheckReportsSpawnFailure(t *testing.T) {
	h := newHarness(t)
	rec := healthRecord()
	h.relays.spawnErr = errors.New("fork failed")

	_, err := h.manager.HealthCheck(context.Background(), rec)
	if err == nil {
		t.Fatal("expected spawn failure to propagate")
	}
	if h.manager.StateOf(rec.Name) != splitter.StateDegraded {
		t.Fatalf("expected degraded state, got %s", h.manager.StateOf(rec.Name))
	}
}

func TestStateOfUnknownSplit(t *testing.T) {
	h := newHarness(t)
	if got := h.manager.StateOf("never-seen"); got != splitter.StateUninitialized {
		t.Fatalf("expected uninitialized, got %s", got)
	}
}
