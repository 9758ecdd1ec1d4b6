package main

import (
	"strings"
	"testing"

	"pwsplit/internal/pipewire"
	"pwsplit/internal/testsupport"
)

func selectionSnapshot(t *testing.T) *pipewire.Snapshot {
	t.Helper()
	return testsupport.NewGraph().
		AddNode(testsupport.NodeSpec{ID: 30, Name: "firefox", Application: "Firefox", MediaName: "Playback", MediaClass: pipewire.MediaClassSource}).
		AddNode(testsupport.NodeSpec{ID: 33, Name: "spotify", Application: "Spotify", MediaName: "Playback", MediaClass: pipewire.MediaClassSource}).
		AddNode(testsupport.NodeSpec{ID: 50, Name: "obs-rec", Application: "OBS Studio", MediaName: "record-1", MediaClass: pipewire.MediaClassRecordingDest}).
		Snapshot(t)
}

func TestResolveSourceByApplicationName(t *testing.T) {
	snap := selectionSnapshot(t)

	source, err := resolveSource(snap, "firefox")
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if source.NodeID != 30 {
		t.Fatalf("resolved node %d, want 30", source.NodeID)
	}
}

func TestResolveSourceByNodeID(t *testing.T) {
	snap := selectionSnapshot(t)

	source, err := resolveSource(snap, "33")
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if source.ApplicationName != "Spotify" {
		t.Fatalf("resolved %q, want Spotify", source.ApplicationName)
	}
}

func TestResolveSourceUnknown(t *testing.T) {
	snap := selectionSnapshot(t)

	if _, err := resolveSource(snap, "vlc"); err == nil {
		t.Fatal("expected error for unknown source")
	}
	if _, err := resolveSource(snap, "999"); err == nil {
		t.Fatal("expected error for unknown node id")
	}
}

func TestResolveDestinationByNodeName(t *testing.T) {
	snap := selectionSnapshot(t)

	dest, err := resolveDestination(snap, "obs-rec")
	if err != nil {
		t.Fatalf("resolveDestination: %v", err)
	}
	if dest.NodeID != 50 {
		t.Fatalf("resolved node %d, want 50", dest.NodeID)
	}
}

func TestRenderTableTabSeparatedWhenNotTerminal(t *testing.T) {
	out := renderTable(
		[]string{"ID", "SOURCE"},
		[][]string{{"30", "Firefox"}, {"33", "Spotify"}},
	)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "ID\tSOURCE" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[2] != "33\tSpotify" {
		t.Fatalf("last row = %q", lines[2])
	}
}
