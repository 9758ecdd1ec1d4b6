package splitstate_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pwsplit/internal/splitstate"
)

func sampleRecord(name string) *splitstate.Record {
	return &splitstate.Record{
		Name:                         name,
		SourceNodeID:                 30,
		SourceNodeName:               "firefox",
		SourceApplicationName:        "Firefox",
		RecordingLoopbackName:        "Firefox_to_Recording",
		LocalLoopbackName:            "Firefox_to_Local",
		RecordingDestNodeID:          50,
		RecordingDestNodeName:        "OBS",
		RecordingDestApplicationName: "OBS",
		RecordingDestMediaName:       "Recording",
		OriginalOutputNodeName:       "alsa_output.speakers",
		SeveredLinks: []splitstate.SavedLink{
			{OutputPort: "firefox:output_FL", InputPort: "alsa_output.speakers:playback_FL"},
			{OutputPort: "firefox:output_FR", InputPort: "alsa_output.speakers:playback_FR"},
		},
		RecordingLoopbackPID: 4242,
		LocalLoopbackPID:     4243,
		CreatedAt:            time.Now().Unix(),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := splitstate.NewStore(filepath.Join(t.TempDir(), "state"))
	rec := sampleRecord("Firefox_Split")

	if err := store.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load("Firefox_Split")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(rec, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", rec, loaded)
	}
}

func TestLoadMissingRecordFails(t *testing.T) {
	store := splitstate.NewStore(t.TempDir())
	_, err := store.Load("absent")
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if !errors.Is(err, splitstate.ErrStateFile) {
		t.Fatalf("expected ErrStateFile, got %v", err)
	}
}

func TestDeleteRemovesFileAndToleratesAbsence(t *testing.T) {
	store := splitstate.NewStore(t.TempDir())
	rec := sampleRecord("Firefox_Split")
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(rec); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Exists("Firefox_Split") {
		t.Fatal("record still exists after delete")
	}
	if err := store.Delete(rec); err != nil {
		t.Fatalf("second Delete must be a no-op: %v", err)
	}
}

func TestListAllSkipsUndecodableEntries(t *testing.T) {
	dir := t.TempDir()
	store := splitstate.NewStore(dir)

	if err := store.Save(sampleRecord("good")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "foreign.txt"), []byte("irrelevant"), 0o644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}

	records, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 1 || records[0].Name != "good" {
		t.Fatalf("expected only the decodable record, got %+v", records)
	}
}

func TestListAllMissingDirIsEmpty(t *testing.T) {
	store := splitstate.NewStore(filepath.Join(t.TempDir(), "never-created"))
	records, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll on missing dir: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty list, got %d records", len(records))
	}
}

func TestUniqueNameSkipsTakenSuffixes(t *testing.T) {
	store := splitstate.NewStore(t.TempDir())
	if got := store.UniqueName("X"); got != "X" {
		t.Fatalf("fresh base should be returned as-is, got %q", got)
	}
	if err := store.Save(sampleRecord("X")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(sampleRecord("X_1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.UniqueName("X"); got != "X_2" {
		t.Fatalf("UniqueName = %q, want X_2", got)
	}
}
