package loopback

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestSpawnBuildsNoAutoconnectProps(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := command
	command = func(name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		return exec.Command("true")
	}
	t.Cleanup(func() {
		command = original
	})

	m := NewManager(WithBinary("/usr/bin/pw-loopback"))
	pid, err := m.Spawn("Firefox_to_Recording", "Firefox -> OBS")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("expected positive pid, got %d", pid)
	}
	if capturedName != "/usr/bin/pw-loopback" {
		t.Fatalf("binary override not applied: %q", capturedName)
	}
	if len(capturedArgs) != 2 {
		t.Fatalf("expected 2 args, got %v", capturedArgs)
	}

	capture, playback := capturedArgs[0], capturedArgs[1]
	if !strings.HasPrefix(capture, "--capture-props=") || !strings.HasPrefix(playback, "--playback-props=") {
		t.Fatalf("unexpected args: %v", capturedArgs)
	}
	for _, arg := range capturedArgs {
		if !strings.Contains(arg, "node.autoconnect=false") {
			t.Fatalf("autoconnect must be disabled on both halves: %q", arg)
		}
		if !strings.Contains(arg, "node.name=Firefox_to_Recording") {
			t.Fatalf("node name missing: %q", arg)
		}
	}
	if !strings.Contains(capture, `"Firefox -> OBS input"`) {
		t.Fatalf("capture half must carry the input role marker: %q", capture)
	}
	if !strings.Contains(playback, `"Firefox -> OBS output"`) {
		t.Fatalf("playback half must carry the output role marker: %q", playback)
	}
}

func TestSpawnWrapsStartFailure(t *testing.T) {
	m := NewManager(WithBinary("/nonexistent/pw-loopback"))
	if _, err := m.Spawn("x", "y"); err == nil {
		t.Fatal("expected spawn failure for missing binary")
	}
}

func TestIsRunning(t *testing.T) {
	m := NewManager()
	if !m.IsRunning(os.Getpid()) {
		t.Fatal("current process must be reported running")
	}
	if m.IsRunning(0) {
		t.Fatal("pid 0 must be reported not running")
	}
	if m.IsRunning(-4) {
		t.Fatal("negative pid must be reported not running")
	}
	// Beyond any realistic pid_max.
	if m.IsRunning(1 << 26) {
		t.Fatal("absurd pid must be reported not running")
	}
}

func TestTerminateSwallowsFailures(t *testing.T) {
	m := NewManager()
	m.Terminate(0)
	m.Terminate(-1)
	m.Terminate(1 << 26)
}
