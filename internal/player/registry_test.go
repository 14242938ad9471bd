package player

import (
	"os/exec"
	"testing"

	"jellyterm/internal/log"
)

func TestRegistryCleanupEmpty(t *testing.T) {
	registry := NewRegistry(log.NullLogger())

	// Cleanup with nothing tracked, and again, must be harmless
	registry.Cleanup()
	registry.Cleanup()

	if registry.Len() != 0 {
		t.Errorf("Len() = %d after empty cleanup, want 0", registry.Len())
	}
}

func TestRegistryCleanupTerminatesProcesses(t *testing.T) {
	registry := NewRegistry(log.NullLogger())

	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start test process: %v", err)
	}
	registry.Add(cmd)

	if registry.Len() != 1 {
		t.Fatalf("Len() = %d after Add, want 1", registry.Len())
	}

	registry.Cleanup()

	if registry.Len() != 0 {
		t.Errorf("Len() = %d after cleanup, want 0", registry.Len())
	}
	if cmd.ProcessState == nil {
		t.Fatal("process was not waited on")
	}
	if cmd.ProcessState.Exited() && cmd.ProcessState.ExitCode() == 0 {
		t.Error("process exited normally, expected it to be killed")
	}

	// A second cleanup must not touch the already-reaped process
	registry.Cleanup()
}
