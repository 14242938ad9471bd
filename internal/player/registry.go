package player

import (
	"log/slog"
	"os/exec"
	"sync"
)

// Registry tracks every spawned player process so shutdown can terminate
// them all. It is the only state shared between the launch path and the
// teardown path, and the lock is held for the whole of each operation.
type Registry struct {
	mu     sync.Mutex
	procs  []*exec.Cmd
	logger *slog.Logger
}

// NewRegistry creates an empty process registry
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Add registers a spawned player process
func (r *Registry) Add(cmd *exec.Cmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs = append(r.procs, cmd)
}

// Len returns the number of tracked processes
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.procs)
}

// Cleanup terminates every tracked process and waits for it to exit. A
// failure on one process is logged and does not prevent attempting the
// rest. The registry is empty afterward; calling Cleanup with no entries,
// or twice in a row, is a no-op.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range r.procs {
		if cmd.Process == nil {
			continue
		}
		if err := cmd.Process.Kill(); err != nil {
			r.logger.Warn("failed to terminate player process", "pid", cmd.Process.Pid, "error", err)
			continue
		}
		// Wait returns the kill signal as an exit error; that is expected
		if err := cmd.Wait(); err != nil {
			r.logger.Debug("player process exited", "pid", cmd.Process.Pid, "error", err)
		}
	}

	r.procs = nil
}
