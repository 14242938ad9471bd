package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"jellyterm/internal/domain"
)

// SocketWarmup is how long callers must wait after spawn before connecting
// to the control socket; the player creates it asynchronously.
const SocketWarmup = 2 * time.Second

// Session is one attempt to play a single item, bounded by process spawn
// and socket teardown.
type Session struct {
	Item       domain.MediaItem
	SocketPath string
}

// SocketPath returns the control socket path for an item. Unique per
// concurrently-playing item.
func SocketPath(itemID string) string {
	return filepath.Join(os.TempDir(), "mpv-socket-"+itemID)
}

// Launcher spawns the external player for catalog items
type Launcher struct {
	command   string
	extraArgs []string
	registry  *Registry
	logger    *slog.Logger
}

// NewLauncher creates a launcher. An empty command defaults to mpv.
func NewLauncher(command string, args []string, registry *Registry, logger *slog.Logger) *Launcher {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:   command,
		extraArgs: args,
		registry:  registry,
		logger:    logger,
	}
}

// Launch starts the player for an item as a detached subprocess with its
// output discarded, and registers the handle for shutdown cleanup.
func (l *Launcher) Launch(item domain.MediaItem, streamURL string, positionTicks, runtimeTicks int64, creds domain.Credentials) (*Session, error) {
	socketPath := SocketPath(item.ID)
	args := buildArgs(item, streamURL, socketPath, positionTicks, runtimeTicks, creds)
	args = append(args, l.extraArgs...)

	cmd := exec.Command(l.command, args...)
	// stdout/stderr stay nil so the player's output is discarded

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start player: %w", err)
	}
	l.registry.Add(cmd)

	l.logger.Info("launched player", "command", l.command, "item", item.Name, "socket", socketPath)

	return &Session{Item: item, SocketPath: socketPath}, nil
}

// buildArgs computes the player invocation for one session
func buildArgs(item domain.MediaItem, streamURL, socketPath string, positionTicks, runtimeTicks int64, creds domain.Credentials) []string {
	args := []string{
		streamURL,
		"--no-cache-pause",
		"--demuxer-lavf-probe-info=yes",
		"--demuxer-lavf-analyzeduration=10",
		fmt.Sprintf("--length=%d", runtimeTicks/domain.TicksPerSecond),
		fmt.Sprintf("--force-media-title=%s", item.PlaybackTitle()),
		fmt.Sprintf("--http-header-fields=X-MediaBrowser-Token: %s", creds.Token),
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
	}

	if !creds.Preferences.PlayDefaultAudioTrack && creds.Preferences.AudioLanguage != "" {
		args = append(args, fmt.Sprintf("--alang=%s", creds.Preferences.AudioLanguage))
	}

	if creds.Preferences.SubtitleLanguage == "none" {
		args = append(args, "--no-sub")
	} else {
		args = append(args, fmt.Sprintf("--slang=%s", creds.Preferences.SubtitleLanguage))
		args = append(args, "--sub-auto=fuzzy")
	}

	if positionTicks > 0 {
		args = append(args, fmt.Sprintf("--start=%d", positionTicks/domain.TicksPerSecond))
	}

	return args
}
