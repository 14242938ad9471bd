package service

import (
	"context"
	"log/slog"
	"time"

	"jellyterm/internal/domain"
	"jellyterm/internal/player"
	"jellyterm/internal/store"
)

// mediaServer is what playback needs from the catalog client (consumer-defined interface)
type mediaServer interface {
	player.ProgressReporter
	PlaybackInfo(ctx context.Context, itemID string) (int64, error)
	PlaybackPosition(ctx context.Context, itemID string) (int64, error)
	StreamURL(itemID string) string
	Credentials() domain.Credentials
}

// PlaybackService orchestrates one playback session end to end: resolve
// stream and resume position, spawn the player, monitor until the session
// ends, and record the outcome.
type PlaybackService struct {
	server   mediaServer
	launcher *player.Launcher
	history  *store.History
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(server mediaServer, launcher *player.Launcher, history *store.History, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		server:   server,
		launcher: launcher,
		history:  history,
		logger:   logger,
	}
}

// Play runs one full session for an item and returns the next item to
// auto-continue with, or nil. Failures before the player is up are errors;
// once the session is running, only soft outcomes remain.
func (s *PlaybackService) Play(ctx context.Context, item domain.MediaItem, catalog domain.Catalog) (*domain.MediaItem, error) {
	runtimeTicks, err := s.server.PlaybackInfo(ctx, item.ID)
	if err != nil {
		s.logger.Error("failed to look up playback info", "item", item.ID, "error", err)
		return nil, err
	}

	positionTicks, err := s.server.PlaybackPosition(ctx, item.ID)
	if err != nil {
		s.logger.Error("failed to look up stored position", "item", item.ID, "error", err)
		return nil, err
	}

	session, err := s.launcher.Launch(item, s.server.StreamURL(item.ID), positionTicks, runtimeTicks, s.server.Credentials())
	if err != nil {
		return nil, err
	}

	// The player creates the control socket after startup
	time.Sleep(player.SocketWarmup)

	monitor := player.NewMonitor(s.server, catalog, s.logger)
	next, lastPosition := monitor.Run(ctx, session)

	if err := s.history.Record(domain.HistoryEntry{
		ItemID:        item.ID,
		Name:          item.PlaybackTitle(),
		PositionTicks: lastPosition,
		PlayedAt:      time.Now(),
	}); err != nil {
		s.logger.Warn("failed to record playback history", "item", item.ID, "error", err)
	}

	return next, nil
}

// RecentHistory returns the most recently finished sessions, newest first
func (s *PlaybackService) RecentHistory(n int) []domain.HistoryEntry {
	entries, err := s.history.Recent(n)
	if err != nil {
		s.logger.Warn("failed to read playback history", "error", err)
		return nil
	}
	return entries
}
