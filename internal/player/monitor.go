package player

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"time"

	"jellyterm/internal/domain"
)

const (
	defaultConnectTimeout = 10 * time.Second
	connectRetryDelay     = 50 * time.Millisecond

	// A position event is pushed only when it moved at least this far in
	// media time and at least pushInterval has passed since the last push
	minPositionDelta    = 5 * domain.TicksPerSecond
	defaultPushInterval = 10 * time.Second
)

// subscribe registers the three property observers the monitor needs:
// playback position (tag 1), pause state (tag 2), end-of-file flag (tag 3).
const subscribeCommands = `{"command":["observe_property",1,"playback-time"]}` + "\n" +
	`{"command":["observe_property",2,"pause"]}` + "\n" +
	`{"command":["observe_property",3,"eof-reached"]}` + "\n"

// ProgressReporter pushes playback telemetry to the server
type ProgressReporter interface {
	ReportProgress(ctx context.Context, itemID string, positionTicks int64) error
	ReportPaused(ctx context.Context, itemID string, positionTicks int64, paused bool) error
	ReportStopped(ctx context.Context, itemID string, positionTicks int64) error
}

// playerEvent is one inbound control-protocol frame. Frames that do not
// match either expected shape are ignored.
type playerEvent struct {
	Event  string          `json:"event"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
	Reason string          `json:"reason"`
}

// Monitor observes one playback session over the player's control socket
// and reconciles position and pause state with the server.
type Monitor struct {
	reporter ProgressReporter
	catalog  domain.Catalog
	logger   *slog.Logger

	connectTimeout time.Duration
	pushInterval   time.Duration
	now            func() time.Time
}

// NewMonitor creates a monitor over the given catalog. The catalog is used
// to resolve the next episode after end-of-media.
func NewMonitor(reporter ProgressReporter, catalog domain.Catalog, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		reporter:       reporter,
		catalog:        catalog,
		logger:         logger,
		connectTimeout: defaultConnectTimeout,
		pushInterval:   defaultPushInterval,
		now:            time.Now,
	}
}

// Run drives the session until the player stops, the stream ends, or the
// control socket never comes up. It returns the next episode to play (nil
// when the session ended without one) and the last known position in ticks.
// Telemetry failures never end the session, and no session outcome is an
// error: a player that failed to start is a soft "no next item".
//
// The socket file is removed and a stopped notification is attempted on
// every exit path.
func (m *Monitor) Run(ctx context.Context, session *Session) (next *domain.MediaItem, lastPosition int64) {
	defer os.Remove(session.SocketPath)
	defer func() {
		if err := m.reporter.ReportStopped(ctx, session.Item.ID, lastPosition); err != nil {
			m.logger.Warn("failed to report playback stopped", "item", session.Item.ID, "error", err)
		}
	}()

	conn := m.connect(session.SocketPath)
	if conn == nil {
		m.logger.Warn("control socket never became connectable", "socket", session.SocketPath)
		return nil, 0
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(subscribeCommands)); err != nil {
		m.logger.Error("failed to subscribe to player properties", "error", err)
		return nil, 0
	}

	next = m.observe(ctx, conn, session.Item, &lastPosition)
	return next, lastPosition
}

// connect retries the control socket on a fixed schedule until the timeout
// elapses. Returns nil on timeout.
func (m *Monitor) connect(socketPath string) net.Conn {
	deadline := m.now().Add(m.connectTimeout)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			return conn
		}
		if m.now().After(deadline) {
			return nil
		}
		time.Sleep(connectRetryDelay)
	}
}

// observe reads newline-delimited JSON frames until the socket closes.
// Malformed frames are skipped. A zero-length read without a prior
// end-of-file notification is a user-initiated stop.
func (m *Monitor) observe(ctx context.Context, conn net.Conn, item domain.MediaItem, lastPosition *int64) *domain.MediaItem {
	lastPush := m.now()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var ev playerEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}

		switch ev.Event {
		case "property-change":
			switch ev.Name {
			case "pause":
				var paused bool
				if err := json.Unmarshal(ev.Data, &paused); err != nil {
					continue
				}
				// Every pause toggle is reported immediately, no throttling
				if err := m.reporter.ReportPaused(ctx, item.ID, *lastPosition, paused); err != nil {
					m.logger.Warn("failed to report pause state", "item", item.ID, "error", err)
				}

			case "playback-time":
				var position float64
				if err := json.Unmarshal(ev.Data, &position); err != nil {
					continue
				}
				ticks := int64(position * float64(domain.TicksPerSecond))

				delta := ticks - *lastPosition
				if delta < 0 {
					delta = -delta
				}
				if delta < minPositionDelta || m.now().Sub(lastPush) < m.pushInterval {
					continue
				}

				if err := m.reporter.ReportProgress(ctx, item.ID, ticks); err != nil {
					m.logger.Warn("failed to report progress", "item", item.ID, "error", err)
				}
				*lastPosition = ticks
				lastPush = m.now()
			}

		case "end-file":
			if ev.Reason == "eof" {
				m.logger.Info("playback reached end of stream", "item", item.ID)
				return m.catalog.NextAfter(item)
			}
		}
	}

	// Socket closed without end-of-file: normal stop
	return nil
}
