package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"jellyterm/internal/domain"
)

var bucketHistory = []byte("history")

// History persists finished playback sessions per server using BoltDB.
// Entries are keyed by timestamp so recency scans walk the bucket backward.
type History struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewHistory opens (or creates) the history database for a server. An empty
// base directory yields a no-op store.
func NewHistory(baseDataDir, serverURL string, logger *slog.Logger) (*History, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if baseDataDir == "" {
		return &History{logger: logger}, nil
	}

	dir := baseDataDir
	if serverURL != "" {
		dir = filepath.Join(baseDataDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db, logger: logger}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close releases the underlying database
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record appends one finished session
func (h *History) Record(entry domain.HistoryEntry) error {
	if h.db == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	key := []byte(entry.PlayedAt.UTC().Format(time.RFC3339Nano))
	return h.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHistory).Put(key, data)
	})
}

// Recent returns up to n entries, newest first
func (h *History) Recent(n int) ([]domain.HistoryEntry, error) {
	if h.db == nil || n <= 0 {
		return nil, nil
	}

	var entries []domain.HistoryEntry
	err := h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketHistory).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry domain.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
