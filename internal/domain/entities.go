package domain

import (
	"fmt"
	"time"
)

// TicksPerSecond is the server's time unit: one tick is 100 nanoseconds.
const TicksPerSecond int64 = 10_000_000

// MediaType distinguishes catalog entry kinds
type MediaType string

const (
	MediaTypeMovie   MediaType = "Movie"
	MediaTypeSeries  MediaType = "Series"
	MediaTypeEpisode MediaType = "Episode"
)

// MediaItem represents a single catalog entry (movie, series, or episode).
// Items are immutable once fetched within a session.
type MediaItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            MediaType `json:"type"`
	Path            string    `json:"path,omitempty"`
	Year            int       `json:"year,omitempty"`
	Overview        string    `json:"overview,omitempty"`
	CommunityRating float64   `json:"communityRating,omitempty"`
	CriticRating    int       `json:"criticRating,omitempty"`
	RuntimeTicks    int64     `json:"runtimeTicks,omitempty"`

	// Episode-specific fields (empty for movies and series)
	SeriesID   string `json:"seriesId,omitempty"`
	SeriesName string `json:"seriesName,omitempty"`
	SeasonNum  int    `json:"seasonNum,omitempty"`
	EpisodeNum int    `json:"episodeNum,omitempty"`
}

// Runtime returns the item's runtime as a duration
func (m MediaItem) Runtime() time.Duration {
	return time.Duration(m.RuntimeTicks * 100)
}

// FormattedRuntime returns the runtime in a human-readable format
func (m MediaItem) FormattedRuntime() string {
	if m.RuntimeTicks <= 0 {
		return "Unknown runtime"
	}
	total := int(m.RuntimeTicks / (TicksPerSecond * 60))
	h := total / 60
	mins := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormattedEndTime returns the wall-clock time playback would finish if
// started now
func (m MediaItem) FormattedEndTime() string {
	if m.RuntimeTicks <= 0 {
		return "Unknown runtime"
	}
	return time.Now().Add(m.Runtime()).Format("15:04")
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (m MediaItem) EpisodeCode() string {
	if m.Type != MediaTypeEpisode {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", m.SeasonNum, m.EpisodeNum)
}

// PlaybackTitle returns the title shown in the player window.
// Episodes include the series name and episode code; movies include the
// release year when known.
func (m MediaItem) PlaybackTitle() string {
	if m.Type == MediaTypeEpisode {
		series := m.SeriesName
		if series == "" {
			series = "Unknown Series"
		}
		return fmt.Sprintf("%s - %s - %s", series, m.EpisodeCode(), m.Name)
	}
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Name, m.Year)
	}
	return m.Name
}

// PlayPreferences holds the user's stored playback preferences
type PlayPreferences struct {
	AudioLanguage         string // preferred audio language, empty for none
	PlayDefaultAudioTrack bool   // always use the default audio track
	SubtitleLanguage      string // preferred subtitle language, "none" disables subtitles
}

// Credentials is the session state issued by authentication.
// Replaced wholesale whenever re-authentication succeeds.
type Credentials struct {
	Token       string
	UserID      string
	Username    string
	Preferences PlayPreferences
}

// HomeSections holds the three curated home lists
type HomeSections struct {
	Resume      []MediaItem // partially watched items
	NextUp      []MediaItem // server-computed continuation candidates
	LatestAdded []MediaItem // most recently added movies and series
}

// HistoryEntry records a finished playback session
type HistoryEntry struct {
	ItemID        string    `json:"itemId"`
	Name          string    `json:"name"`
	PositionTicks int64     `json:"positionTicks"`
	PlayedAt      time.Time `json:"playedAt"`
}
