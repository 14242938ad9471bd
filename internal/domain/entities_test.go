package domain

import "testing"

func TestPlaybackTitle(t *testing.T) {
	tests := []struct {
		name string
		item MediaItem
		want string
	}{
		{
			name: "episode",
			item: MediaItem{
				Type:       MediaTypeEpisode,
				Name:       "Bar",
				SeriesName: "Foo",
				SeasonNum:  2,
				EpisodeNum: 5,
			},
			want: "Foo - S02E05 - Bar",
		},
		{
			name: "episode without series name",
			item: MediaItem{
				Type:       MediaTypeEpisode,
				Name:       "Pilot",
				SeasonNum:  1,
				EpisodeNum: 1,
			},
			want: "Unknown Series - S01E01 - Pilot",
		},
		{
			name: "movie with year",
			item: MediaItem{Type: MediaTypeMovie, Name: "Title", Year: 1999},
			want: "Title (1999)",
		},
		{
			name: "movie without year",
			item: MediaItem{Type: MediaTypeMovie, Name: "Title"},
			want: "Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.PlaybackTitle(); got != tt.want {
				t.Errorf("PlaybackTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormattedRuntime(t *testing.T) {
	tests := []struct {
		name  string
		ticks int64
		want  string
	}{
		{"unknown", 0, "Unknown runtime"},
		{"minutes only", 42 * 60 * TicksPerSecond, "42m"},
		{"hours and minutes", 103 * 60 * TicksPerSecond, "1h 43m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := MediaItem{RuntimeTicks: tt.ticks}
			if got := item.FormattedRuntime(); got != tt.want {
				t.Errorf("FormattedRuntime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEpisodeCode(t *testing.T) {
	ep := MediaItem{Type: MediaTypeEpisode, SeasonNum: 1, EpisodeNum: 9}
	if got := ep.EpisodeCode(); got != "S01E09" {
		t.Errorf("EpisodeCode() = %q, want S01E09", got)
	}

	movie := MediaItem{Type: MediaTypeMovie}
	if got := movie.EpisodeCode(); got != "" {
		t.Errorf("EpisodeCode() on movie = %q, want empty", got)
	}
}
