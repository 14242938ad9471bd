package player

import (
	"slices"
	"strings"
	"testing"

	"jellyterm/internal/domain"
)

func testItem() domain.MediaItem {
	return domain.MediaItem{
		ID:           "ep1",
		Name:         "Bar",
		Type:         domain.MediaTypeEpisode,
		SeriesName:   "Foo",
		SeasonNum:    2,
		EpisodeNum:   5,
		RuntimeTicks: 90 * 60 * domain.TicksPerSecond,
	}
}

func testCreds() domain.Credentials {
	return domain.Credentials{
		Token: "tok-1",
		Preferences: domain.PlayPreferences{
			AudioLanguage:         "jpn",
			PlayDefaultAudioTrack: false,
			SubtitleLanguage:      "eng",
		},
	}
}

func TestBuildArgsBase(t *testing.T) {
	item := testItem()
	args := buildArgs(item, "http://srv/stream", "/tmp/sock", 0, item.RuntimeTicks, testCreds())

	if args[0] != "http://srv/stream" {
		t.Errorf("first arg = %q, want stream URL", args[0])
	}

	want := []string{
		"--no-cache-pause",
		"--demuxer-lavf-probe-info=yes",
		"--demuxer-lavf-analyzeduration=10",
		"--length=5400",
		"--force-media-title=Foo - S02E05 - Bar",
		"--http-header-fields=X-MediaBrowser-Token: tok-1",
		"--input-ipc-server=/tmp/sock",
		"--alang=jpn",
		"--slang=eng",
		"--sub-auto=fuzzy",
	}
	for _, flag := range want {
		if !slices.Contains(args, flag) {
			t.Errorf("args missing %q\nargs: %v", flag, args)
		}
	}
}

func TestBuildArgsStartOnlyWhenResuming(t *testing.T) {
	item := testItem()

	args := buildArgs(item, "url", "/tmp/sock", 0, item.RuntimeTicks, testCreds())
	for _, a := range args {
		if strings.HasPrefix(a, "--start=") {
			t.Errorf("--start present for fresh playback: %v", args)
		}
	}

	args = buildArgs(item, "url", "/tmp/sock", 300*domain.TicksPerSecond, item.RuntimeTicks, testCreds())
	if !slices.Contains(args, "--start=300") {
		t.Errorf("resume position not converted to seconds: %v", args)
	}
}

func TestBuildArgsAudioPreference(t *testing.T) {
	item := testItem()

	// Default-track preference suppresses the language override
	creds := testCreds()
	creds.Preferences.PlayDefaultAudioTrack = true
	args := buildArgs(item, "url", "/tmp/sock", 0, item.RuntimeTicks, creds)
	for _, a := range args {
		if strings.HasPrefix(a, "--alang=") {
			t.Errorf("--alang present despite default-track preference: %v", args)
		}
	}

	// No language preference at all
	creds = testCreds()
	creds.Preferences.AudioLanguage = ""
	args = buildArgs(item, "url", "/tmp/sock", 0, item.RuntimeTicks, creds)
	for _, a := range args {
		if strings.HasPrefix(a, "--alang=") {
			t.Errorf("--alang present without a language preference: %v", args)
		}
	}
}

func TestBuildArgsSubtitlesDisabled(t *testing.T) {
	item := testItem()
	creds := testCreds()
	creds.Preferences.SubtitleLanguage = "none"

	args := buildArgs(item, "url", "/tmp/sock", 0, item.RuntimeTicks, creds)
	if !slices.Contains(args, "--no-sub") {
		t.Errorf("--no-sub missing when subtitles are disabled: %v", args)
	}
	for _, a := range args {
		if strings.HasPrefix(a, "--slang=") || a == "--sub-auto=fuzzy" {
			t.Errorf("subtitle selection flags present despite none preference: %v", args)
		}
	}
}

func TestSocketPathUniquePerItem(t *testing.T) {
	a := SocketPath("item-a")
	b := SocketPath("item-b")
	if a == b {
		t.Fatal("socket paths collide across items")
	}
	if !strings.Contains(a, "mpv-socket-item-a") {
		t.Errorf("socket path does not embed the item ID: %q", a)
	}
}
