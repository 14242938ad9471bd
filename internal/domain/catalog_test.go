package domain

import "testing"

func seriesCatalog() Catalog {
	episodes := []MediaItem{
		{ID: "s1e1", Name: "One", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 1, EpisodeNum: 1},
		{ID: "s1e2", Name: "Two", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 1, EpisodeNum: 2},
		{ID: "s2e1", Name: "Three", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 2, EpisodeNum: 1},
		{ID: "other", Name: "Stray", Type: MediaTypeEpisode, SeriesID: "another-show", SeasonNum: 1, EpisodeNum: 2},
		{ID: "movie", Name: "A Movie", Type: MediaTypeMovie},
	}

	catalog := make(Catalog)
	for _, ep := range episodes {
		catalog[ep.ID] = ep
	}
	return catalog
}

func TestNextAfter(t *testing.T) {
	catalog := seriesCatalog()

	tests := []struct {
		name    string
		current string
		want    string // expected next item ID, empty for none
	}{
		{"next episode same season", "s1e1", "s1e2"},
		{"first episode of next season", "s1e2", "s2e1"},
		{"no further episodes", "s2e1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := catalog.NextAfter(catalog[tt.current])
			if tt.want == "" {
				if next != nil {
					t.Fatalf("NextAfter(%s) = %s, want none", tt.current, next.ID)
				}
				return
			}
			if next == nil {
				t.Fatalf("NextAfter(%s) = none, want %s", tt.current, tt.want)
			}
			if next.ID != tt.want {
				t.Errorf("NextAfter(%s) = %s, want %s", tt.current, next.ID, tt.want)
			}
		})
	}
}

func TestNextAfterIgnoresOtherSeasons(t *testing.T) {
	// Episode numbers repeat across seasons; the follow-up episode must come
	// from the current season, not any season that happens to contain the
	// matching number.
	catalog := Catalog{
		"s1e1": {ID: "s1e1", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 1, EpisodeNum: 1},
		"s1e2": {ID: "s1e2", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 1, EpisodeNum: 2},
		"s2e1": {ID: "s2e1", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 2, EpisodeNum: 1},
		"s2e2": {ID: "s2e2", Type: MediaTypeEpisode, SeriesID: "show", SeasonNum: 2, EpisodeNum: 2},
	}

	next := catalog.NextAfter(catalog["s2e1"])
	if next == nil || next.ID != "s2e2" {
		t.Errorf("NextAfter(s2e1) = %+v, want s2e2", next)
	}

	next = catalog.NextAfter(catalog["s2e2"])
	if next != nil {
		t.Errorf("NextAfter(s2e2) = %s, want none", next.ID)
	}
}

func TestNextAfterNonEpisode(t *testing.T) {
	catalog := seriesCatalog()
	if next := catalog.NextAfter(catalog["movie"]); next != nil {
		t.Errorf("NextAfter(movie) = %s, want none", next.ID)
	}
}

func TestEpisodesOfSorted(t *testing.T) {
	catalog := seriesCatalog()

	episodes := catalog.EpisodesOf("show")
	if len(episodes) != 3 {
		t.Fatalf("EpisodesOf returned %d episodes, want 3", len(episodes))
	}

	wantOrder := []string{"s1e1", "s1e2", "s2e1"}
	for i, id := range wantOrder {
		if episodes[i].ID != id {
			t.Errorf("episode %d = %s, want %s", i, episodes[i].ID, id)
		}
	}
}

func TestSortedByName(t *testing.T) {
	catalog := Catalog{
		"b": {ID: "b", Name: "Beta"},
		"a": {ID: "a", Name: "Alpha"},
		"c": {ID: "c", Name: "Gamma"},
	}

	items := catalog.Sorted()
	want := []string{"Alpha", "Beta", "Gamma"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("item %d = %s, want %s", i, items[i].Name, name)
		}
	}
}
