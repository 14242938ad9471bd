package service

import (
	"testing"

	"jellyterm/internal/domain"
	"jellyterm/internal/log"
)

func searchItems() []domain.MediaItem {
	return []domain.MediaItem{
		{ID: "1", Name: "The Matrix"},
		{ID: "2", Name: "The Matrix Reloaded"},
		{ID: "3", Name: "Blade Runner"},
		{ID: "4", Name: "Mad Max"},
	}
}

func TestFilterEmptyQueryPassesThrough(t *testing.T) {
	svc := NewSearchService(log.NullLogger())
	items := searchItems()

	got := svc.Filter("", items)
	if len(got) != len(items) {
		t.Fatalf("Filter(\"\") returned %d items, want %d", len(got), len(items))
	}
}

func TestFilterMatchesSubsequences(t *testing.T) {
	svc := NewSearchService(log.NullLogger())

	got := svc.Filter("matrix", searchItems())
	if len(got) != 2 {
		t.Fatalf("Filter(matrix) returned %d items, want 2: %+v", len(got), got)
	}
	for _, item := range got {
		if item.ID != "1" && item.ID != "2" {
			t.Errorf("unexpected match %q", item.Name)
		}
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	svc := NewSearchService(log.NullLogger())

	got := svc.Filter("BLADE", searchItems())
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Filter(BLADE) = %+v, want Blade Runner", got)
	}
}

func TestFilterNoMatches(t *testing.T) {
	svc := NewSearchService(log.NullLogger())

	if got := svc.Filter("zzzzzz", searchItems()); len(got) != 0 {
		t.Errorf("Filter(zzzzzz) = %+v, want none", got)
	}
}

func TestFilterAbbreviation(t *testing.T) {
	svc := NewSearchService(log.NullLogger())

	got := svc.Filter("mm", searchItems())
	found := false
	for _, item := range got {
		if item.ID == "4" {
			found = true
		}
	}
	if !found {
		t.Errorf("Filter(mm) = %+v, want Mad Max among the matches", got)
	}
}
