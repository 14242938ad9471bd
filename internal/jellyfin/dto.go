package jellyfin

import "jellyterm/internal/domain"

// Wire types for the Jellyfin API

type authResponse struct {
	AccessToken string   `json:"AccessToken"`
	User        userInfo `json:"User"`
}

type userInfo struct {
	ID            string     `json:"Id"`
	Name          string     `json:"Name"`
	Configuration userConfig `json:"Configuration"`
}

type userConfig struct {
	AudioLanguagePreference    string `json:"AudioLanguagePreference"`
	PlayDefaultAudioTrack      bool   `json:"PlayDefaultAudioTrack"`
	SubtitleLanguagePreference string `json:"SubtitleLanguagePreference"`
}

type itemsResponse struct {
	Items []item `json:"Items"`
}

type item struct {
	ID              string  `json:"Id"`
	Name            string  `json:"Name"`
	Type            string  `json:"Type"`
	Path            string  `json:"Path"`
	ProductionYear  int     `json:"ProductionYear"`
	Overview        string  `json:"Overview"`
	CommunityRating float64 `json:"CommunityRating"`
	CriticRating    int     `json:"CriticRating"`
	RunTimeTicks    int64   `json:"RunTimeTicks"`
	SeriesID        string  `json:"SeriesId"`
	SeriesName      string  `json:"SeriesName"`
	ParentIndexNum  int     `json:"ParentIndexNumber"`
	IndexNum        int     `json:"IndexNumber"`
}

type playbackInfoResponse struct {
	MediaSources []mediaSource `json:"MediaSources"`
}

type mediaSource struct {
	RunTimeTicks int64 `json:"RunTimeTicks"`
}

type userData struct {
	PlaybackPositionTicks int64 `json:"PlaybackPositionTicks"`
}

type progressReport struct {
	ItemID        string `json:"ItemId"`
	PositionTicks int64  `json:"PositionTicks"`
	IsPaused      *bool  `json:"IsPaused,omitempty"`
}

// mapItem converts a wire item to a domain media item
func mapItem(it item) domain.MediaItem {
	return domain.MediaItem{
		ID:              it.ID,
		Name:            it.Name,
		Type:            domain.MediaType(it.Type),
		Path:            it.Path,
		Year:            it.ProductionYear,
		Overview:        it.Overview,
		CommunityRating: it.CommunityRating,
		CriticRating:    it.CriticRating,
		RuntimeTicks:    it.RunTimeTicks,
		SeriesID:        it.SeriesID,
		SeriesName:      it.SeriesName,
		SeasonNum:       it.ParentIndexNum,
		EpisodeNum:      it.IndexNum,
	}
}

// mapItems converts a wire item list in order
func mapItems(items []item) []domain.MediaItem {
	mapped := make([]domain.MediaItem, 0, len(items))
	for _, it := range items {
		mapped = append(mapped, mapItem(it))
	}
	return mapped
}
