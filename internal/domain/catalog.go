package domain

import "sort"

// Catalog is the full set of playable items known to the client, keyed by ID.
type Catalog map[string]MediaItem

// EpisodesOf returns all episodes belonging to a series, ordered by season
// then episode number.
func (c Catalog) EpisodesOf(seriesID string) []MediaItem {
	if seriesID == "" {
		return nil
	}

	var episodes []MediaItem
	for _, item := range c {
		if item.Type == MediaTypeEpisode && item.SeriesID == seriesID {
			episodes = append(episodes, item)
		}
	}

	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].SeasonNum != episodes[j].SeasonNum {
			return episodes[i].SeasonNum < episodes[j].SeasonNum
		}
		return episodes[i].EpisodeNum < episodes[j].EpisodeNum
	})

	return episodes
}

// NextAfter resolves the episode that follows the given one within its
// series: first the episode numbered current+1, otherwise the first episode
// of the next season. Returns nil when no episode follows or when the item
// is not an episode.
func (c Catalog) NextAfter(item MediaItem) *MediaItem {
	if item.Type != MediaTypeEpisode || item.SeriesID == "" {
		return nil
	}

	episodes := c.EpisodesOf(item.SeriesID)

	for i := range episodes {
		if episodes[i].SeasonNum == item.SeasonNum && episodes[i].EpisodeNum == item.EpisodeNum+1 {
			return &episodes[i]
		}
	}
	for i := range episodes {
		if episodes[i].SeasonNum == item.SeasonNum+1 && episodes[i].EpisodeNum == 1 {
			return &episodes[i]
		}
	}

	return nil
}

// Sorted returns all catalog items ordered by name ascending
func (c Catalog) Sorted() []MediaItem {
	items := make([]MediaItem, 0, len(c))
	for _, item := range c {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}
