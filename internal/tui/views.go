package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jellyterm/internal/domain"
	"jellyterm/internal/tui/styles"
)

var sectionTitles = [homeSectionCount]string{"Continue Watching", "Next Up", "Recently Added"}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.page {
	case PageHome:
		b.WriteString(m.homeView())
	case PageCatalog:
		b.WriteString(m.catalogView())
	case PagePlaying:
		b.WriteString(m.playingView())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) headerView() string {
	title := styles.HeaderStyle.Render("jellyterm")
	var hint string
	switch m.page {
	case PageHome:
		hint = styles.DimStyle.Render("home")
	case PageCatalog:
		hint = styles.DimStyle.Render("catalog")
	case PagePlaying:
		hint = styles.DimStyle.Render("playing")
	}
	return title + "  " + hint
}

func (m Model) homeView() string {
	var cols []string
	for i := 0; i < homeSectionCount; i++ {
		cols = append(cols, m.sectionView(i))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	if item := m.selectedItem(); item != nil {
		body += "\n" + m.detailView(*item)
	}
	return body
}

func (m Model) sectionView(section int) string {
	var b strings.Builder

	title := sectionTitles[section]
	if section == m.section {
		b.WriteString(styles.AccentStyle.Render(title))
	} else {
		b.WriteString(styles.DimStyle.Render(title))
	}
	b.WriteString("\n")

	items := m.sectionItems(section)
	if len(items) == 0 {
		b.WriteString(styles.DimStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	for i, item := range items {
		line := itemLine(item)
		if section == m.section && i == m.sectionCursor[section] {
			b.WriteString(styles.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	width := 0
	if m.width > 0 {
		width = m.width/homeSectionCount - 4
	}
	return styles.PanelStyle.Width(width).Render(b.String())
}

func (m Model) catalogView() string {
	var b strings.Builder

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(styles.DimStyle.Render("no matching items"))
		b.WriteString("\n")
		return b.String()
	}

	visible := m.listHeight()
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		line := itemLine(m.filtered[i])
		if i == m.cursor {
			b.WriteString(styles.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d/%d items", m.cursor+1, len(m.filtered))))

	if item := m.selectedItem(); item != nil {
		b.WriteString("\n")
		b.WriteString(m.detailView(*item))
	}

	return b.String()
}

func (m Model) playingView() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	if m.nowPlaying != nil {
		b.WriteString(" Now playing: ")
		b.WriteString(styles.TitleStyle.Render(m.nowPlaying.PlaybackTitle()))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("the terminal returns when playback ends"))
	b.WriteString("\n")

	if history := m.playback.RecentHistory(5); len(history) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("Recently played"))
		b.WriteString("\n")
		for _, entry := range history {
			b.WriteString(styles.DimStyle.Render("  " + entry.Name))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) detailView(item domain.MediaItem) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(item.PlaybackTitle()))
	b.WriteString("\n")

	meta := []string{item.FormattedRuntime()}
	if item.RuntimeTicks > 0 {
		meta = append(meta, "ends "+item.FormattedEndTime())
	}
	if item.CommunityRating > 0 {
		meta = append(meta, fmt.Sprintf("★ %.1f", item.CommunityRating))
	}
	if item.CriticRating > 0 {
		meta = append(meta, fmt.Sprintf("critics %d%%", item.CriticRating))
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, "  ·  ")))
	b.WriteString("\n")

	if item.Overview != "" {
		overview := item.Overview
		if m.width > 4 && len(overview) > (m.width-4)*3 {
			overview = overview[:(m.width-4)*3] + "…"
		}
		b.WriteString(styles.DimStyle.Render(overview))
		b.WriteString("\n")
	}

	return styles.PanelStyle.Render(b.String())
}

func (m Model) footerView() string {
	if m.status != "" {
		return styles.ErrorStyle.Render(m.status)
	}
	help := "tab home/catalog · / search · enter play · r refresh · q quit"
	return styles.DimStyle.Render(help)
}

// listHeight returns how many catalog rows fit above the detail panel
func (m Model) listHeight() int {
	h := m.height - 16
	if h < 5 {
		return 5
	}
	return h
}

// itemLine renders one list row
func itemLine(item domain.MediaItem) string {
	switch item.Type {
	case domain.MediaTypeEpisode:
		return fmt.Sprintf("%s %s · %s", item.EpisodeCode(), item.Name, item.SeriesName)
	case domain.MediaTypeSeries:
		return item.Name + " (series)"
	default:
		if item.Year > 0 {
			return fmt.Sprintf("%s (%d)", item.Name, item.Year)
		}
		return item.Name
	}
}
