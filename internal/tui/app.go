package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jellyterm/internal/domain"
	"jellyterm/internal/service"
	"jellyterm/internal/tui/styles"
)

// Page identifies the top-level view
type Page int

const (
	PageHome Page = iota
	PageCatalog
	PagePlaying
)

// homeSectionCount is resume, next up, recently added
const homeSectionCount = 3

// playbackFinishedMsg reports the outcome of a completed session
type playbackFinishedMsg struct {
	played domain.MediaItem
	next   *domain.MediaItem
	err    error
}

// refreshDoneMsg reports a finished catalog refresh
type refreshDoneMsg struct {
	err error
}

// Model is the bubbletea model for the whole application
type Model struct {
	library  *service.LibraryService
	search   *service.SearchService
	playback *service.PlaybackService
	logger   *slog.Logger

	keys KeyMap
	page Page

	// Home state
	section       int
	sectionCursor [homeSectionCount]int

	// Catalog state
	cursor      int
	searching   bool
	searchInput textinput.Model
	filtered    []domain.MediaItem

	// Playback state
	nowPlaying *domain.MediaItem
	returnPage Page
	spinner    spinner.Model

	refreshing bool
	status     string
	width      int
	height     int
}

// NewModel creates the application model
func NewModel(library *service.LibraryService, search *service.SearchService, playback *service.PlaybackService, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "search catalog"
	input.Prompt = "/ "
	input.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: spinner.Dot.FPS}
	sp.Style = styles.AccentStyle

	return Model{
		library:     library,
		search:      search,
		playback:    playback,
		logger:      logger,
		keys:        DefaultKeyMap(),
		page:        PageHome,
		searchInput: input,
		spinner:     sp,
		filtered:    library.Catalog().Sorted(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case playbackFinishedMsg:
		return m.handlePlaybackFinished(msg)

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "catalog refreshed"
		m.filtered = m.visibleCatalog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses for the current page
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While playing, the foreground belongs to the session
	if m.page == PagePlaying {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Search input captures everything except escape and enter
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.searching = false
			m.searchInput.Reset()
			m.filtered = m.visibleCatalog()
			m.cursor = 0
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.searching = false
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.filtered = m.visibleCatalog()
		m.cursor = 0
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		if m.page == PageHome {
			m.page = PageCatalog
			m.filtered = m.visibleCatalog()
		} else {
			m.page = PageHome
		}
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.page == PageCatalog {
			m.searching = true
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.status = "refreshing catalog..."
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.page == PageHome {
			m.section = (m.section + homeSectionCount - 1) % homeSectionCount
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.page == PageHome {
			m.section = (m.section + 1) % homeSectionCount
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.playSelected()

	case key.Matches(msg, m.keys.Escape):
		if m.page == PageCatalog && m.searchInput.Value() != "" {
			m.searchInput.Reset()
			m.filtered = m.visibleCatalog()
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

// moveCursor moves the selection within the focused list
func (m *Model) moveCursor(delta int) {
	if m.page == PageHome {
		items := m.sectionItems(m.section)
		if len(items) == 0 {
			return
		}
		c := m.sectionCursor[m.section] + delta
		if c < 0 {
			c = 0
		}
		if c >= len(items) {
			c = len(items) - 1
		}
		m.sectionCursor[m.section] = c
		return
	}

	if len(m.filtered) == 0 {
		return
	}
	c := m.cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= len(m.filtered) {
		c = len(m.filtered) - 1
	}
	m.cursor = c
}

// sectionItems returns the items of one home section
func (m Model) sectionItems(section int) []domain.MediaItem {
	sections := m.library.Sections()
	switch section {
	case 0:
		return sections.Resume
	case 1:
		return sections.NextUp
	default:
		return sections.LatestAdded
	}
}

// selectedItem returns the item under the cursor, if any
func (m Model) selectedItem() *domain.MediaItem {
	if m.page == PageHome {
		items := m.sectionItems(m.section)
		c := m.sectionCursor[m.section]
		if c < len(items) {
			return &items[c]
		}
		return nil
	}
	if m.cursor < len(m.filtered) {
		return &m.filtered[m.cursor]
	}
	return nil
}

// visibleCatalog returns the catalog list with the current filter applied
func (m Model) visibleCatalog() []domain.MediaItem {
	items := m.library.Catalog().Sorted()
	return m.search.Filter(m.searchInput.Value(), items)
}

// playSelected starts a session for the item under the cursor
func (m Model) playSelected() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	if item.Type == domain.MediaTypeSeries {
		m.status = "series cannot be played directly, pick an episode"
		return m, nil
	}

	m.returnPage = m.page
	m.page = PagePlaying
	m.nowPlaying = item
	m.status = ""
	return m, tea.Batch(m.playCmd(*item), m.spinner.Tick)
}

// playCmd runs one blocking playback session
func (m Model) playCmd(item domain.MediaItem) tea.Cmd {
	catalog := m.library.Catalog()
	return func() tea.Msg {
		next, err := m.playback.Play(context.Background(), item, catalog)
		return playbackFinishedMsg{played: item, next: next, err: err}
	}
}

// refreshCmd re-fetches the catalog and home sections
func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.library.Refresh(context.Background())}
	}
}

// handlePlaybackFinished returns to browsing or auto-continues the series
func (m Model) handlePlaybackFinished(msg playbackFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.page = m.returnPage
		m.nowPlaying = nil
		m.status = "playback failed: " + msg.err.Error()
		return m, nil
	}

	if msg.next != nil {
		m.nowPlaying = msg.next
		return m, tea.Batch(m.playCmd(*msg.next), m.spinner.Tick)
	}

	m.page = m.returnPage
	m.nowPlaying = nil
	return m, nil
}
