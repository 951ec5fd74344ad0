package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ogrishin/trk/internal/agenda"
	"github.com/ogrishin/trk/internal/ledger"
	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/stats"
	"github.com/ogrishin/trk/internal/storage"
)

type SessionState int

const (
	StateAgenda SessionState = iota
	StateStatistics
	StateSearch
	StateAddTracker
	StateConfirmDelete
)

// tabCount covers the states reachable with tab; modal states sit above it.
const tabCount = 2

// row is one selectable agenda line, flattened across sections so the
// cursor can move through the whole day.
type row struct {
	section   string
	tracker   models.Tracker
	completed bool
	daysDone  int
}

type TrackerFormModel struct {
	Name     string
	Days     []models.WeekDay
	Emoji    string
	Color    models.Color
	Category string
	Pinned   bool
}

type Model struct {
	store  storage.Provider
	ledger *ledger.Service
	stats  *stats.Service

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	day    models.Day
	filter models.Filter
	search string

	sections []agenda.Section
	rows     []row
	cursor   int
	snapshot models.Statistics

	searchInput     textinput.Model
	form            *huh.Form
	trackerForm     *TrackerFormModel
	trackerToDelete models.Tracker

	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, lg *ledger.Service, st *stats.Service) Model {
	filter, err := store.GetFilter()
	if err != nil {
		filter = models.FilterAll
	}

	input := textinput.New()
	input.Placeholder = "tracker name"
	input.CharLimit = 64

	m := Model{
		store:       store,
		ledger:      lg,
		stats:       st,
		state:       StateAgenda,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		day:         models.DayOf(time.Now()),
		filter:      filter,
		searchInput: input,
	}
	m.refresh()
	return m
}

// refresh rebuilds the visible agenda and the statistics readout from the
// store. Called after every mutation; load errors surface in the status
// line instead of crashing the session.
func (m *Model) refresh() {
	m.errMsg = ""

	if m.filter == models.FilterToday {
		m.day = models.DayOf(time.Now())
	}

	categories, err := m.store.GetAllCategories()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	records, err := m.store.GetAllRecords()
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.sections = agenda.Build(m.day, categories, records, agenda.Options{
		Filter: m.filter,
		Search: m.search,
	})

	completedOnDay := make(map[string]bool)
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.TrackerID]++
		if r.Day == m.day {
			completedOnDay[r.TrackerID] = true
		}
	}

	m.rows = m.rows[:0]
	for _, section := range m.sections {
		for _, tracker := range section.Trackers {
			m.rows = append(m.rows, row{
				section:   section.Title,
				tracker:   tracker,
				completed: completedOnDay[tracker.ID],
				daysDone:  counts[tracker.ID],
			})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if snapshot, err := m.stats.Current(); err == nil {
		m.snapshot = snapshot
	}
}

func (m Model) selectedRow() (row, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateAgenda {
		keys = append(keys, m.keys.Enter, m.keys.Filter, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}
