package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ogrishin/trk/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateSearch:
			return m.updateSearch(msg)
		case StateAddTracker:
			return m.updateAddTracker(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateBrowsing(msg)
	}

	if m.state == StateAddTracker {
		return m.updateAddTracker(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.state != StateAgenda {
			break
		}
		if r, ok := m.selectedRow(); ok {
			if _, err := m.ledger.Toggle(r.tracker.ID, m.day); err != nil {
				m.errMsg = err.Error()
				break
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.PrevDay):
		m.day = m.day.AddDays(-1)
		m.refresh()

	case key.Matches(msg, m.keys.NextDay):
		// The agenda can page into the future; the ledger still refuses
		// future completions.
		m.day = m.day.AddDays(1)
		m.refresh()

	case key.Matches(msg, m.keys.Today):
		m.day = models.DayOf(m.ledger.Now())
		m.refresh()

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		if err := m.store.SaveFilter(m.filter); err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()

	case key.Matches(msg, m.keys.Search):
		m.previousState = m.state
		m.state = StateSearch
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.previousState = m.state
		m.trackerForm = &TrackerFormModel{
			Emoji:    models.EmojiPalette[0],
			Color:    models.Palette[0],
			Category: "Habits",
		}
		m.form = newTrackerForm(m.trackerForm)
		m.state = StateAddTracker
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Pin):
		if r, ok := m.selectedRow(); ok {
			if err := m.store.TogglePinned(r.tracker.ID); err != nil {
				m.errMsg = err.Error()
				break
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selectedRow(); ok {
			m.trackerToDelete = r.tracker
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search = ""
		m.state = m.previousState
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.state = m.previousState
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateAddTracker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		tracker, err := buildTracker(m.trackerForm)
		if err != nil {
			m.errMsg = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		category := strings.TrimSpace(m.trackerForm.Category)
		if category == "" {
			category = "Habits"
		}
		if err := m.store.SaveTracker(category, tracker); err != nil {
			m.errMsg = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.state = m.previousState
		m.refresh()
	case huh.StateAborted:
		m.state = m.previousState
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.store.DeleteTracker(m.trackerToDelete.ID); err != nil {
			m.errMsg = err.Error()
		}
		m.trackerToDelete = models.Tracker{}
		m.state = m.previousState
		m.refresh()
	case "n", "N", "esc", "q":
		m.trackerToDelete = models.Tracker{}
		m.state = m.previousState
	}
	return m, nil
}
