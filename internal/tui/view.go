package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ogrishin/trk/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateAgenda:
		content = m.viewAgenda()
	case StateStatistics:
		content = m.viewStatistics()
	case StateSearch:
		content = m.viewSearch()
	case StateAddTracker:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), m.viewHeader(), content}
	if m.errMsg != "" {
		parts = append(parts, dangerStyle.Render(m.errMsg))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Agenda", "Statistics"} {
		state := m.state
		if state >= tabCount {
			state = m.previousState
		}
		if state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	weekday := "?"
	if wd, ok := m.day.WeekDay(); ok {
		weekday = wd.String()
	}
	header := fmt.Sprintf("%s (%s)  filter: %s", m.day, weekday, m.filter)
	if m.search != "" {
		header += fmt.Sprintf("  search: %q", m.search)
	}
	return headerStyle.Render(header)
}

func (m Model) viewAgenda() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("  What shall we track?")
	}

	var b strings.Builder
	lastSection := ""
	for i, r := range m.rows {
		if r.section != lastSection {
			if lastSection != "" {
				b.WriteString("\n")
			}
			b.WriteString(sectionStyle.Render(r.section))
			b.WriteString("\n")
			lastSection = r.section
		}
		b.WriteString(m.viewRow(r, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewRow(r row, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	mark := "[ ]"
	if r.completed {
		mark = "[x]"
	}

	name := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.tracker.Color.Hex())).
		Render(r.tracker.Name)
	if r.completed {
		name = completedStyle.Render(r.tracker.Name)
	}

	meta := dimStyle.Render(fmt.Sprintf("%s · %d days",
		models.FormatSchedule(r.tracker.Schedule), r.daysDone))

	return fmt.Sprintf("%s%s %s %s  %s", cursor, mark, r.tracker.Emoji, name, meta)
}

func (m Model) viewStatistics() string {
	if m.snapshot.IsZero() {
		return dimStyle.Render("  Nothing to analyze yet")
	}
	return strings.Join([]string{
		fmt.Sprintf("  Best streak        %d", m.snapshot.BestStreak),
		fmt.Sprintf("  Perfect days       %d", m.snapshot.PerfectDays),
		fmt.Sprintf("  Total completions  %d", m.snapshot.TotalCompletions),
		fmt.Sprintf("  Average per day    %.2f", m.snapshot.AveragePerDay),
	}, "\n")
}

func (m Model) viewSearch() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"  Search trackers (enter to apply, esc to clear):",
		"  "+m.searchInput.View(),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all its completions?", m.trackerToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
