package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ogrishin/trk/internal/agenda"
	"github.com/ogrishin/trk/internal/ledger"
	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/stats"
	"github.com/ogrishin/trk/internal/storage"
)

// Context is handed to every command by kong.
type Context struct {
	Store  storage.Provider
	Ledger *ledger.Service
	Stats  *stats.Service
}

// resolveDay parses a date argument, with "today" (or empty) meaning the
// real current day.
func resolveDay(arg string) (models.Day, error) {
	if arg == "" || arg == "today" {
		return models.DayOf(time.Now()), nil
	}
	return models.ParseDay(arg)
}

// findTracker resolves a tracker reference: an id, an id prefix, or an
// exact (case-insensitive) name. It also reports the category the tracker
// lives in. Ambiguous references are an error rather than a guess.
func findTracker(store storage.Provider, ref string) (models.Tracker, string, error) {
	categories, err := store.GetAllCategories()
	if err != nil {
		return models.Tracker{}, "", err
	}

	type match struct {
		tracker  models.Tracker
		category string
	}
	var matches []match
	lowered := strings.ToLower(ref)
	for _, category := range categories {
		for _, tracker := range category.Trackers {
			if tracker.ID == ref {
				return tracker, category.Title, nil
			}
			if strings.HasPrefix(tracker.ID, ref) || strings.ToLower(tracker.Name) == lowered {
				matches = append(matches, match{tracker, category.Title})
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Tracker{}, "", fmt.Errorf("no tracker matches %q", ref)
	case 1:
		return matches[0].tracker, matches[0].category, nil
	default:
		var names []string
		for _, m := range matches {
			names = append(names, fmt.Sprintf("%s (%s)", m.tracker.Name, shortID(m.tracker.ID)))
		}
		return models.Tracker{}, "", fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// buildAgenda loads everything needed for a day's agenda and applies the
// filter/date interaction: the today filter snaps the reference day back to
// the real current day.
func buildAgenda(ctx *Context, day models.Day, filter models.Filter, search string) ([]agenda.Section, models.Day, error) {
	if filter == models.FilterToday {
		day = models.DayOf(time.Now())
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return nil, day, err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return nil, day, err
	}

	sections := agenda.Build(day, categories, records, agenda.Options{Filter: filter, Search: search})
	return sections, day, nil
}

func formatTrackerLine(t models.Tracker, completed bool, daysDone int) string {
	mark := "[ ]"
	if completed {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s %s  %s  %d days (%s)",
		mark, t.Emoji, t.Name, models.FormatSchedule(t.Schedule), daysDone, shortID(t.ID))
}
