// Package agenda decides which trackers are visible on a given day. It is a
// pure projection over the tracker set and the completion ledger: building
// an agenda never mutates anything and may be repeated freely.
package agenda

import (
	"strings"

	"github.com/ogrishin/trk/internal/models"
)

// Options narrow the agenda beyond the due-today rules.
//
// FilterToday is handled by callers: selecting it resets the reference day
// to the real current day before Build is called, so inside Build it
// behaves like FilterAll.
type Options struct {
	Filter models.Filter
	Search string
}

// Section is one rendered group: a category title and its surviving
// trackers. The synthetic pinned section comes first when non-empty.
type Section struct {
	Title    string
	Trackers []models.Tracker
}

// Build computes the agenda for ref. Categories keep their original order;
// categories that lose every tracker are omitted. Pinned trackers are
// extracted from their real categories into the leading synthetic section
// and are exempt from the due-today test, but not from filtering or search.
func Build(ref models.Day, categories []models.TrackerCategory, records []models.TrackerRecord, opts Options) []Section {
	everCompleted := make(map[string]bool)
	completedOnRef := make(map[string]bool)
	for _, r := range records {
		everCompleted[r.TrackerID] = true
		if r.Day == ref {
			completedOnRef[r.TrackerID] = true
		}
	}

	weekday, haveWeekday := ref.WeekDay()

	dueToday := func(t models.Tracker) bool {
		if !haveWeekday {
			// Unresolvable day: nothing is scheduled rather than a crash.
			return false
		}
		if t.Kind() == models.KindIrregularEvent {
			// An irregular event shows up everywhere until completed; after
			// that it stays visible only on its completion day so the user
			// can still undo it.
			return !everCompleted[t.ID] || completedOnRef[t.ID]
		}
		return t.ScheduledOn(weekday)
	}

	passesFilter := func(t models.Tracker) bool {
		switch opts.Filter {
		case models.FilterCompleted:
			return completedOnRef[t.ID]
		case models.FilterIncomplete:
			if t.Kind() == models.KindIrregularEvent {
				return !everCompleted[t.ID]
			}
			return !completedOnRef[t.ID]
		default:
			return true
		}
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	matchesSearch := func(t models.Tracker) bool {
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(t.Name), search)
	}

	var pinned Section
	pinned.Title = models.PinnedCategoryTitle

	sections := make([]Section, 0, len(categories))
	for _, category := range categories {
		section := Section{Title: category.Title}
		for _, tracker := range category.Trackers {
			if !passesFilter(tracker) || !matchesSearch(tracker) {
				continue
			}
			if tracker.Pinned {
				pinned.Trackers = append(pinned.Trackers, tracker)
				continue
			}
			if !dueToday(tracker) {
				continue
			}
			section.Trackers = append(section.Trackers, tracker)
		}
		if len(section.Trackers) > 0 {
			sections = append(sections, section)
		}
	}

	if len(pinned.Trackers) > 0 {
		return append([]Section{pinned}, sections...)
	}
	return sections
}

// Trackers flattens an agenda into a single ordered list, pinned first.
func Trackers(sections []Section) []models.Tracker {
	var out []models.Tracker
	for _, s := range sections {
		out = append(out, s.Trackers...)
	}
	return out
}
