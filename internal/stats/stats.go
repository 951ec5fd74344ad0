// Package stats derives the aggregate figures from the full tracker set and
// completion ledger, and keeps a write-through snapshot in the store.
package stats

import (
	"fmt"
	"sort"

	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/storage"
)

// Compute derives all four figures from scratch. The recomputation is cheap
// enough to run on every mutation; there is deliberately no incremental
// update machinery to drift out of sync.
func Compute(trackers []models.Tracker, records []models.TrackerRecord) models.Statistics {
	return models.Statistics{
		BestStreak:       bestStreak(trackers, records),
		PerfectDays:      perfectDays(trackers, records),
		TotalCompletions: len(records),
		AveragePerDay:    averagePerDay(records),
	}
}

// bestStreak is the longest run of consecutive calendar days with a
// completion, taken per tracker and then maximized across trackers. A
// single record counts as a streak of 1.
func bestStreak(trackers []models.Tracker, records []models.TrackerRecord) int {
	daysByTracker := make(map[string][]models.Day)
	for _, r := range records {
		daysByTracker[r.TrackerID] = append(daysByTracker[r.TrackerID], r.Day)
	}

	maxStreak := 0
	for _, tracker := range trackers {
		days := daysByTracker[tracker.ID]
		if len(days) == 0 {
			continue
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

		current := 1
		for i := 1; i < len(days); i++ {
			if days[i] == days[i-1].AddDays(1) {
				current++
			} else {
				if current > maxStreak {
					maxStreak = current
				}
				current = 1
			}
		}
		if current > maxStreak {
			maxStreak = current
		}
	}
	return maxStreak
}

// perfectDays counts the distinct recorded days on which every habit
// scheduled for that weekday was completed that day AND every irregular
// event has been completed at some point. A day is only eligible when at
// least one of the two sets is non-empty.
func perfectDays(trackers []models.Tracker, records []models.TrackerRecord) int {
	completedByDay := make(map[models.Day]map[string]bool)
	everCompleted := make(map[string]bool)
	for _, r := range records {
		if completedByDay[r.Day] == nil {
			completedByDay[r.Day] = make(map[string]bool)
		}
		completedByDay[r.Day][r.TrackerID] = true
		everCompleted[r.TrackerID] = true
	}

	var events []models.Tracker
	for _, t := range trackers {
		if t.Kind() == models.KindIrregularEvent {
			events = append(events, t)
		}
	}

	count := 0
	for day, completed := range completedByDay {
		weekday, ok := day.WeekDay()
		if !ok {
			continue
		}

		var scheduled []models.Tracker
		for _, t := range trackers {
			if t.ScheduledOn(weekday) {
				scheduled = append(scheduled, t)
			}
		}

		if len(scheduled) == 0 && len(events) == 0 {
			continue
		}

		perfect := true
		for _, t := range scheduled {
			if !completed[t.ID] {
				perfect = false
				break
			}
		}
		if perfect {
			for _, t := range events {
				if !everCompleted[t.ID] {
					perfect = false
					break
				}
			}
		}
		if perfect {
			count++
		}
	}
	return count
}

// averagePerDay divides total completions by the number of distinct days
// with at least one completion. No records means no figure, reported as 0.
func averagePerDay(records []models.TrackerRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	activeDays := make(map[models.Day]bool)
	for _, r := range records {
		activeDays[r.Day] = true
	}
	return float64(len(records)) / float64(len(activeDays))
}

// Service maintains the persisted snapshot. Reads come from the cache;
// every data mutation triggers a full recompute and overwrite.
type Service struct {
	store storage.Provider
}

func NewService(store storage.Provider) *Service {
	if store == nil {
		panic("stats: nil store")
	}
	return &Service{store: store}
}

// Watch subscribes the service to store change notifications so the
// snapshot is refreshed after every successful mutation.
func (s *Service) Watch() {
	s.store.Subscribe(func() {
		// A failed refresh just leaves the previous snapshot in place; the
		// next mutation retries.
		_ = s.Refresh()
	})
}

// Refresh recomputes the snapshot from the store and writes it back.
func (s *Service) Refresh() error {
	categories, err := s.store.GetAllCategories()
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	records, err := s.store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var trackers []models.Tracker
	for _, c := range categories {
		trackers = append(trackers, c.Trackers...)
	}

	return s.store.SaveStatistics(Compute(trackers, records))
}

// Current returns the cached snapshot without recomputing.
func (s *Service) Current() (models.Statistics, error) {
	return s.store.GetStatistics()
}
