// Package ledger owns completion records: toggling a tracker on a day is
// the only way records are created or removed.
package ledger

import (
	"fmt"
	"time"

	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/storage"
)

// Service serializes completion mutations through the store. The store is
// re-read on every call instead of carrying an in-memory copy, so repeated
// taps and interleaved mutations stay consistent.
type Service struct {
	store storage.Provider

	// Now is the clock used for the future-date check. Tests override it.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	if store == nil {
		panic("ledger: nil store")
	}
	return &Service{store: store, Now: time.Now}
}

// ToggleResult reports what a toggle did. Changed is false for policy
// rejections (future or malformed days); Completed is the state after a
// successful toggle.
type ToggleResult struct {
	Changed   bool
	Completed bool
}

// Toggle records a completion for (trackerID, day), or removes it if one
// already exists. Days after today are silently rejected: the ledger never
// contains future completions. Storage errors propagate with nothing
// reflected anywhere, so a failed write cannot leave phantom state.
func (s *Service) Toggle(trackerID string, day models.Day) (ToggleResult, error) {
	if !day.Valid() {
		return ToggleResult{}, nil
	}
	if day.After(models.DayOf(s.Now())) {
		return ToggleResult{}, nil
	}

	completed, err := s.CompletedOn(trackerID, day)
	if err != nil {
		return ToggleResult{}, err
	}

	if completed {
		if err := s.store.RemoveRecord(trackerID, day); err != nil {
			return ToggleResult{}, fmt.Errorf("failed to remove completion: %w", err)
		}
		return ToggleResult{Changed: true, Completed: false}, nil
	}

	if err := s.store.AddRecord(trackerID, day); err != nil {
		return ToggleResult{}, fmt.Errorf("failed to record completion: %w", err)
	}
	return ToggleResult{Changed: true, Completed: true}, nil
}

// CompletedOn reports whether the tracker has a record on the given day.
func (s *Service) CompletedOn(trackerID string, day models.Day) (bool, error) {
	records, err := s.store.GetAllRecords()
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.TrackerID == trackerID && r.Day == day {
			return true, nil
		}
	}
	return false, nil
}

// CompletionCount returns how many days the tracker has been completed on.
func (s *Service) CompletionCount(trackerID string) (int, error) {
	records, err := s.store.GetAllRecords()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, r := range records {
		if r.TrackerID == trackerID {
			count++
		}
	}
	return count, nil
}
