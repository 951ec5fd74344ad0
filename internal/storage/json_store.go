package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogrishin/trk/internal/models"
)

// jsonTracker is the persisted tracker shape. Color and schedule are kept
// raw so a malformed row can be skipped on decode instead of failing the
// whole load.
type jsonTracker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Emoji    string `json:"emoji"`
	Pinned   bool   `json:"pinned"`
	Schedule []int  `json:"schedule"`
}

type jsonCategory struct {
	Title    string        `json:"title"`
	Trackers []jsonTracker `json:"trackers"`
}

type jsonFile struct {
	Version    int                    `json:"version"`
	Categories []jsonCategory         `json:"categories"`
	Records    []models.TrackerRecord `json:"records"`
	Filter     int                    `json:"filter"`
	Statistics models.Statistics      `json:"statistics"`
}

// JSONStore keeps everything in a single JSON file. It exists alongside the
// SQLite store for portable, human-inspectable data and for tests.
type JSONStore struct {
	notifier
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &jsonFile{Version: 1}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.file != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'trk init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func encodeTracker(t models.Tracker) jsonTracker {
	schedule := make([]int, 0, len(t.Schedule))
	for _, wd := range t.Schedule {
		schedule = append(schedule, int(wd))
	}
	return jsonTracker{
		ID:       t.ID,
		Name:     t.Name,
		Color:    t.Color.Hex(),
		Emoji:    t.Emoji,
		Pinned:   t.Pinned,
		Schedule: schedule,
	}
}

func decodeTracker(jt jsonTracker) (models.Tracker, error) {
	if jt.ID == "" || jt.Name == "" {
		return models.Tracker{}, fmt.Errorf("tracker missing id or name")
	}
	color, err := models.ParseColor(jt.Color)
	if err != nil {
		return models.Tracker{}, err
	}
	var schedule []models.WeekDay
	for _, raw := range jt.Schedule {
		wd := models.WeekDay(raw)
		if !wd.Valid() {
			return models.Tracker{}, fmt.Errorf("tracker %s has invalid weekday %d", jt.ID, raw)
		}
		schedule = append(schedule, wd)
	}
	return models.Tracker{
		ID:       jt.ID,
		Name:     jt.Name,
		Color:    color,
		Emoji:    jt.Emoji,
		Pinned:   jt.Pinned,
		Schedule: models.NormalizeSchedule(schedule),
	}, nil
}

func (s *JSONStore) GetAllCategories() ([]models.TrackerCategory, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	categories := make([]models.TrackerCategory, 0, len(s.file.Categories))
	for _, jc := range s.file.Categories {
		category := models.TrackerCategory{Title: jc.Title}
		for _, jt := range jc.Trackers {
			tracker, err := decodeTracker(jt)
			if err != nil {
				// Corrupt rows are dropped, not fatal.
				continue
			}
			category.Trackers = append(category.Trackers, tracker)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (s *JSONStore) AddCategory(title string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, jc := range s.file.Categories {
		if jc.Title == title {
			return nil
		}
	}

	s.file.Categories = append(s.file.Categories, jsonCategory{Title: title})
	if err := s.save(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *JSONStore) SaveTracker(categoryTitle string, tracker models.Tracker) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Drop any existing copy; a tracker lives in exactly one category.
	for ci := range s.file.Categories {
		trackers := s.file.Categories[ci].Trackers[:0]
		for _, jt := range s.file.Categories[ci].Trackers {
			if jt.ID != tracker.ID {
				trackers = append(trackers, jt)
			}
		}
		s.file.Categories[ci].Trackers = trackers
	}

	encoded := encodeTracker(tracker)
	for ci := range s.file.Categories {
		if s.file.Categories[ci].Title == categoryTitle {
			s.file.Categories[ci].Trackers = append(s.file.Categories[ci].Trackers, encoded)
			if err := s.save(); err != nil {
				return err
			}
			s.notify()
			return nil
		}
	}

	// Category does not exist yet; create it on the fly.
	s.file.Categories = append(s.file.Categories, jsonCategory{
		Title:    categoryTitle,
		Trackers: []jsonTracker{encoded},
	})
	if err := s.save(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *JSONStore) GetTracker(id string) (models.Tracker, error) {
	if s.file == nil {
		return models.Tracker{}, fmt.Errorf("storage not loaded")
	}

	for _, jc := range s.file.Categories {
		for _, jt := range jc.Trackers {
			if jt.ID == id {
				return decodeTracker(jt)
			}
		}
	}

	return models.Tracker{}, fmt.Errorf("tracker not found: %s", id)
}

func (s *JSONStore) DeleteTracker(id string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	found := false
	for ci := range s.file.Categories {
		trackers := s.file.Categories[ci].Trackers[:0]
		for _, jt := range s.file.Categories[ci].Trackers {
			if jt.ID == id {
				found = true
				continue
			}
			trackers = append(trackers, jt)
		}
		s.file.Categories[ci].Trackers = trackers
	}
	if !found {
		return fmt.Errorf("tracker not found: %s", id)
	}

	// Cascade: no record may reference a missing tracker.
	records := s.file.Records[:0]
	for _, r := range s.file.Records {
		if r.TrackerID != id {
			records = append(records, r)
		}
	}
	s.file.Records = records

	if err := s.save(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *JSONStore) TogglePinned(id string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	for ci := range s.file.Categories {
		for ti := range s.file.Categories[ci].Trackers {
			if s.file.Categories[ci].Trackers[ti].ID == id {
				s.file.Categories[ci].Trackers[ti].Pinned = !s.file.Categories[ci].Trackers[ti].Pinned
				if err := s.save(); err != nil {
					return err
				}
				s.notify()
				return nil
			}
		}
	}

	return fmt.Errorf("tracker not found: %s", id)
}

func (s *JSONStore) GetAllRecords() ([]models.TrackerRecord, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return append([]models.TrackerRecord(nil), s.file.Records...), nil
}

func (s *JSONStore) AddRecord(trackerID string, day models.Day) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, r := range s.file.Records {
		if r.TrackerID == trackerID && r.Day == day {
			return nil
		}
	}

	s.file.Records = append(s.file.Records, models.TrackerRecord{TrackerID: trackerID, Day: day})
	if err := s.save(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *JSONStore) RemoveRecord(trackerID string, day models.Day) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, r := range s.file.Records {
		if r.TrackerID == trackerID && r.Day == day {
			s.file.Records = append(s.file.Records[:i], s.file.Records[i+1:]...)
			if err := s.save(); err != nil {
				return err
			}
			s.notify()
			return nil
		}
	}

	return nil
}

func (s *JSONStore) GetFilter() (models.Filter, error) {
	if s.file == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	f := models.Filter(s.file.Filter)
	if !f.Valid() {
		return models.FilterAll, nil
	}
	return f, nil
}

func (s *JSONStore) SaveFilter(f models.Filter) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Filter = int(f)
	return s.save()
}

func (s *JSONStore) GetStatistics() (models.Statistics, error) {
	if s.file == nil {
		return models.Statistics{}, fmt.Errorf("storage not loaded")
	}
	return s.file.Statistics, nil
}

func (s *JSONStore) SaveStatistics(stats models.Statistics) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Statistics = stats
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
