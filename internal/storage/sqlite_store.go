package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/ogrishin/trk/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
	title    TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS trackers (
	id             TEXT PRIMARY KEY,
	category_title TEXT NOT NULL REFERENCES categories(title),
	name           TEXT NOT NULL,
	color          TEXT NOT NULL,
	emoji          TEXT NOT NULL,
	pinned         INTEGER NOT NULL DEFAULT 0,
	schedule       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	tracker_id TEXT NOT NULL REFERENCES trackers(id) ON DELETE CASCADE,
	day        TEXT NOT NULL,
	PRIMARY KEY (tracker_id, day)
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore is the default Provider backed by a local SQLite database.
type SQLiteStore struct {
	notifier
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'trk init' first")
	}

	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetAllCategories() ([]models.TrackerCategory, error) {
	rows, err := s.db.Query("SELECT title FROM categories ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.TrackerCategory, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		categories = append(categories, models.TrackerCategory{Title: title})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		trackers, err := s.trackersInCategory(categories[i].Title)
		if err != nil {
			return nil, err
		}
		categories[i].Trackers = trackers
	}

	return categories, nil
}

func (s *SQLiteStore) trackersInCategory(title string) ([]models.Tracker, error) {
	rows, err := s.db.Query(`
		SELECT id, name, color, emoji, pinned, schedule
		FROM trackers WHERE category_title = ? ORDER BY rowid`, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trackers []models.Tracker
	for rows.Next() {
		tracker, err := scanTracker(rows)
		if err != nil {
			// Unparseable rows are skipped, never fatal.
			continue
		}
		trackers = append(trackers, tracker)
	}
	return trackers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTracker(row rowScanner) (models.Tracker, error) {
	var t models.Tracker
	var colorHex, scheduleJSON string
	var pinned bool

	if err := row.Scan(&t.ID, &t.Name, &colorHex, &t.Emoji, &pinned, &scheduleJSON); err != nil {
		return models.Tracker{}, err
	}

	color, err := models.ParseColor(colorHex)
	if err != nil {
		return models.Tracker{}, err
	}

	var rawSchedule []int
	if err := json.Unmarshal([]byte(scheduleJSON), &rawSchedule); err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %s has unparseable schedule: %w", t.ID, err)
	}
	var schedule []models.WeekDay
	for _, raw := range rawSchedule {
		wd := models.WeekDay(raw)
		if !wd.Valid() {
			return models.Tracker{}, fmt.Errorf("tracker %s has invalid weekday %d", t.ID, raw)
		}
		schedule = append(schedule, wd)
	}

	t.Color = color
	t.Pinned = pinned
	t.Schedule = models.NormalizeSchedule(schedule)
	return t, nil
}

func (s *SQLiteStore) AddCategory(title string) error {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO categories (title, position)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories))`, title)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Duplicate title: silent no-op, no notification.
		return nil
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) SaveTracker(categoryTitle string, tracker models.Tracker) error {
	scheduleJSON, err := json.Marshal(scheduleInts(tracker.Schedule))
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO categories (title, position)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories))`, categoryTitle); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO trackers (id, category_title, name, color, emoji, pinned, schedule)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category_title = excluded.category_title,
			name = excluded.name,
			color = excluded.color,
			emoji = excluded.emoji,
			pinned = excluded.pinned,
			schedule = excluded.schedule`,
		tracker.ID, categoryTitle, tracker.Name, tracker.Color.Hex(),
		tracker.Emoji, tracker.Pinned, string(scheduleJSON)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func scheduleInts(schedule []models.WeekDay) []int {
	out := make([]int, 0, len(schedule))
	for _, wd := range schedule {
		out = append(out, int(wd))
	}
	return out
}

func (s *SQLiteStore) GetTracker(id string) (models.Tracker, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, emoji, pinned, schedule
		FROM trackers WHERE id = ?`, id)

	tracker, err := scanTracker(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Tracker{}, fmt.Errorf("tracker not found: %s", id)
		}
		return models.Tracker{}, err
	}
	return tracker, nil
}

func (s *SQLiteStore) DeleteTracker(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Cascade explicitly so the invariant holds even on databases created
	// before the foreign key pragma was in place.
	if _, err := tx.Exec("DELETE FROM records WHERE tracker_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM trackers WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tracker not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) TogglePinned(id string) error {
	res, err := s.db.Exec("UPDATE trackers SET pinned = NOT pinned WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tracker not found: %s", id)
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) GetAllRecords() ([]models.TrackerRecord, error) {
	rows, err := s.db.Query("SELECT tracker_id, day FROM records ORDER BY day, tracker_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TrackerRecord
	for rows.Next() {
		var r models.TrackerRecord
		if err := rows.Scan(&r.TrackerID, &r.Day); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) AddRecord(trackerID string, day models.Day) error {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO records (tracker_id, day) VALUES (?, ?)",
		trackerID, string(day))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Already recorded for this day: idempotent no-op.
		return nil
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) RemoveRecord(trackerID string, day models.Day) error {
	res, err := s.db.Exec(
		"DELETE FROM records WHERE tracker_id = ? AND day = ?",
		trackerID, string(day))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Nothing to remove: silent no-op.
		return nil
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) getSetting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) setSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

func (s *SQLiteStore) GetFilter() (models.Filter, error) {
	value, ok, err := s.getSetting("filter")
	if err != nil {
		return 0, err
	}
	if !ok {
		return models.FilterAll, nil
	}
	ordinal, err := strconv.Atoi(value)
	if err != nil {
		return models.FilterAll, nil
	}
	f := models.Filter(ordinal)
	if !f.Valid() {
		return models.FilterAll, nil
	}
	return f, nil
}

func (s *SQLiteStore) SaveFilter(f models.Filter) error {
	return s.setSetting("filter", strconv.Itoa(int(f)))
}

func (s *SQLiteStore) GetStatistics() (models.Statistics, error) {
	var stats models.Statistics

	intFields := map[string]*int{
		"best_streak":       &stats.BestStreak,
		"perfect_days":      &stats.PerfectDays,
		"total_completions": &stats.TotalCompletions,
	}
	for key, dest := range intFields {
		value, ok, err := s.getSetting(key)
		if err != nil {
			return models.Statistics{}, err
		}
		if !ok {
			continue
		}
		if parsed, err := strconv.Atoi(value); err == nil {
			*dest = parsed
		}
	}

	value, ok, err := s.getSetting("average_per_day")
	if err != nil {
		return models.Statistics{}, err
	}
	if ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			stats.AveragePerDay = parsed
		}
	}

	return stats, nil
}

func (s *SQLiteStore) SaveStatistics(stats models.Statistics) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := map[string]string{
		"best_streak":       strconv.Itoa(stats.BestStreak),
		"perfect_days":      strconv.Itoa(stats.PerfectDays),
		"total_completions": strconv.Itoa(stats.TotalCompletions),
		"average_per_day":   strconv.FormatFloat(stats.AveragePerDay, 'f', -1, 64),
	}
	for key, value := range fields {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
