package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogrishin/trk/internal/models"
)

func setupStore(t *testing.T, name string) Provider {
	t.Helper()
	tempDir := t.TempDir()

	var store Provider
	switch name {
	case "sqlite":
		store = NewSQLiteStore(filepath.Join(tempDir, "trk.db"))
	case "json":
		store = NewJSONStore(filepath.Join(tempDir, "trk.json"))
	default:
		t.Fatalf("unknown store %s", name)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize %s store: %v", name, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustHabit(t *testing.T, name string, schedule ...models.WeekDay) models.Tracker {
	t.Helper()
	habit, err := models.NewHabit(name, "🙂", models.Palette[0], schedule)
	if err != nil {
		t.Fatalf("failed to build habit: %v", err)
	}
	return habit
}

func forEachStore(t *testing.T, test func(t *testing.T, store Provider)) {
	for _, name := range []string{"sqlite", "json"} {
		t.Run(name, func(t *testing.T) {
			test(t, setupStore(t, name))
		})
	}
}

func TestFreshStoreIsEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		categories, err := store.GetAllCategories()
		if err != nil {
			t.Fatalf("GetAllCategories on fresh store failed: %v", err)
		}
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}

		records, err := store.GetAllRecords()
		if err != nil {
			t.Fatalf("GetAllRecords on fresh store failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})
}

func TestAddCategoryDuplicateIsNoop(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		if err := store.AddCategory("Health"); err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}
		if err := store.AddCategory("Health"); err != nil {
			t.Fatalf("duplicate AddCategory should be a no-op, got: %v", err)
		}

		categories, err := store.GetAllCategories()
		if err != nil {
			t.Fatalf("GetAllCategories failed: %v", err)
		}
		if len(categories) != 1 {
			t.Errorf("expected 1 category, got %d", len(categories))
		}
	})
}

func TestCategoryOrderPreserved(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		for _, title := range []string{"Health", "Work", "Home"} {
			if err := store.AddCategory(title); err != nil {
				t.Fatalf("AddCategory(%s) failed: %v", title, err)
			}
		}

		categories, err := store.GetAllCategories()
		if err != nil {
			t.Fatalf("GetAllCategories failed: %v", err)
		}
		want := []string{"Health", "Work", "Home"}
		for i, title := range want {
			if categories[i].Title != title {
				t.Errorf("categories[%d] = %s, want %s", i, categories[i].Title, title)
			}
		}
	})
}

func TestSaveTrackerUpsertAndMove(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		habit := mustHabit(t, "Morning run", models.Monday, models.Wednesday)
		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}

		// Edit in place: full replacement under the same id.
		habit.Name = "Evening run"
		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker update failed: %v", err)
		}

		got, err := store.GetTracker(habit.ID)
		if err != nil {
			t.Fatalf("GetTracker failed: %v", err)
		}
		if got.Name != "Evening run" {
			t.Errorf("expected updated name, got %s", got.Name)
		}

		// Record some history, then move to another category; the record
		// must survive the move.
		if err := store.AddRecord(habit.ID, "2025-12-29"); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
		if err := store.SaveTracker("Fitness", habit); err != nil {
			t.Fatalf("SaveTracker move failed: %v", err)
		}

		categories, err := store.GetAllCategories()
		if err != nil {
			t.Fatalf("GetAllCategories failed: %v", err)
		}
		var inHealth, inFitness int
		for _, c := range categories {
			for _, tr := range c.Trackers {
				if tr.ID != habit.ID {
					continue
				}
				switch c.Title {
				case "Health":
					inHealth++
				case "Fitness":
					inFitness++
				}
			}
		}
		if inHealth != 0 || inFitness != 1 {
			t.Errorf("tracker should live in exactly one category after move: health=%d fitness=%d", inHealth, inFitness)
		}

		records, err := store.GetAllRecords()
		if err != nil {
			t.Fatalf("GetAllRecords failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected record to survive category move, got %d records", len(records))
		}
	})
}

func TestTrackerFieldsRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		habit := mustHabit(t, "Stretch", models.Tuesday, models.Saturday)
		habit.Emoji = "🥦"
		habit.Pinned = true
		habit.Color, _ = models.ParseColor("#AD56DA")

		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}

		got, err := store.GetTracker(habit.ID)
		if err != nil {
			t.Fatalf("GetTracker failed: %v", err)
		}
		if got.Name != habit.Name || got.Emoji != habit.Emoji || !got.Pinned {
			t.Errorf("tracker fields lost in round trip: %+v", got)
		}
		if got.Color.Hex() != "#AD56DA" {
			t.Errorf("color round trip: got %s", got.Color.Hex())
		}
		if len(got.Schedule) != 2 || got.Schedule[0] != models.Tuesday || got.Schedule[1] != models.Saturday {
			t.Errorf("schedule round trip: got %v", got.Schedule)
		}
	})
}

func TestDeleteTrackerCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		habit := mustHabit(t, "Read", models.Monday)
		other := mustHabit(t, "Write", models.Tuesday)
		if err := store.SaveTracker("Habits", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}
		if err := store.SaveTracker("Habits", other); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}

		for _, day := range []models.Day{"2025-12-29", "2025-12-30"} {
			if err := store.AddRecord(habit.ID, day); err != nil {
				t.Fatalf("AddRecord failed: %v", err)
			}
		}
		if err := store.AddRecord(other.ID, "2025-12-30"); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}

		if err := store.DeleteTracker(habit.ID); err != nil {
			t.Fatalf("DeleteTracker failed: %v", err)
		}

		records, err := store.GetAllRecords()
		if err != nil {
			t.Fatalf("GetAllRecords failed: %v", err)
		}
		for _, r := range records {
			if r.TrackerID == habit.ID {
				t.Errorf("orphan record survived cascade: %+v", r)
			}
		}
		if len(records) != 1 {
			t.Errorf("expected the other tracker's record to survive, got %d records", len(records))
		}

		if _, err := store.GetTracker(habit.ID); err == nil {
			t.Error("expected GetTracker to fail after delete")
		}
	})
}

func TestAddRecordIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		habit := mustHabit(t, "Walk", models.Monday)
		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}

		for i := 0; i < 3; i++ {
			if err := store.AddRecord(habit.ID, "2025-12-29"); err != nil {
				t.Fatalf("AddRecord attempt %d failed: %v", i, err)
			}
		}

		records, err := store.GetAllRecords()
		if err != nil {
			t.Fatalf("GetAllRecords failed: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected exactly one record, got %d", len(records))
		}
	})
}

func TestRemoveMissingRecordIsNoop(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		if err := store.RemoveRecord("no-such-tracker", "2025-12-29"); err != nil {
			t.Errorf("removing a missing record should be a silent no-op, got: %v", err)
		}
	})
}

func TestTogglePinned(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		habit := mustHabit(t, "Meditate", models.Sunday)
		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}

		if err := store.TogglePinned(habit.ID); err != nil {
			t.Fatalf("TogglePinned failed: %v", err)
		}
		got, _ := store.GetTracker(habit.ID)
		if !got.Pinned {
			t.Error("expected tracker to be pinned")
		}

		if err := store.TogglePinned(habit.ID); err != nil {
			t.Fatalf("TogglePinned failed: %v", err)
		}
		got, _ = store.GetTracker(habit.ID)
		if got.Pinned {
			t.Error("expected pin to toggle off")
		}

		if err := store.TogglePinned("no-such-id"); err == nil {
			t.Error("expected error for unknown tracker")
		}
	})
}

func TestFilterPersistence(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		f, err := store.GetFilter()
		if err != nil {
			t.Fatalf("GetFilter on fresh store failed: %v", err)
		}
		if f != models.FilterAll {
			t.Errorf("fresh store should default to the all filter, got %v", f)
		}

		if err := store.SaveFilter(models.FilterIncomplete); err != nil {
			t.Fatalf("SaveFilter failed: %v", err)
		}
		f, err = store.GetFilter()
		if err != nil {
			t.Fatalf("GetFilter failed: %v", err)
		}
		if f != models.FilterIncomplete {
			t.Errorf("expected incomplete filter, got %v", f)
		}
	})
}

func TestStatisticsSnapshotPersistence(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		stats, err := store.GetStatistics()
		if err != nil {
			t.Fatalf("GetStatistics on fresh store failed: %v", err)
		}
		if !stats.IsZero() {
			t.Errorf("fresh store should have a zero snapshot, got %+v", stats)
		}

		want := models.Statistics{BestStreak: 3, PerfectDays: 1, TotalCompletions: 7, AveragePerDay: 1.5}
		if err := store.SaveStatistics(want); err != nil {
			t.Fatalf("SaveStatistics failed: %v", err)
		}

		got, err := store.GetStatistics()
		if err != nil {
			t.Fatalf("GetStatistics failed: %v", err)
		}
		if got != want {
			t.Errorf("snapshot round trip: got %+v, want %+v", got, want)
		}
	})
}

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		var calls int
		store.Subscribe(func() { calls++ })

		habit := mustHabit(t, "Run", models.Monday)
		if err := store.SaveTracker("Health", habit); err != nil {
			t.Fatalf("SaveTracker failed: %v", err)
		}
		if calls == 0 {
			t.Fatal("expected notification after SaveTracker")
		}

		before := calls
		if err := store.AddRecord(habit.ID, "2025-12-29"); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
		if calls <= before {
			t.Error("expected notification after AddRecord")
		}

		// Idempotent re-add changes nothing, so it must not notify.
		before = calls
		if err := store.AddRecord(habit.ID, "2025-12-29"); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
		if calls != before {
			t.Error("no-op AddRecord must not notify")
		}

		// Snapshot writes must not notify either; the statistics service
		// saves from inside a notification.
		if err := store.SaveStatistics(models.Statistics{BestStreak: 1}); err != nil {
			t.Fatalf("SaveStatistics failed: %v", err)
		}
		if calls != before {
			t.Error("SaveStatistics must not notify")
		}
	})
}

func TestJSONStoreSkipsCorruptTrackers(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "trk.json")

	raw := `{
		"version": 1,
		"categories": [
			{
				"title": "Health",
				"trackers": [
					{"id": "good", "name": "Run", "color": "#FD4C49", "emoji": "🙂", "schedule": [1]},
					{"id": "bad-color", "name": "Swim", "color": "not-a-color", "emoji": "🙂", "schedule": [1]},
					{"id": "bad-schedule", "name": "Bike", "color": "#FD4C49", "emoji": "🙂", "schedule": [9]}
				]
			}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	categories, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories failed: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	if len(categories[0].Trackers) != 1 || categories[0].Trackers[0].ID != "good" {
		t.Errorf("expected only the parseable tracker to survive, got %+v", categories[0].Trackers)
	}
}

func TestSQLiteStoreSkipsCorruptTrackers(t *testing.T) {
	store := setupStore(t, "sqlite").(*SQLiteStore)

	habit := mustHabit(t, "Run", models.Monday)
	if err := store.SaveTracker("Health", habit); err != nil {
		t.Fatalf("SaveTracker failed: %v", err)
	}

	// Corrupt a second row directly, bypassing the write path.
	if _, err := store.db.Exec(`
		INSERT INTO trackers (id, category_title, name, color, emoji, pinned, schedule)
		VALUES ('bad', 'Health', 'Broken', 'nope', '🙂', 0, 'not-json')`); err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	categories, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories failed: %v", err)
	}
	if len(categories) != 1 || len(categories[0].Trackers) != 1 {
		t.Fatalf("expected the corrupt row to be skipped, got %+v", categories)
	}
	if categories[0].Trackers[0].ID != habit.ID {
		t.Errorf("wrong surviving tracker: %s", categories[0].Trackers[0].ID)
	}
}

func TestLoadBeforeInitFails(t *testing.T) {
	tempDir := t.TempDir()

	for _, store := range []Provider{
		NewSQLiteStore(filepath.Join(tempDir, "missing.db")),
		NewJSONStore(filepath.Join(tempDir, "missing.json")),
	} {
		if err := store.Load(); err == nil {
			t.Errorf("%T: expected Load to fail before Init", store)
		}
	}
}
