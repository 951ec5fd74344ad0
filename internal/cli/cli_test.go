package cli

import (
	"path/filepath"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/ogrishin/trk/internal/ledger"
	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/stats"
	"github.com/ogrishin/trk/internal/storage"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "trk.json")

	store := storage.NewJSONStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Context{
		Store:  store,
		Ledger: ledger.New(store),
		Stats:  stats.NewService(store),
	}
}

func mustTracker(t *testing.T, ctx *Context, category, name string, schedule []models.WeekDay) models.Tracker {
	t.Helper()
	var (
		tracker models.Tracker
		err     error
	)
	if len(schedule) == 0 {
		tracker, err = models.NewIrregularEvent(name, "🙂", models.Palette[0])
	} else {
		tracker, err = models.NewHabit(name, "🙂", models.Palette[0], schedule)
	}
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	if err := ctx.Store.SaveTracker(category, tracker); err != nil {
		t.Fatalf("failed to save tracker: %v", err)
	}
	return tracker
}

func TestFindTrackerByIDPrefixAndName(t *testing.T) {
	ctx := setupTestContext(t)
	water := mustTracker(t, ctx, "Health", "Drink water", []models.WeekDay{models.Monday})
	mustTracker(t, ctx, "Health", "Walk", []models.WeekDay{models.Tuesday})

	got, category, err := findTracker(ctx.Store, water.ID)
	if err != nil {
		t.Fatalf("lookup by full id failed: %v", err)
	}
	if got.ID != water.ID || category != "Health" {
		t.Errorf("got tracker %q in %q, want %q in Health", got.ID, category, water.ID)
	}

	got, _, err = findTracker(ctx.Store, water.ID[:8])
	if err != nil {
		t.Fatalf("lookup by id prefix failed: %v", err)
	}
	if got.ID != water.ID {
		t.Errorf("prefix lookup returned %q, want %q", got.ID, water.ID)
	}

	got, _, err = findTracker(ctx.Store, "drink water")
	if err != nil {
		t.Fatalf("lookup by name failed: %v", err)
	}
	if got.ID != water.ID {
		t.Errorf("name lookup returned %q, want %q", got.ID, water.ID)
	}
}

func TestFindTrackerAmbiguousAndMissing(t *testing.T) {
	ctx := setupTestContext(t)
	mustTracker(t, ctx, "Health", "Run", []models.WeekDay{models.Monday})
	mustTracker(t, ctx, "Work", "Run", []models.WeekDay{models.Tuesday})

	if _, _, err := findTracker(ctx.Store, "run"); err == nil {
		t.Error("expected an error for an ambiguous name")
	}
	if _, _, err := findTracker(ctx.Store, "nope"); err == nil {
		t.Error("expected an error for an unknown reference")
	}
}

func TestResolveDay(t *testing.T) {
	day, err := resolveDay("2025-12-31")
	if err != nil {
		t.Fatalf("failed to resolve explicit date: %v", err)
	}
	if day != models.Day("2025-12-31") {
		t.Errorf("got %s, want 2025-12-31", day)
	}

	if _, err := resolveDay("today"); err != nil {
		t.Errorf("'today' should resolve: %v", err)
	}
	if _, err := resolveDay("31/12/2025"); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestTrackerAddCmdValidate(t *testing.T) {
	cmd := &TrackerAddCmd{Days: "mon", Event: true}
	if err := cmd.Validate(); err == nil {
		t.Error("expected --event with --days to be rejected")
	}

	cmd = &TrackerAddCmd{}
	if err := cmd.Validate(); err == nil {
		t.Error("expected a habit without --days to be rejected")
	}

	cmd = &TrackerAddCmd{Event: true}
	if err := cmd.Validate(); err != nil {
		t.Errorf("plain --event should validate: %v", err)
	}
}

func TestToggleCmdRoundTrip(t *testing.T) {
	ctx := setupTestContext(t)
	tracker := mustTracker(t, ctx, "Health", "Meditate", []models.WeekDay{models.Wednesday})

	cmd := &ToggleCmd{Tracker: tracker.Name, Date: "today"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		t.Fatalf("failed to read records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after toggle, want 1", len(records))
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	records, _ = ctx.Store.GetAllRecords()
	if len(records) != 0 {
		t.Errorf("got %d records after undo, want 0", len(records))
	}
}

// TestFullWorkflow drives the commands the way a user would across a few
// days: create trackers, complete them, check the numbers.
func TestFullWorkflow(t *testing.T) {
	ctx := setupTestContext(t)
	ctx.Ledger.Now = func() time.Time {
		return time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)
	}
	ctx.Stats.Watch()

	add := &TrackerAddCmd{Name: "Morning run", Days: "mon,wed,fri", Emoji: "🙂", Category: "Health"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("tracker add failed: %v", err)
	}
	addEvent := &TrackerAddCmd{Name: "Dentist", Event: true, Emoji: "🙂", Category: "Errands"}
	if err := addEvent.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	run, _, err := findTracker(ctx.Store, "Morning run")
	if err != nil {
		t.Fatalf("failed to find habit: %v", err)
	}
	dentist, _, err := findTracker(ctx.Store, "Dentist")
	if err != nil {
		t.Fatalf("failed to find event: %v", err)
	}
	if dentist.Kind() != models.KindIrregularEvent {
		t.Errorf("got kind %s, want %s", dentist.Kind(), models.KindIrregularEvent)
	}

	// 2025-12-29 is a Monday.
	for _, day := range []models.Day{"2025-12-29", "2025-12-30", "2025-12-31"} {
		if _, err := ctx.Ledger.Toggle(run.ID, day); err != nil {
			t.Fatalf("toggle on %s failed: %v", day, err)
		}
	}
	if _, err := ctx.Ledger.Toggle(dentist.ID, models.Day("2025-12-30")); err != nil {
		t.Fatalf("event toggle failed: %v", err)
	}

	snapshot, err := ctx.Stats.Current()
	if err != nil {
		t.Fatalf("failed to read statistics: %v", err)
	}
	if snapshot.BestStreak != 3 {
		t.Errorf("got best streak %d, want 3", snapshot.BestStreak)
	}
	if snapshot.TotalCompletions != 4 {
		t.Errorf("got %d total completions, want 4", snapshot.TotalCompletions)
	}

	if err := (&TrackerPinCmd{Tracker: run.ID}).Run(ctx); err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	sections, _, err := buildAgenda(ctx, models.Day("2025-12-29"), models.FilterAll, "")
	if err != nil {
		t.Fatalf("agenda build failed: %v", err)
	}
	if len(sections) == 0 || sections[0].Title != models.PinnedCategoryTitle {
		t.Fatalf("expected the pinned section first, got %+v", sections)
	}

	del := &TrackerDeleteCmd{Tracker: run.ID, Force: true}
	if err := del.Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	records, _ := ctx.Store.GetAllRecords()
	for _, r := range records {
		if r.TrackerID == run.ID {
			t.Errorf("record %v survived tracker deletion", r)
		}
	}
}

func TestDoctorCmdHealthyStore(t *testing.T) {
	ctx := setupTestContext(t)
	tracker := mustTracker(t, ctx, "Health", "Stretch", []models.WeekDay{models.Monday})
	if err := ctx.Store.AddRecord(tracker.ID, models.Day("2025-12-29")); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}
	if err := ctx.Stats.Refresh(); err != nil {
		t.Fatalf("failed to refresh statistics: %v", err)
	}

	listProcessesFunc = func() ([]ps.Process, error) { return nil, nil }
	t.Cleanup(func() { listProcessesFunc = ps.Processes })

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("healthy store should pass doctor: %v", err)
	}
}
