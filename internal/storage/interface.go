package storage

import "github.com/ogrishin/trk/internal/models"

// Provider is the durable store behind the tracking engine. The engine
// re-reads through it after every mutation instead of trusting in-memory
// copies, so implementations are the single source of truth.
//
// Failure conventions (mirrored by both implementations):
//   - GetAllCategories returns an empty slice, not an error, on a fresh
//     store.
//   - Unparseable persisted trackers are skipped, never fatal.
//   - AddCategory with an existing title is a silent no-op.
//   - AddRecord is idempotent per (tracker, day); RemoveRecord of a missing
//     record is a silent no-op.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Categories and trackers
	GetAllCategories() ([]models.TrackerCategory, error)
	AddCategory(title string) error
	SaveTracker(categoryTitle string, tracker models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	DeleteTracker(id string) error
	TogglePinned(id string) error

	// Completion records
	GetAllRecords() ([]models.TrackerRecord, error)
	AddRecord(trackerID string, day models.Day) error
	RemoveRecord(trackerID string, day models.Day) error

	// Presentation state
	GetFilter() (models.Filter, error)
	SaveFilter(models.Filter) error
	GetStatistics() (models.Statistics, error)
	SaveStatistics(models.Statistics) error

	// Subscribe registers a callback invoked synchronously after every
	// successful tracker/category/record mutation. Filter and statistics
	// writes do not notify: the statistics service writes its snapshot from
	// inside a notification and must not retrigger itself.
	Subscribe(fn func())

	// Utils
	GetConfigPath() string
}

// notifier is the callback list shared by both store implementations.
type notifier struct {
	subscribers []func()
}

func (n *notifier) Subscribe(fn func()) {
	n.subscribers = append(n.subscribers, fn)
}

func (n *notifier) notify() {
	for _, fn := range n.subscribers {
		fn()
	}
}
