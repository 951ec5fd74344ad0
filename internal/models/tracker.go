package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TrackerKind distinguishes weekly habits from one-off irregular events.
// On the wire the kind is implicit: an irregular event serializes with an
// empty schedule, a habit with a non-empty one.
type TrackerKind string

const (
	KindHabit          TrackerKind = "habit"
	KindIrregularEvent TrackerKind = "irregular_event"
)

// Tracker is a single tracked activity. The ID is assigned at creation and
// never reassigned; edits replace the whole value under the same ID.
type Tracker struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    Color     `json:"color"`
	Emoji    string    `json:"emoji"`
	Pinned   bool      `json:"pinned"`
	Schedule []WeekDay `json:"schedule"`
}

// NewHabit creates a weekly-recurring tracker. The schedule must name at
// least one weekday.
func NewHabit(name, emoji string, color Color, schedule []WeekDay) (Tracker, error) {
	if strings.TrimSpace(name) == "" {
		return Tracker{}, fmt.Errorf("tracker name must not be empty")
	}
	normalized := NormalizeSchedule(schedule)
	if len(normalized) == 0 {
		return Tracker{}, fmt.Errorf("habit %q needs at least one scheduled weekday", name)
	}
	return Tracker{
		ID:       uuid.New().String(),
		Name:     name,
		Color:    color,
		Emoji:    emoji,
		Schedule: normalized,
	}, nil
}

// NewIrregularEvent creates a one-off tracker with no weekly schedule.
func NewIrregularEvent(name, emoji string, color Color) (Tracker, error) {
	if strings.TrimSpace(name) == "" {
		return Tracker{}, fmt.Errorf("tracker name must not be empty")
	}
	return Tracker{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
		Emoji: emoji,
	}, nil
}

// Kind derives the tracker kind from the schedule. A habit that somehow lost
// its schedule degrades to an irregular event instead of breaking the agenda.
func (t Tracker) Kind() TrackerKind {
	if len(t.Schedule) == 0 {
		return KindIrregularEvent
	}
	return KindHabit
}

// ScheduledOn reports whether a habit is due on the given weekday. Irregular
// events are never "scheduled"; their visibility is completion-driven.
func (t Tracker) ScheduledOn(day WeekDay) bool {
	return ScheduleContains(t.Schedule, day)
}

// TrackerCategory groups trackers under a title. A tracker belongs to
// exactly one category; moving it is a delete-and-reinsert at the storage
// layer, not a reparenting.
type TrackerCategory struct {
	Title    string    `json:"title"`
	Trackers []Tracker `json:"trackers"`
}

// PinnedCategoryTitle names the synthetic category materialized at
// presentation time from pinned trackers. It is never persisted.
const PinnedCategoryTitle = "Pinned"

// TrackerRecord is one completion event. Identity is (TrackerID, Day); a
// record carries no id of its own.
type TrackerRecord struct {
	TrackerID string `json:"tracker_id"`
	Day       Day    `json:"day"`
}

// EmojiPalette is the selection offered by the tracker creation form.
var EmojiPalette = []string{
	"🙂", "😻", "🌺", "🐶", "❤️", "😱",
	"😇", "😡", "🥶", "🤔", "🙌", "🍔",
	"🥦", "🏓", "🥇", "🎸", "🏝", "😪",
}
