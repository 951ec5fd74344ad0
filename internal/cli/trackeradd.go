package cli

import (
	"fmt"
	"hash/fnv"

	"github.com/ogrishin/trk/internal/models"
)

type TrackerAddCmd struct {
	Name     string `arg:"" help:"Tracker name."`
	Days     string `short:"d" help:"Comma-separated weekdays for a habit (e.g. mon,wed,fri). Omit for an irregular event."`
	Event    bool   `short:"e" help:"Create an irregular (one-off) event."`
	Emoji    string `help:"Display emoji." default:"🙂"`
	Color    string `short:"c" help:"RGB hex color (e.g. #FD4C49). Defaults to a palette color."`
	Category string `short:"C" help:"Category title." default:"Habits"`
	Pin      bool   `short:"p" help:"Pin the new tracker."`
}

func (c *TrackerAddCmd) Validate() error {
	if c.Event && c.Days != "" {
		return fmt.Errorf("an irregular event has no weekly schedule; drop either --event or --days")
	}
	if !c.Event && c.Days == "" {
		return fmt.Errorf("a habit needs --days, or pass --event for a one-off")
	}
	return nil
}

func (c *TrackerAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	color, err := pickColor(c.Color, c.Name)
	if err != nil {
		return err
	}

	var tracker models.Tracker
	if c.Event {
		tracker, err = models.NewIrregularEvent(c.Name, c.Emoji, color)
	} else {
		var schedule []models.WeekDay
		schedule, err = models.ParseSchedule(c.Days)
		if err != nil {
			return err
		}
		tracker, err = models.NewHabit(c.Name, c.Emoji, color, schedule)
	}
	if err != nil {
		return err
	}
	tracker.Pinned = c.Pin

	if err := ctx.Store.SaveTracker(c.Category, tracker); err != nil {
		return err
	}

	fmt.Printf("Added %s %q (%s) to %s\n", tracker.Kind(), tracker.Name, shortID(tracker.ID), c.Category)
	return nil
}

// pickColor parses an explicit color or derives a stable palette color from
// the name, so re-created trackers keep their look.
func pickColor(explicit, name string) (models.Color, error) {
	if explicit != "" {
		return models.ParseColor(explicit)
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return models.Palette[int(h.Sum32())%len(models.Palette)], nil
}
