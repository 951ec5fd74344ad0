package cli

import (
	"fmt"

	"github.com/ogrishin/trk/internal/models"
)

type TrackerEditCmd struct {
	Tracker  string `arg:"" help:"Tracker id, id prefix, or name."`
	Name     string `help:"New name."`
	Days     string `short:"d" help:"New comma-separated weekly schedule. Pass 'none' to turn the tracker into an irregular event."`
	Emoji    string `help:"New emoji."`
	Color    string `short:"c" help:"New RGB hex color."`
	Category string `short:"C" help:"Move the tracker to this category."`
}

func (c *TrackerEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker, categoryTitle, err := findTracker(ctx.Store, c.Tracker)
	if err != nil {
		return err
	}

	if c.Name != "" {
		tracker.Name = c.Name
	}
	if c.Emoji != "" {
		tracker.Emoji = c.Emoji
	}
	if c.Color != "" {
		color, err := models.ParseColor(c.Color)
		if err != nil {
			return err
		}
		tracker.Color = color
	}
	switch c.Days {
	case "":
	case "none":
		tracker.Schedule = nil
	default:
		schedule, err := models.ParseSchedule(c.Days)
		if err != nil {
			return err
		}
		tracker.Schedule = models.NormalizeSchedule(schedule)
	}
	if c.Category != "" {
		categoryTitle = c.Category
	}

	if err := ctx.Store.SaveTracker(categoryTitle, tracker); err != nil {
		return err
	}

	fmt.Printf("Updated %q (%s)\n", tracker.Name, shortID(tracker.ID))
	return nil
}
