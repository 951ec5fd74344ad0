package cli

import (
	"fmt"

	"github.com/ogrishin/trk/internal/models"
)

type TrackerListCmd struct{}

func (c *TrackerListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.TrackerID]++
	}

	total := 0
	for _, category := range categories {
		if len(category.Trackers) == 0 {
			continue
		}
		fmt.Println(category.Title)
		for _, tracker := range category.Trackers {
			pin := " "
			if tracker.Pinned {
				pin = "*"
			}
			fmt.Printf(" %s %s %s  %s  %d days (%s)\n",
				pin, tracker.Emoji, tracker.Name,
				models.FormatSchedule(tracker.Schedule),
				counts[tracker.ID], shortID(tracker.ID))
			total++
		}
	}
	if total == 0 {
		fmt.Println("What shall we track?")
	}
	return nil
}
