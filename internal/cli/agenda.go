package cli

import (
	"fmt"

	"github.com/ogrishin/trk/internal/models"
)

type AgendaCmd struct {
	Date   string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	Filter string `short:"f" help:"Override the saved filter (all|today|completed|incomplete)."`
	Search string `short:"s" help:"Case-insensitive name search."`
}

func (c *AgendaCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	filter, err := ctx.Store.GetFilter()
	if err != nil {
		return err
	}
	if c.Filter != "" {
		filter, err = models.ParseFilter(c.Filter)
		if err != nil {
			return err
		}
	}

	sections, day, err := buildAgenda(ctx, day, filter, c.Search)
	if err != nil {
		return err
	}

	weekdayName := ""
	if wd, ok := day.WeekDay(); ok {
		weekdayName = " (" + wd.String() + ")"
	}
	fmt.Printf("Agenda for %s%s, filter: %s\n\n", day, weekdayName, filter)

	if len(sections) == 0 {
		fmt.Println("  What shall we track?")
		return nil
	}

	for _, section := range sections {
		fmt.Printf("%s:\n", section.Title)
		for _, tracker := range section.Trackers {
			completed, err := ctx.Ledger.CompletedOn(tracker.ID, day)
			if err != nil {
				return err
			}
			daysDone, err := ctx.Ledger.CompletionCount(tracker.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n", formatTrackerLine(tracker, completed, daysDone))
		}
		fmt.Println()
	}

	return nil
}
