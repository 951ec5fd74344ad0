package cli

import "fmt"

type ToggleCmd struct {
	Tracker string `arg:"" help:"Tracker id, id prefix, or exact name."`
	Date    string `arg:"" optional:"" help:"Date to toggle (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker, _, err := findTracker(ctx.Store, c.Tracker)
	if err != nil {
		return err
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	result, err := ctx.Ledger.Toggle(tracker.ID, day)
	if err != nil {
		return err
	}

	switch {
	case !result.Changed:
		fmt.Printf("Nothing recorded: %s is in the future\n", day)
	case result.Completed:
		fmt.Printf("Completed %q on %s\n", tracker.Name, day)
	default:
		fmt.Printf("Undid completion of %q on %s\n", tracker.Name, day)
	}

	return nil
}
