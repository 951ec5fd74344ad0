package cli

import (
	"fmt"
	"strings"
)

type TrackerDeleteCmd struct {
	Tracker string `arg:"" help:"Tracker id, id prefix, or name."`
	Force   bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *TrackerDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker, _, err := findTracker(ctx.Store, c.Tracker)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete %q (%s) and all its completions? [y/N] ", tracker.Name, shortID(tracker.ID))
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Store.DeleteTracker(tracker.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted %q\n", tracker.Name)
	return nil
}
