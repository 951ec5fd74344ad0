package cli

import "fmt"

type TrackerPinCmd struct {
	Tracker string `arg:"" help:"Tracker id, id prefix, or name."`
}

func (c *TrackerPinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker, _, err := findTracker(ctx.Store, c.Tracker)
	if err != nil {
		return err
	}

	if err := ctx.Store.TogglePinned(tracker.ID); err != nil {
		return err
	}

	if tracker.Pinned {
		fmt.Printf("Unpinned %q\n", tracker.Name)
	} else {
		fmt.Printf("Pinned %q\n", tracker.Name)
	}
	return nil
}
