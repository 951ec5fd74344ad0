package cli

import (
	"fmt"

	"github.com/ogrishin/trk/internal/models"
)

type FilterCmd struct {
	Value string `arg:"" optional:"" help:"Filter to select (all|today|completed|incomplete). Omit to show the current one."`
}

func (c *FilterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Value == "" {
		current, err := ctx.Store.GetFilter()
		if err != nil {
			return err
		}
		fmt.Printf("Current filter: %s\n", current)
		return nil
	}

	filter, err := models.ParseFilter(c.Value)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveFilter(filter); err != nil {
		return err
	}
	fmt.Printf("Filter set to %s\n", filter)
	return nil
}
