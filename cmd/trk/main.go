package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ogrishin/trk/internal/cli"
	"github.com/ogrishin/trk/internal/ledger"
	"github.com/ogrishin/trk/internal/stats"
	"github.com/ogrishin/trk/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/trk/trk.db"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize trk storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Agenda  cli.AgendaCmd  `cmd:"" help:"Show the agenda for a day."`
	Toggle  cli.ToggleCmd  `cmd:"" help:"Toggle a tracker's completion for a day."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show aggregate statistics."`
	Filter  cli.FilterCmd  `cmd:"" help:"Show or set the saved agenda filter."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Check storage health."`
	Tracker struct {
		Add    cli.TrackerAddCmd    `cmd:"" help:"Add a habit or irregular event."`
		Edit   cli.TrackerEditCmd   `cmd:"" help:"Edit an existing tracker."`
		Delete cli.TrackerDeleteCmd `cmd:"" help:"Delete a tracker and its records."`
		List   cli.TrackerListCmd   `cmd:"" help:"List all trackers."`
		Pin    cli.TrackerPinCmd    `cmd:"" help:"Pin or unpin a tracker."`
	} `cmd:"" help:"Manage trackers."`
	Category struct {
		Add  cli.CategoryAddCmd  `cmd:"" help:"Add a category."`
		List cli.CategoryListCmd `cmd:"" help:"List categories."`
	} `cmd:"" help:"Manage categories."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("trk"),
		kong.Description("Habit and event tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Storage backend is picked by file extension.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	lg := ledger.New(store)
	st := stats.NewService(store)
	st.Watch()

	appCtx := &cli.Context{
		Store:  store,
		Ledger: lg,
		Stats:  st,
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
