package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snapshot, err := ctx.Stats.Current()
	if err != nil {
		return err
	}

	if snapshot.IsZero() {
		fmt.Println("Nothing to analyze yet")
		return nil
	}

	fmt.Printf("Best streak:        %d\n", snapshot.BestStreak)
	fmt.Printf("Perfect days:       %d\n", snapshot.PerfectDays)
	fmt.Printf("Trackers completed: %d\n", snapshot.TotalCompletions)
	fmt.Printf("Average per day:    %.2f\n", snapshot.AveragePerDay)
	return nil
}
