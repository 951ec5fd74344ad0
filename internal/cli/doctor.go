package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/ogrishin/trk/internal/models"
	"github.com/ogrishin/trk/internal/stats"
)

var listProcessesFunc = ps.Processes

type DoctorCmd struct{}

// Run checks the health of the storage file: reachability, orphaned
// completion records, a stale statistics snapshot, and other trk processes
// that might be writing concurrently.
func (c *DoctorCmd) Run(ctx *Context) error {
	problems := 0

	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("  FAIL  cannot load storage: %v\n", err)
		return fmt.Errorf("doctor found 1 problem")
	}
	fmt.Println("  ok    storage loads")

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}

	known := make(map[string]bool)
	var trackers int
	for _, category := range categories {
		for _, tracker := range category.Trackers {
			known[tracker.ID] = true
			trackers++
		}
	}
	orphans := 0
	for _, record := range records {
		if !known[record.TrackerID] {
			orphans++
		}
	}
	if orphans > 0 {
		fmt.Printf("  FAIL  %d completion record(s) reference deleted trackers\n", orphans)
		problems++
	} else {
		fmt.Printf("  ok    %d tracker(s), %d record(s), no orphans\n", trackers, len(records))
	}

	saved, err := ctx.Store.GetStatistics()
	if err != nil {
		return err
	}
	var all []models.Tracker
	for _, category := range categories {
		all = append(all, category.Trackers...)
	}
	fresh := stats.Compute(all, records)
	if !snapshotsMatch(saved, fresh) {
		fmt.Printf("  warn  statistics snapshot is stale (saved %+v, recomputed %+v)\n", saved, fresh)
		problems++
	} else {
		fmt.Println("  ok    statistics snapshot matches the ledger")
	}

	others, err := otherTrkProcesses()
	if err != nil {
		fmt.Printf("  warn  could not inspect the process table: %v\n", err)
	} else if len(others) > 0 {
		fmt.Printf("  warn  %d other trk process(es) running (pids %v); storage assumes a single writer\n", len(others), others)
		problems++
	} else {
		fmt.Println("  ok    no other trk processes")
	}

	if problems > 0 {
		return fmt.Errorf("doctor found %d problem(s)", problems)
	}
	fmt.Println("All good")
	return nil
}

// snapshotsMatch tolerates float drift in the average, which is rounded by
// some storage backends.
func snapshotsMatch(a, b models.Statistics) bool {
	return a.BestStreak == b.BestStreak &&
		a.PerfectDays == b.PerfectDays &&
		a.TotalCompletions == b.TotalCompletions &&
		math.Abs(a.AveragePerDay-b.AveragePerDay) < 0.01
}

func otherTrkProcesses() ([]int, error) {
	procs, err := listProcessesFunc()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := p.Executable()
		if name == "trk" || strings.HasPrefix(name, "trk.") {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
