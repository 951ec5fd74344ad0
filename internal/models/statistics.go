package models

// Statistics is the cached snapshot of the aggregate figures. It is
// recomputed from the full ledger and overwritten on every mutation, so
// reads never pay for a scan.
type Statistics struct {
	BestStreak       int     `json:"best_streak"`
	PerfectDays      int     `json:"perfect_days"`
	TotalCompletions int     `json:"total_completions"`
	AveragePerDay    float64 `json:"average_per_day"`
}

// IsZero distinguishes "nothing tracked yet" from real figures. An all-zero
// snapshot renders as "no data", not as a row of zeros.
func (s Statistics) IsZero() bool {
	return s.BestStreak == 0 && s.PerfectDays == 0 && s.TotalCompletions == 0 && s.AveragePerDay == 0
}
