package storage

import "github.com/vovakirdan/pegboard/internal/pachinko"

// RunFromSummary converts a finished board run into a record for SaveRun.
func RunFromSummary(layoutID string, sum pachinko.RunSummary) RunRecord {
	r := RunRecord{
		LayoutID:   layoutID,
		Collected:  pachinko.CollectedString(sum.Collected),
		HaltReason: sum.Halt.String(),
		Hops:       sum.Hops,
	}
	for _, c := range sum.Collected {
		if c == pachinko.Red {
			r.RedCount++
		} else {
			r.BlueCount++
		}
	}
	return r
}
