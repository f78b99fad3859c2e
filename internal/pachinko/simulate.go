package pachinko

import "time"

// RunSummary is the outcome of a headless run.
type RunSummary struct {
	Hops      int
	Collected []BallColor
	Halt      HaltReason
	Completed bool // False when the hop limit was reached first
}

// Simulate starts the board and advances it hop by hop until it halts or
// maxHops moves have been made. The board's clock is not consulted. Each
// collection is passed to onCollect when it is non-nil.
func Simulate(b *Board, maxHops int, onCollect func(Ball)) RunSummary {
	step := b.AnimationDuration() + time.Nanosecond

	b.Start()
	for b.Running() && b.Hops() < maxHops {
		res := b.Advance(step)
		if res.Collected != nil && onCollect != nil {
			onCollect(*res.Collected)
		}
	}

	return Summarize(b)
}

// Summarize reports the board's progress since its last reset.
func Summarize(b *Board) RunSummary {
	return RunSummary{
		Hops:      b.Hops(),
		Collected: b.Collector().Colors(),
		Halt:      b.HaltReason(),
		Completed: !b.Running(),
	}
}

// CollectedString encodes a collected sequence as one letter per ball,
// B for blue and R for red.
func CollectedString(colors []BallColor) string {
	buf := make([]byte, len(colors))
	for i, c := range colors {
		if c == Red {
			buf[i] = 'R'
		} else {
			buf[i] = 'B'
		}
	}
	return string(buf)
}
