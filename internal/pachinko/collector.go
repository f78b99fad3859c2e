package pachinko

// Collector layout constants in board units.
const (
	CollectorHeight   = 1.0
	CollectorMaxShown = 30
)

// Collector keeps the balls that reached the bottom in arrival order.
type Collector struct {
	balls []Ball
}

// CollectBall appends a ball.
func (c *Collector) CollectBall(b Ball) {
	c.balls = append(c.balls, b)
}

// Balls returns a copy of the collected balls, oldest first.
func (c *Collector) Balls() []Ball {
	out := make([]Ball, len(c.balls))
	copy(out, c.balls)
	return out
}

// Colors returns the colors of the collected balls, oldest first.
func (c *Collector) Colors() []BallColor {
	out := make([]BallColor, len(c.balls))
	for i, b := range c.balls {
		out[i] = b.Color
	}
	return out
}

// Len returns the number of collected balls.
func (c *Collector) Len() int { return len(c.balls) }

// IsEmpty reports whether no ball has been collected.
func (c *Collector) IsEmpty() bool { return len(c.balls) == 0 }

// Clear drops all collected balls.
func (c *Collector) Clear() { c.balls = c.balls[:0] }

// Counts returns the number of blue and red balls collected.
func (c *Collector) Counts() (blue, red int) {
	for _, b := range c.balls {
		if b.Color == Red {
			red++
		} else {
			blue++
		}
	}
	return blue, red
}
