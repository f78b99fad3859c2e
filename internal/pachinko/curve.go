package pachinko

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/pegboard/internal/core"
)

// quadSteps is the number of chords used to measure a quadratic segment.
const quadSteps = 24

type segmentKind uint8

const (
	segLine segmentKind = iota
	segQuad
)

// segment is one drawing command of a curve.
type segment struct {
	kind segmentKind
	ctrl core.Vec // Control point, quadratic segments only
	end  core.Vec
}

// Curve is a path made of line and quadratic Bézier segments, the subset of
// SVG path data the board uses for ball trajectories.
type Curve struct {
	start core.Vec
	segs  []segment

	// Flattened polyline with cumulative arc lengths, built lazily.
	points []core.Vec
	dists  []float64
}

// NewCurve starts a curve at p (SVG "M").
func NewCurve(p core.Vec) *Curve {
	return &Curve{start: p}
}

// LineTo appends a straight segment (SVG "L").
func (c *Curve) LineTo(x, y float64) *Curve {
	c.segs = append(c.segs, segment{kind: segLine, end: core.V(x, y)})
	c.points = nil
	return c
}

// QuadTo appends a quadratic Bézier segment (SVG "Q").
func (c *Curve) QuadTo(cx, cy, x, y float64) *Curve {
	c.segs = append(c.segs, segment{kind: segQuad, ctrl: core.V(cx, cy), end: core.V(x, y)})
	c.points = nil
	return c
}

// MirrorX returns a copy of the curve reflected about the vertical axis.
func (c *Curve) MirrorX() *Curve {
	flip := func(v core.Vec) core.Vec { return core.V(-v.X, v.Y) }
	m := &Curve{start: flip(c.start), segs: make([]segment, len(c.segs))}
	for i, s := range c.segs {
		m.segs[i] = segment{kind: s.kind, ctrl: flip(s.ctrl), end: flip(s.end)}
	}
	return m
}

// Start returns the first point of the curve.
func (c *Curve) Start() core.Vec {
	return c.start
}

// End returns the last point of the curve.
func (c *Curve) End() core.Vec {
	if len(c.segs) == 0 {
		return c.start
	}
	return c.segs[len(c.segs)-1].end
}

// flatten samples the curve into a polyline.
func (c *Curve) flatten() {
	if c.points != nil {
		return
	}
	c.points = []core.Vec{c.start}
	c.dists = []float64{0}

	prev := c.start
	push := func(p core.Vec) {
		d := c.dists[len(c.dists)-1] + p.Sub(c.points[len(c.points)-1]).Len()
		c.points = append(c.points, p)
		c.dists = append(c.dists, d)
	}

	for _, s := range c.segs {
		switch s.kind {
		case segLine:
			push(s.end)
		case segQuad:
			for i := 1; i <= quadSteps; i++ {
				t := float64(i) / quadSteps
				u := 1 - t
				// B(t) = u²·P0 + 2ut·C + t²·P1
				p := prev.Scale(u * u).Add(s.ctrl.Scale(2 * u * t)).Add(s.end.Scale(t * t))
				push(p)
			}
		}
		prev = s.end
	}
}

// Length returns the approximate arc length of the curve.
func (c *Curve) Length() float64 {
	c.flatten()
	return c.dists[len(c.dists)-1]
}

// PointAt returns the point at fraction t of the curve's arc length.
// t is clamped to [0, 1].
func (c *Curve) PointAt(t float64) core.Vec {
	c.flatten()
	t = core.ClampF(t, 0, 1)

	total := c.dists[len(c.dists)-1]
	if total == 0 {
		return c.start
	}
	target := t * total

	for i := 1; i < len(c.points); i++ {
		if c.dists[i] >= target {
			span := c.dists[i] - c.dists[i-1]
			if span == 0 {
				return c.points[i]
			}
			return c.points[i-1].Lerp(c.points[i], (target-c.dists[i-1])/span)
		}
	}
	return c.End()
}

// String renders the curve as SVG path data.
func (c *Curve) String() string {
	var sb strings.Builder
	sb.WriteString("M ")
	writeVec(&sb, c.start)
	for _, s := range c.segs {
		switch s.kind {
		case segLine:
			sb.WriteString(" L ")
		case segQuad:
			sb.WriteString(" Q ")
			writeVec(&sb, s.ctrl)
			sb.WriteByte(' ')
		}
		writeVec(&sb, s.end)
	}
	return sb.String()
}

func writeVec(sb *strings.Builder, v core.Vec) {
	sb.WriteString(formatNum(v.X))
	sb.WriteByte(' ')
	sb.WriteString(formatNum(v.Y))
}

func formatNum(f float64) string {
	if f == 0 {
		f = 0 // Mirrored zeros print as "-0" otherwise
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
