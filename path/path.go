// Package path fits a smooth curve through a flight's projected
// waypoints, approximating the track a curved-turn mission actually
// flies. The fit is a centripetal Catmull-Rom spline through the
// ordered positions, open at both ends (no loop closure).
package path

import(
	"math"

	"github.com/skyloom/wayline/frame"
)

const(
	// Samples per waypoint leg. The whole-curve sample count grows in
	// proportion to the waypoint count, until MaxPoints; past that, legs
	// share the budget.
	SamplesPerSegment = 32
	MaxPoints         = 2048

	// Knot spacing floor, so coincident waypoints can't zero a knot
	// interval and blow up the basis ratios.
	minKnot = 1e-9
)

// Curve is a fitted, sampled flight path. The zero value is the empty
// curve, which is what a zero- or one-waypoint flight gets.
type Curve struct {
	pts []frame.Vec3
}

// {{{ Build

// Build fits and samples the curve. Fewer than two positions yield an
// empty curve: a single waypoint renders as a point, not a path.
func Build(positions []frame.Vec3) *Curve {
	if len(positions) < 2 {
		return &Curve{}
	}

	nSeg := len(positions) - 1
	per := SamplesPerSegment
	if nSeg*per+1 > MaxPoints {
		per = (MaxPoints - 1) / nSeg
		if per < 1 { per = 1 }
	}

	pts := make([]frame.Vec3, 0, nSeg*per+1)
	for i := 0; i < nSeg; i++ {
		// Phantom endpoints: the first and last control points stand in
		// for their own missing neighbors.
		p1,p2 := positions[i], positions[i+1]
		p0,p3 := p1, p2
		if i > 0        { p0 = positions[i-1] }
		if i+2 <= nSeg  { p3 = positions[i+2] }

		for s := 0; s < per; s++ {
			pts = append(pts, splinePoint(p0, p1, p2, p3, float64(s)/float64(per)))
		}
	}
	pts = append(pts, positions[nSeg])

	return &Curve{pts: pts}
}

// }}}

func (c *Curve)Points() []frame.Vec3 { return c.pts }
func (c *Curve)IsEmpty() bool        { return len(c.pts) == 0 }

// {{{ splinePoint

// splinePoint evaluates the centripetal Catmull-Rom basis for the
// segment p1..p2, at parameter t in [0,1). Barry-Goldman pyramidal
// formulation: three lerps down to two down to one.
func splinePoint(p0, p1, p2, p3 frame.Vec3, t float64) frame.Vec3 {
	t0 := 0.0
	t1 := t0 + knot(p0, p1)
	t2 := t1 + knot(p1, p2)
	t3 := t2 + knot(p2, p3)

	tt := t1 + (t2-t1)*t

	a1 := p0.Lerp(p1, (tt-t0)/(t1-t0))
	a2 := p1.Lerp(p2, (tt-t1)/(t2-t1))
	a3 := p2.Lerp(p3, (tt-t2)/(t3-t2))

	b1 := a1.Lerp(a2, (tt-t0)/(t2-t0))
	b2 := a2.Lerp(a3, (tt-t1)/(t3-t1))

	return b1.Lerp(b2, (tt-t1)/(t2-t1))
}

// knot returns the centripetal (alpha=0.5) knot interval: the square
// root of the chord length.
func knot(p, q frame.Vec3) float64 {
	k := math.Sqrt(p.Dist(q))
	if k < minKnot { k = minKnot }
	return k
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
