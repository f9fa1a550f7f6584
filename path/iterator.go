package path

import(
	"github.com/skyloom/wayline/frame"
)

// PointIterator walks a curve's samples in order. Restartable: Reset
// rewinds to the first point, so one renderer can make repeated passes
// without refitting the curve. The usual loop:
//
//	it := curve.Iter()
//	for it.Iterate() {
//		pt := it.Point()
//	}
type PointIterator struct {
	pts []frame.Vec3
	i    int
	val  frame.Vec3
}

func (c *Curve)Iter() *PointIterator {
	return &PointIterator{pts: c.pts}
}

func (it *PointIterator)Iterate() bool {
	if it.i >= len(it.pts) { return false }
	it.val = it.pts[it.i]
	it.i++
	return true
}

func (it *PointIterator)Point() frame.Vec3 { return it.val }

func (it *PointIterator)Reset() { it.i = 0 }
