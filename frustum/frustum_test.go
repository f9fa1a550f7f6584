package frustum

import(
	"math"
	"testing"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
)

func sampleAt(pos frame.Vec3, pitchDeg, headingDeg *float64) frame.Sample {
	return frame.Sample{
		Waypoint: wayline.Waypoint{
			Latlong:     geo.Latlong{Lat: 47.85, Long: -114.26},
			GimbalPitch: pitchDeg,
			HeadingDeg:  headingDeg,
		},
		Pos: pos,
	}
}

func baseCenter(w Wireframe) frame.Vec3 {
	// The last four segments are the base loop; average their first
	// endpoints to get the base center.
	c := frame.Vec3{}
	for _,seg := range w.Segments[4:] {
		c = c.Add(seg[0])
	}
	return c.Scale(0.25)
}

// A nil pitch means nadir: the base hangs straight below the apex.
func TestDefaultPitchIsNadir(t *testing.T) {
	s := sampleAt(frame.Vec3{X: 0, Y: 100, Z: 0}, nil, nil)

	if p := PoseFor(s); p.PitchDeg != wayline.DefaultGimbalPitchDeg {
		t.Fatalf("nil pitch should pose at %v, got %v", wayline.DefaultGimbalPitchDeg, p.PitchDeg)
	}

	scale := 10.0
	w := Body(s, wayline.DefaultLens(), scale)
	for i,seg := range w.Segments[:4] {
		corner := seg[1]
		if math.Abs(corner.Y-(100-scale)) > 1e-9 {
			t.Errorf("corner %d should sit %vm below the apex, got y=%v", i, scale, corner.Y)
		}
	}
}

// Pitch tilts about the aircraft's own lateral axis before heading
// swings the assembly: -45 pitch at heading 90 must aim east-and-down,
// not stay level.
func TestPitchThenYawOrder(t *testing.T) {
	pitch,heading := -45.0, 90.0
	s := sampleAt(frame.Vec3{}, &pitch, &heading)

	depth := 10.0
	c := baseCenter(Body(s, wayline.DefaultLens(), depth))

	want := frame.Vec3{X: depth * math.Sqrt2 / 2, Y: -depth * math.Sqrt2 / 2, Z: 0}
	if c.Dist(want) > 1e-9 {
		t.Errorf("base center: expected %v, got %v", want, c)
	}

	// Sanity on the opposite composition: yaw-then-pitch would leave the
	// view level at (depth,0,0), which must NOT be what we produce.
	if c.Dist(frame.Vec3{X: depth}) < 1.0 {
		t.Errorf("rotation order looks inverted: base center %v", c)
	}
}

func TestPyramidTopology(t *testing.T) {
	s := sampleAt(frame.Vec3{X: 5, Y: 40, Z: -5}, nil, nil)
	w := Body(s, wayline.DefaultLens(), 8)

	if len(w.Segments) != 8 {
		t.Fatalf("expected 8 segments, got %d", len(w.Segments))
	}
	if w.Dashed {
		t.Errorf("the body pyramid is not the dashed set")
	}
	for i,seg := range w.Segments[:4] {
		if seg[0] != s.Pos {
			t.Errorf("segment %d should start at the apex, got %v", i, seg[0])
		}
	}

	// The base loop closes.
	if w.Segments[7][1] != w.Segments[4][0] {
		t.Errorf("base loop should close: %v vs %v", w.Segments[7][1], w.Segments[4][0])
	}
}

func TestConeMatchesLensFov(t *testing.T) {
	s := sampleAt(frame.Vec3{}, nil, nil)
	lens := wayline.DefaultLens()
	extent := 200.0

	w := Cone(s, lens, extent)
	if !w.Dashed {
		t.Errorf("the FOV cone should be the dashed set")
	}

	// At nadir the base is horizontal; its half-width along x comes
	// straight from tan(hfov/2).
	halfW := 0.0
	for _,seg := range w.Segments[4:] {
		if v := math.Abs(seg[0].X); v > halfW { halfW = v }
	}
	want := extent * math.Tan(lens.HorizontalFovDeg/2*math.Pi/180)
	if math.Abs(halfW-want) > 1e-9 {
		t.Errorf("half-width at extent %v: expected %v, got %v", extent, want, halfW)
	}
}

func TestScaleGrowsWithScene(t *testing.T) {
	small := []frame.Sample{
		sampleAt(frame.Vec3{X: 0, Y: 10, Z: 0}, nil, nil),
		sampleAt(frame.Vec3{X: 5, Y: 12, Z: 3}, nil, nil),
	}
	if got := ScaleFor(small); got != MinBodyScale {
		t.Errorf("tiny scene should floor at %v, got %v", MinBodyScale, got)
	}

	big := []frame.Sample{
		sampleAt(frame.Vec3{X: 0, Y: 0, Z: 0}, nil, nil),
		sampleAt(frame.Vec3{X: 2000, Y: 150, Z: -800}, nil, nil),
	}
	if got := ScaleFor(big); got != 2000*bodyScaleRatio {
		t.Errorf("2km scene: expected %v, got %v", 2000*bodyScaleRatio, got)
	}

	if got := ConeExtentFor(small); got != MinConeExtent {
		t.Errorf("tiny scene cone should floor at %v, got %v", MinConeExtent, got)
	}
	if got := ConeExtentFor(big); got != 2000*coneExtentRatio {
		t.Errorf("2km scene cone: expected %v, got %v", 2000*coneExtentRatio, got)
	}
}
