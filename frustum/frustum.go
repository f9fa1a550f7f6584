// Package frustum builds the camera wireframes drawn at each waypoint:
// a small solid pyramid for the camera body, and a wider dashed cone
// showing the lens's true field of view. The cone is hidden until the
// waypoint is hovered, so it gets built with a much longer reach.
package frustum

import(
	"math"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
)

const(
	degToRad = math.Pi / 180.0

	// Body pyramid sizing: proportional to scene size, floored so a
	// low-and-tight mission still shows visible cameras.
	bodyScaleRatio = 0.05
	MinBodyScale   = 4.0

	// The hover cone reaches well past the scene, so it reads as a
	// beam rather than a second pyramid.
	coneExtentRatio = 2.0
	MinConeExtent   = 150.0
)

// {{{ Pose

// Pose orients a camera: gimbal pitch applied first (about the
// east-west axis, tilting the nose-forward view down), then heading yaw
// about the local vertical. The order matters: pitching after yawing
// would tilt about the wrong axis for every heading but north.
type Pose struct {
	PitchDeg float64
	YawDeg   float64
}

func PoseFor(s frame.Sample) Pose {
	return Pose{PitchDeg: s.Pitch(), YawDeg: s.Heading()}
}

// Apply rotates a body-frame offset into the local frame. Body frame:
// x right, y up, z backward (camera looks along -z, which is north at
// zero heading).
func (p Pose)Apply(v frame.Vec3) frame.Vec3 {
	pitch := p.PitchDeg * degToRad
	sinP,cosP := math.Sin(pitch), math.Cos(pitch)
	v = frame.Vec3{
		X: v.X,
		Y: v.Y*cosP - v.Z*sinP,
		Z: v.Y*sinP + v.Z*cosP,
	}

	// Compass yaw: positive heading swings north toward east.
	yaw := p.YawDeg * degToRad
	sinY,cosY := math.Sin(yaw), math.Cos(yaw)
	return frame.Vec3{
		X: v.X*cosY - v.Z*sinY,
		Y: v.Y,
		Z: v.X*sinY + v.Z*cosY,
	}
}

// }}}

// Wireframe is a renderable line set: four edges from apex to base
// corners, four base edges. Dashed marks the hover-only FOV cone.
type Wireframe struct {
	Segments [][2]frame.Vec3
	Dashed   bool
}

// {{{ Body, Cone

// Body builds the always-visible camera pyramid at a sample: apex at
// the waypoint (the focal point), base one scale-length ahead, base
// proportions from the lens aspect ratio.
func Body(s frame.Sample, lens wayline.LensProfile, scale float64) Wireframe {
	halfW := scale * 0.5
	halfH := halfW / lens.AspectRatio
	return Wireframe{
		Segments: pyramid(s, halfW, halfH, scale),
		Dashed:   false,
	}
}

// Cone builds the dashed field-of-view cone: same pyramid topology, but
// the base sits extent meters out and is sized by the lens's actual
// FOV angles.
func Cone(s frame.Sample, lens wayline.LensProfile, extent float64) Wireframe {
	halfW := extent * math.Tan(lens.HorizontalFovDeg/2*degToRad)
	halfH := extent * math.Tan(lens.VerticalFovDeg()/2*degToRad)
	return Wireframe{
		Segments: pyramid(s, halfW, halfH, extent),
		Dashed:   true,
	}
}

func pyramid(s frame.Sample, halfW, halfH, depth float64) [][2]frame.Vec3 {
	pose := PoseFor(s)
	apex := s.Pos

	corners := [4]frame.Vec3{}
	for i,off := range [4]frame.Vec3{
		{X:  halfW, Y:  halfH, Z: -depth},
		{X: -halfW, Y:  halfH, Z: -depth},
		{X: -halfW, Y: -halfH, Z: -depth},
		{X:  halfW, Y: -halfH, Z: -depth},
	} {
		corners[i] = apex.Add(pose.Apply(off))
	}

	return [][2]frame.Vec3{
		{apex, corners[0]},
		{apex, corners[1]},
		{apex, corners[2]},
		{apex, corners[3]},
		{corners[0], corners[1]},
		{corners[1], corners[2]},
		{corners[2], corners[3]},
		{corners[3], corners[0]},
	}
}

// }}}
// {{{ ScaleFor, ConeExtentFor

// ScaleFor sizes the body pyramids against the whole scene, so they
// stay visible and proportionate however far out the viewer zooms.
func ScaleFor(samples []frame.Sample) float64 {
	s := sceneSize(samples) * bodyScaleRatio
	if s < MinBodyScale { s = MinBodyScale }
	return s
}

// ConeExtentFor reaches the hover cone past everything else on screen.
func ConeExtentFor(samples []frame.Sample) float64 {
	e := sceneSize(samples) * coneExtentRatio
	if e < MinConeExtent { e = MinConeExtent }
	return e
}

// sceneSize is the largest dimension of the samples' bounding box,
// altitude included.
func sceneSize(samples []frame.Sample) float64 {
	if len(samples) == 0 { return 0 }

	lo,hi := samples[0].Pos, samples[0].Pos
	for _,s := range samples[1:] {
		lo.X = math.Min(lo.X, s.Pos.X)
		lo.Y = math.Min(lo.Y, s.Pos.Y)
		lo.Z = math.Min(lo.Z, s.Pos.Z)
		hi.X = math.Max(hi.X, s.Pos.X)
		hi.Y = math.Max(hi.Y, s.Pos.Y)
		hi.Z = math.Max(hi.Z, s.Pos.Z)
	}

	d := hi.Sub(lo)
	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
