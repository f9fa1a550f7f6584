// Package frame converts geodetic waypoints into a shared local
// Cartesian frame, so multiple flights can be overlaid and measured
// against each other. Equirectangular approximation: fine for a single
// property's missions, not for projecting distant flights together.
package frame

import (
	"math"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
)

const (
	EarthRadiusM = 6378137.0
	degToRad     = math.Pi / 180.0
)

// Vec3 is a local-frame position in meters: x east, y up, z south.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3)Add(w Vec3) Vec3   { return Vec3{v.X+w.X, v.Y+w.Y, v.Z+w.Z} }
func (v Vec3)Sub(w Vec3) Vec3   { return Vec3{v.X-w.X, v.Y-w.Y, v.Z-w.Z} }
func (v Vec3)Scale(s float64) Vec3 { return Vec3{v.X*s, v.Y*s, v.Z*s} }
func (v Vec3)Length() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3)Dist(w Vec3) float64 { return v.Sub(w).Length() }

func (v Vec3)Lerp(w Vec3, ratio float64) Vec3 {
	return Vec3{
		v.X + (w.X-v.X)*ratio,
		v.Y + (w.Y-v.Y)*ratio,
		v.Z + (w.Z-v.Z)*ratio,
	}
}

// Sample is a waypoint plus its derived local-frame position.
type Sample struct {
	wayline.Waypoint
	Pos Vec3
}

// Frame anchors the projection. Every flight in a viewing session must
// share one Frame; a new reference point means re-projecting everything
// (cheap, since nothing is cached).
type Frame struct {
	Ref geo.Latlong
}

func NewFrame(ref geo.Latlong) Frame { return Frame{Ref: ref} }

// FrameFor anchors at the flight's first waypoint, for when the session
// hasn't supplied a shared reference yet.
func FrameFor(f *wayline.Flight) Frame {
	if len(f.Waypoints) == 0 { return Frame{} }
	return Frame{Ref: f.Waypoints[0].Latlong}
}

// Project maps (lat,long) degrees and feet into meters:
//   x = (lon-refLon)*cos(refLat)*R,  z = -(lat-refLat)*R,  y = ft*0.3048
func (fr Frame)Project(pos geo.Latlong, altitudeFt float64) Vec3 {
	cosRef := math.Cos(fr.Ref.Lat * degToRad)
	return Vec3{
		X:  (pos.Long - fr.Ref.Long) * degToRad * cosRef * EarthRadiusM,
		Y:  altitudeFt * wayline.MetersPerFoot,
		Z: -(pos.Lat - fr.Ref.Lat) * degToRad * EarthRadiusM,
	}
}

// Unproject inverts Project, for renderers that need the fitted curve
// back in geodetic terms.
func (fr Frame)Unproject(v Vec3) (geo.Latlong, float64) {
	cosRef := math.Cos(fr.Ref.Lat * degToRad)
	pos := geo.Latlong{
		Lat:  fr.Ref.Lat - v.Z/(degToRad*EarthRadiusM),
		Long: fr.Ref.Long + v.X/(degToRad*cosRef*EarthRadiusM),
	}
	return pos, v.Y / wayline.MetersPerFoot
}

func (fr Frame)ProjectFlight(f *wayline.Flight) []Sample {
	samples := make([]Sample, 0, len(f.Waypoints))
	for _,wp := range f.Waypoints {
		samples = append(samples, Sample{Waypoint: wp, Pos: fr.Project(wp.Latlong, wp.AltitudeFt)})
	}
	return samples
}

// ProjectPoi projects the flight's POI, resolving the unset-altitude
// default (first waypoint's altitude) first.
func (fr Frame)ProjectPoi(f *wayline.Flight) (Vec3, bool) {
	if f.Poi == nil { return Vec3{}, false }
	return fr.Project(f.Poi.Latlong, f.PoiAltitudeFt()), true
}

// Positions strips samples down to the bare points the curve builder wants.
func Positions(samples []Sample) []Vec3 {
	pts := make([]Vec3, len(samples))
	for i,s := range samples {
		pts[i] = s.Pos
	}
	return pts
}
