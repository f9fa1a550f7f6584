package wayline

import (
	"fmt"

	"github.com/skypies/geo"
)

// Waypoint is one sample of a planned flight: a position, plus whatever
// flight-mechanics metadata the source file carried. Latitude, longitude
// and altitude are mandatory; everything else is optional and degrades to
// a default rather than invalidating the row.
type Waypoint struct {
	geo.Latlong          // Embedded type, so we can call all the geo stuff directly on waypoints

	AltitudeFt   float64 // Semantics depend on AltitudeMode (AGL vs absolute); carried, never reinterpreted

	HeadingDeg   *float64 // Aircraft yaw at this point, [0,360) compass degrees
	GimbalPitch  *float64 // Camera pitch; nil means DefaultGimbalPitchDeg (see Pitch())
	SpeedMs      *float64
	CurveSizeFt  *float64
	RotationDir  *float64
	GimbalMode   *float64
	AltitudeMode *float64

	// Photo trigger cadence, for export-side action groups.
	PhotoTimeInterval *float64
	PhotoDistInterval *float64
}

// Poi is the single point of interest a flight's camera orients toward.
// First non-null POI seen in a file wins for the whole flight.
type Poi struct {
	geo.Latlong
	AltitudeFt   *float64 // nil defaults to the flight's first waypoint altitude at projection time
	AltitudeMode *float64
}

// Pitch returns the gimbal pitch, applying the nadir default.
func (wp Waypoint)Pitch() float64 {
	if wp.GimbalPitch == nil { return DefaultGimbalPitchDeg }
	return *wp.GimbalPitch
}

// Heading returns the aircraft yaw, zero (north) when unset.
func (wp Waypoint)Heading() float64 {
	if wp.HeadingDeg == nil { return 0 }
	return *wp.HeadingDeg
}

func (wp Waypoint)String() string {
	return fmt.Sprintf("%s %.0fft, pitch %.0fdeg, speed %s",
		wp.Latlong, wp.AltitudeFt, wp.Pitch(), optStr(wp.SpeedMs, "m/s"))
}

func optStr(v *float64, unit string) string {
	if v == nil { return "-" }
	return fmt.Sprintf("%.1f%s", *v, unit)
}

// OptFloat is how the parsers build optional fields; a failed parse
// stays nil instead of aborting the row.
func OptFloat(v float64) *float64 { return &v }
