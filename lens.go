package wayline

import (
	"math"
)

// LensProfile describes a camera option for the frustum display. Static
// catalog entries only; selecting a lens never touches stored waypoints.
type LensProfile struct {
	Name             string
	HorizontalFovDeg float64
	AspectRatio      float64 // width / height of the sensor plane
}

// Lenses is the selectable catalog. The first entry is the default.
var Lenses = []LensProfile{
	{Name: "wide",   HorizontalFovDeg: 84.0, AspectRatio: 4.0/3.0},
	{Name: "medium", HorizontalFovDeg: 55.0, AspectRatio: 4.0/3.0},
	{Name: "tele",   HorizontalFovDeg: 15.0, AspectRatio: 16.0/9.0},
}

func DefaultLens() LensProfile { return Lenses[0] }

func LensByName(name string) (LensProfile, bool) {
	for _,l := range Lenses {
		if l.Name == name { return l, true }
	}
	return LensProfile{}, false
}

// VerticalFovDeg derives the vertical field of view from the horizontal
// FOV and the aspect ratio.
func (l LensProfile)VerticalFovDeg() float64 {
	hRad := l.HorizontalFovDeg * math.Pi / 180.0
	vRad := 2.0 * math.Atan(math.Tan(hRad/2.0) / l.AspectRatio)
	return vRad * 180.0 / math.Pi
}
