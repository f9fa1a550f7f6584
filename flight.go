package wayline

import (
	"fmt"

	"github.com/skypies/geo"
)

// Flight is one successfully parsed file. Flights are immutable once
// created; re-parsing a file produces a new Flight, and the viewer list
// is append/remove only.
type Flight struct {
	Id        string // Opaque, unique per load
	Name      string // Source filename
	Color     string // Hex color assigned from the palette by load order

	Waypoints []Waypoint // Flight order, significant
	Poi       *Poi

	DebugLog  string // Accumulated parser diagnostics, for display
}

func (f Flight)String() string {
	str := fmt.Sprintf("%s: %d waypoints", f.Name, len(f.Waypoints))
	if f.Poi != nil {
		str += fmt.Sprintf(", POI %s", f.Poi.Latlong)
	}
	return str
}

func (f *Flight)HasPoi() bool { return f.Poi != nil }

// PoiAltitudeFt resolves the POI altitude default: an unset POI altitude
// means the altitude of the first waypoint.
func (f *Flight)PoiAltitudeFt() float64 {
	if f.Poi == nil { return 0 }
	if f.Poi.AltitudeFt != nil { return *f.Poi.AltitudeFt }
	if len(f.Waypoints) > 0 { return f.Waypoints[0].AltitudeFt }
	return 0
}

// Bounds is the lat/long box enclosing every waypoint (and the POI).
func (f *Flight)Bounds() geo.LatlongBox {
	box := geo.LatlongBox{}
	if len(f.Waypoints) == 0 { return box }

	box.SW, box.NE = f.Waypoints[0].Latlong, f.Waypoints[0].Latlong
	expand := func(pos geo.Latlong) {
		if pos.Lat  < box.SW.Lat  { box.SW.Lat  = pos.Lat }
		if pos.Lat  > box.NE.Lat  { box.NE.Lat  = pos.Lat }
		if pos.Long < box.SW.Long { box.SW.Long = pos.Long }
		if pos.Long > box.NE.Long { box.NE.Long = pos.Long }
	}
	for _,wp := range f.Waypoints {
		expand(wp.Latlong)
	}
	if f.Poi != nil {
		expand(f.Poi.Latlong)
	}
	return box
}

func (f *Flight)MaxAltitudeFt() float64 {
	max := 0.0
	for _,wp := range f.Waypoints {
		if wp.AltitudeFt > max { max = wp.AltitudeFt }
	}
	return max
}
