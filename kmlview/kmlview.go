// Package kmlview renders a viewing session as a Google Earth preview:
// one folder per flight, with the fitted path as an extruded line in
// the flight's palette color, a placemark per waypoint, and the POI.
package kmlview

import(
	"fmt"
	"image/color"
	"io"

	kml "github.com/twpayne/go-kml"
	"github.com/twpayne/go-kml/icon"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/viewer"
)

// {{{ Render, RenderFlight

func Render(w io.Writer, s *viewer.Session) error {
	top := kml.Folder(kml.Name("wayline missions")).Add(sharedStyles()...)
	for _,f := range s.Flights() {
		top.Add(FlightFolder(s, f))
	}
	return kml.KML(top).WriteIndent(w, "", "  ")
}

// RenderFlight is the single-flight variant, for per-flight downloads.
func RenderFlight(w io.Writer, s *viewer.Session, f *wayline.Flight) error {
	top := kml.Folder(kml.Name(f.Name)).Add(sharedStyles()...)
	top.Add(FlightFolder(s, f))
	return kml.KML(top).WriteIndent(w, "", "  ")
}

// }}}
// {{{ FlightFolder

func FlightFolder(s *viewer.Session, f *wayline.Flight) kml.Element {
	folder := kml.Folder(
		kml.Name(f.Name),
		kml.Description(fmt.Sprintf("%d waypoints", len(f.Waypoints))),
		trackStyle(f),
	)

	// The path placemark follows the fitted curve, unprojected back to
	// geodetic coordinates, altitudes in meters.
	fr := s.Frame()
	pts := []kml.Coordinate{}
	it := s.Curve(f).Iter()
	for it.Iterate() {
		pos,altFt := fr.Unproject(it.Point())
		pts = append(pts, kml.Coordinate{
			Lon: pos.Long,
			Lat: pos.Lat,
			Alt: altFt * wayline.MetersPerFoot,
		})
	}
	if len(pts) > 0 {
		folder.Add(kml.Placemark(
			kml.Name("flight path"),
			kml.StyleURL("#track-"+f.Id),
			kml.LineString(
				kml.AltitudeMode(kml.AltitudeModeRelativeToGround),
				kml.Extrude(true),
				kml.Tessellate(false),
				kml.Coordinates(pts...),
			),
		))
	}

	for i,wp := range f.Waypoints {
		folder.Add(waypointPlacemark(i, wp))
	}
	if f.HasPoi() {
		folder.Add(poiPlacemark(f))
	}

	return folder
}

// }}}
// {{{ waypointPlacemark, poiPlacemark

func waypointPlacemark(i int, wp wayline.Waypoint) kml.Element {
	speed := "default"
	if wp.SpeedMs != nil {
		speed = fmt.Sprintf("%.1f m/s", *wp.SpeedMs)
	}
	desc := fmt.Sprintf("Altitude: %.0f ft<br/>Heading: %.0f&deg;<br/>Gimbal pitch: %.0f&deg;<br/>Speed: %s<br/>",
		wp.AltitudeFt, wp.Heading(), wp.Pitch(), speed)

	return kml.Placemark(
		kml.Name(fmt.Sprintf("WP %d", i+1)),
		kml.Description(desc),
		kml.StyleURL("#styleWaypoint"),
		kml.Point(
			kml.AltitudeMode(kml.AltitudeModeRelativeToGround),
			kml.Coordinates(kml.Coordinate{
				Lon: wp.Long,
				Lat: wp.Lat,
				Alt: wp.AltitudeFt * wayline.MetersPerFoot,
			}),
		),
	)
}

func poiPlacemark(f *wayline.Flight) kml.Element {
	return kml.Placemark(
		kml.Name("POI"),
		kml.Description(fmt.Sprintf("Camera target for %s<br/>Altitude: %.0f ft<br/>",
			f.Name, f.PoiAltitudeFt())),
		kml.StyleURL("#stylePoi"),
		kml.Point(
			kml.AltitudeMode(kml.AltitudeModeRelativeToGround),
			kml.Coordinates(kml.Coordinate{
				Lon: f.Poi.Long,
				Lat: f.Poi.Lat,
				Alt: f.PoiAltitudeFt() * wayline.MetersPerFoot,
			}),
		),
	)
}

// }}}
// {{{ styles

// trackStyle is per flight: the palette color at full alpha for the
// line, faded for the extrusion skirt.
func trackStyle(f *wayline.Flight) kml.Element {
	c := hexColor(f.Color)
	skirt := c
	skirt.A = 0x40

	return kml.SharedStyle(
		"track-"+f.Id,
		kml.LineStyle(
			kml.Width(2.0),
			kml.Color(c),
		),
		kml.PolyStyle(
			kml.Color(skirt),
		),
	)
}

func sharedStyles() []kml.Element {
	balloon := func() kml.Element {
		return kml.BalloonStyle(
			kml.BgColor(color.RGBA{R: 0xde, G: 0xde, B: 0xde, A: 0x40}),
			kml.Text(`<b><font size="+2">$[name]</font></b><br/><br/>$[description]<br/>`))
	}
	return []kml.Element{
		kml.SharedStyle(
			"styleWaypoint",
			kml.IconStyle(
				kml.Scale(0.8),
				kml.Icon(
					kml.Href(icon.PaddleHref("ltblu-circle")),
				),
			),
			balloon(),
		),
		kml.SharedStyle(
			"stylePoi",
			kml.IconStyle(
				kml.Scale(0.8),
				kml.Icon(
					kml.Href(icon.PaddleHref("ylw-diamond")),
				),
			),
			balloon(),
		),
	}
}

// hexColor parses "#rrggbb"; junk falls back to mid gray.
func hexColor(s string) color.RGBA {
	var r,g,b uint8
	if _,err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
