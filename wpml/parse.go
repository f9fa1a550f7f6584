package wpml

import(
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
)

// {{{ ReadKmz

// ReadKmz parses a mission container back into a Flight. The container
// must hold a waylines document at wpmz/waylines.wpml; anything else in
// the archive (template, resources) is ignored on the way in.
//
// Failure modes: not a ZIP, or no waylines member, or junk XML, is a
// ParseError; a waylines document with no usable Placemarks is a
// NoWaypointsError.
func ReadKmz(name string, b []byte) (*wayline.Flight, string, error) {
	zr,err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil,"", wayline.ParseError{Filename: name, Detail: fmt.Sprintf("not a zip archive: %v", err)}
	}

	var wpmlBytes []byte
	for _,zf := range zr.File {
		if zf.Name != WaylinesPath { continue }
		rc,err := zf.Open()
		if err != nil {
			return nil,"", wayline.ParseError{Filename: name, Detail: fmt.Sprintf("%s: %v", WaylinesPath, err)}
		}
		wpmlBytes,err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil,"", wayline.ParseError{Filename: name, Detail: fmt.Sprintf("%s: %v", WaylinesPath, err)}
		}
	}
	if wpmlBytes == nil {
		return nil,"", wayline.ParseError{Filename: name, Detail: "missing member "+WaylinesPath}
	}

	return readWaylines(name, wpmlBytes)
}

// }}}
// {{{ readWaylines

func readWaylines(name string, b []byte) (*wayline.Flight, string, error) {
	str := fmt.Sprintf("---- Waypoints loaded from %s (%s)\n", name, WaylinesPath)

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil,str, wayline.ParseError{Filename: name, Detail: fmt.Sprintf("%s: %v", WaylinesPath, err)}
	}

	root := doc.SelectElement("kml")
	if root == nil {
		return nil,str, wayline.ParseError{Filename: name, Detail: WaylinesPath+": no kml root element"}
	}

	folder := root.FindElement("//Folder")
	if folder == nil {
		return nil,str, wayline.ParseError{Filename: name, Detail: WaylinesPath+": no wayline Folder"}
	}

	waypoints := []wayline.Waypoint{}
	var poi *wayline.Poi
	nSkipped := 0

	for i,pm := range folder.SelectElements("Placemark") {
		wp,ok := placemarkToWaypoint(pm)
		if !ok {
			nSkipped++
			str += fmt.Sprintf("%s: Placemark %d skipped (no position)\n", name, i)
			continue
		}

		if poi == nil {
			poi = placemarkPoi(pm)
		}

		waypoints = append(waypoints, wp)
	}

	if len(waypoints) == 0 {
		return nil,str, wayline.NoWaypointsError{Filename: name}
	}

	str = fmt.Sprintf("---- File read, %d waypoints (%d skipped)\n", len(waypoints), nSkipped) + str

	f := wayline.Flight{
		Name:      name,
		Waypoints: waypoints,
		Poi:       poi,
		DebugLog:  str,
	}

	return &f,str,nil
}

// }}}
// {{{ placemarkToWaypoint

// placemarkToWaypoint pulls one waypoint out of a Placemark. The
// coordinates field is load-bearing (no position, no waypoint); execute
// height defaults to zero, and every flight-mechanics field degrades to
// nil just like the CSV side.
func placemarkToWaypoint(pm *etree.Element) (wayline.Waypoint, bool) {
	pos,ok := parseLonLat(childText(pm, "Point/coordinates"))
	if !ok {
		return wayline.Waypoint{}, false
	}

	altFt := 0.0
	if m := optFloat(pm, "wpml:executeHeight"); m != nil {
		altFt = *m / wayline.MetersPerFoot
	}

	wp := wayline.Waypoint{
		Latlong:    pos,
		AltitudeFt: altFt,

		SpeedMs:     optFloat(pm, "wpml:waypointSpeed"),
		HeadingDeg:  optFloat(pm, "wpml:waypointHeadingParam/wpml:waypointHeadingAngle"),
		GimbalPitch: placemarkGimbalPitch(pm),
	}

	return wp, true
}

// }}}
// {{{ placemarkGimbalPitch

// The pitch lives inside the action groups: find a gimbalRotate action
// and take its pitch rotate angle. The interpolate actions (which carry
// the *next* waypoint's pitch) don't count.
func placemarkGimbalPitch(pm *etree.Element) *float64 {
	for _,g := range pm.SelectElements("wpml:actionGroup") {
		for _,a := range g.SelectElements("wpml:action") {
			if childText(a, "wpml:actionActuatorFunc") != "gimbalRotate" { continue }
			if v := optFloat(a, "wpml:actionActuatorFuncParam/wpml:gimbalPitchRotateAngle"); v != nil {
				return v
			}
		}
	}
	return nil
}

// }}}
// {{{ placemarkPoi

// placemarkPoi reads the heading param's POI point: "lat,lon,alt", alt
// in meters. An all-zero POI means "none" (that's what we and the DJI
// planner both write for poi-less missions).
func placemarkPoi(pm *etree.Element) *wayline.Poi {
	s := childText(pm, "wpml:waypointHeadingParam/wpml:waypointPoiPoint")
	if s == "" { return nil }

	parts := strings.Split(s, ",")
	if len(parts) < 2 { return nil }

	lat,err1  := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	long,err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil { return nil }
	if lat == 0 && long == 0 { return nil }

	poi := wayline.Poi{Latlong: geo.Latlong{Lat: lat, Long: long}}
	if len(parts) > 2 {
		if m,err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err == nil {
			poi.AltitudeFt = wayline.OptFloat(m / wayline.MetersPerFoot)
		}
	}

	return &poi
}

// }}}
// {{{ parseLonLat

// KML coordinates put longitude first.
func parseLonLat(s string) (geo.Latlong, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) < 2 { return geo.Latlong{}, false }

	long,err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat,err2  := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil { return geo.Latlong{}, false }

	return geo.Latlong{Lat: lat, Long: long}, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
