package kmlview

import(
	"bytes"
	"strings"
	"testing"

	"github.com/skyloom/wayline/viewer"
)

var csvPoi = "latitude,longitude,altitude(ft),heading(deg),curvesize(ft),rotationdir," +
	"gimbalmode,gimbalpitchangle,altitudemode,speed(m/s),poi_latitude,poi_longitude," +
	"poi_altitude(ft),poi_altitudemode,photo_timeinterval,photo_distinterval\n" +
	"47.850,-114.262,100,0,0,0,2,-90,0,5,47.8495,-114.2615,50,0,0,0\n" +
	"47.851,-114.263,120,10,0,0,2,-85,0,5,47.8495,-114.2615,50,0,0,0\n"

func TestRender(t *testing.T) {
	s := viewer.NewSession()
	if _,err := s.LoadFile("orchard.csv", []byte(csvPoi)); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	buf := new(bytes.Buffer)
	if err := Render(buf, s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _,want := range []string{
		"<kml xmlns=",
		"orchard.csv",
		"flight path",
		"<LineString>",
		"<extrude>1</extrude>",
		"WP 1",
		"WP 2",
		">POI<",
		"styleWaypoint",
		"stylePoi",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered KML should contain %q", want)
		}
	}

	// KML coordinates run longitude first; the path starts at the first
	// waypoint.
	if !strings.Contains(out, "-114.262,47.85,") {
		t.Errorf("path coordinates should start lon-first at the first waypoint")
	}

	// The extruded track carries the flight's palette color.
	f := s.Flights()[0]
	if !strings.Contains(out, "track-"+f.Id) {
		t.Errorf("per-flight track style should be named by flight id %s", f.Id)
	}
}

func TestRenderEmptySession(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := Render(buf, viewer.NewSession()); err != nil {
		t.Fatalf("Render of empty session: %v", err)
	}
	if !strings.Contains(buf.String(), "<kml") {
		t.Errorf("empty session should still render a document")
	}
}
