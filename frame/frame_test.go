package frame

import(
	"math"
	"testing"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
)

var(
	refPos = geo.Latlong{Lat: 47.850, Long: -114.262}
)

func wpAt(lat, long, altFt float64) wayline.Waypoint {
	return wayline.Waypoint{Latlong: geo.Latlong{Lat: lat, Long: long}, AltitudeFt: altFt}
}

func TestAltitudeRoundTrip(t *testing.T) {
	fr := NewFrame(refPos)
	for _,altFt := range []float64{0, 1, 100, 120, 90, 400.5, 12000} {
		v := fr.Project(refPos, altFt)
		if v.Y != altFt * 0.3048 {
			t.Errorf("altitude %.1fft: expected y=%.6f, got %.6f", altFt, altFt*0.3048, v.Y)
		}
	}
}

func TestReferenceProjectsToOrigin(t *testing.T) {
	fr := NewFrame(refPos)
	v := fr.Project(refPos, 0)
	if v.X != 0 || v.Y != 0 || v.Z != 0 {
		t.Errorf("reference point should be the origin, got %v", v)
	}
}

func TestAxisConventions(t *testing.T) {
	fr := NewFrame(refPos)

	// A point north of the reference: -z. A point east: +x.
	north := fr.Project(geo.Latlong{Lat: refPos.Lat + 0.001, Long: refPos.Long}, 0)
	if north.Z >= 0 {
		t.Errorf("north should have negative z, got %v", north)
	}
	if north.X != 0 {
		t.Errorf("due north should have zero x, got %v", north)
	}

	// 0.001 deg of latitude is ~111m of arc.
	wantZ := 0.001 * (math.Pi/180.0) * EarthRadiusM
	if math.Abs(-north.Z - wantZ) > 1e-6 {
		t.Errorf("north arc length: expected %.4f, got %.4f", wantZ, -north.Z)
	}

	east := fr.Project(geo.Latlong{Lat: refPos.Lat, Long: refPos.Long + 0.001}, 0)
	if east.X <= 0 || east.Z != 0 {
		t.Errorf("east should be +x only, got %v", east)
	}

	// Away from the equator, a degree of longitude is shorter than a
	// degree of latitude by cos(refLat).
	ratio := east.X / -north.Z
	if math.Abs(ratio - math.Cos(refPos.Lat*math.Pi/180.0)) > 1e-9 {
		t.Errorf("longitude scaling: expected cos(refLat)=%.6f, got %.6f",
			math.Cos(refPos.Lat*math.Pi/180.0), ratio)
	}
}

func TestUnprojectInvertsProject(t *testing.T) {
	fr := NewFrame(refPos)

	for _,wp := range []wayline.Waypoint{
		wpAt(47.851, -114.263, 120),
		wpAt(47.849, -114.260, 90),
		wpAt(refPos.Lat, refPos.Long, 0),
	} {
		v := fr.Project(wp.Latlong, wp.AltitudeFt)
		pos,altFt := fr.Unproject(v)
		if math.Abs(pos.Lat-wp.Lat) > 1e-12 || math.Abs(pos.Long-wp.Long) > 1e-12 {
			t.Errorf("position round trip: expected %v, got %v", wp.Latlong, pos)
		}
		if math.Abs(altFt-wp.AltitudeFt) > 1e-9 {
			t.Errorf("altitude round trip: expected %v, got %v", wp.AltitudeFt, altFt)
		}
	}
}

func TestFrameForFirstWaypoint(t *testing.T) {
	f := wayline.Flight{Waypoints: []wayline.Waypoint{
		wpAt(47.851, -114.263, 120),
		wpAt(47.852, -114.264, 90),
	}}

	fr := FrameFor(&f)
	samples := fr.ProjectFlight(&f)
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Pos.X != 0 || samples[0].Pos.Z != 0 {
		t.Errorf("first waypoint should anchor the frame, got %v", samples[0].Pos)
	}
	if samples[0].Pos.Y != 120 * 0.3048 {
		t.Errorf("sample y: expected %.4f, got %.4f", 120*0.3048, samples[0].Pos.Y)
	}
}

func TestProjectPoiDefaultsAltitude(t *testing.T) {
	poi := wayline.Poi{Latlong: geo.Latlong{Lat: 47.849, Long: -114.261}}
	f := wayline.Flight{
		Waypoints: []wayline.Waypoint{wpAt(47.851, -114.263, 120)},
		Poi: &poi,
	}

	fr := FrameFor(&f)
	v,ok := fr.ProjectPoi(&f)
	if !ok {
		t.Fatalf("expected a POI projection")
	}
	if v.Y != 120 * 0.3048 {
		t.Errorf("unset POI altitude should borrow the first waypoint's: expected %.4f, got %.4f",
			120*0.3048, v.Y)
	}

	alt := 50.0
	f.Poi.AltitudeFt = &alt
	v,_ = fr.ProjectPoi(&f)
	if v.Y != 50 * 0.3048 {
		t.Errorf("set POI altitude should win: expected %.4f, got %.4f", 50*0.3048, v.Y)
	}
}
