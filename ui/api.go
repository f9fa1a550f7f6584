package ui

import(
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
	"github.com/skyloom/wayline/frustum"
	"github.com/skyloom/wayline/viewer"
)

// {{{ SceneHandler

// ?hover=f1:3        highlight one waypoint, and include its telemetry
// &colorby=altitude  (flight by default)
// &lens=tele         switch the FOV cone lens, for this and later scenes
// &encoding=gob      (json by default)

func SceneHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	opt := FormValueDisplayOptions(r)

	if opt.Lens != "" {
		if !s.SetLens(opt.Lens) {
			http.Error(w, fmt.Sprintf("lens %q not found", opt.Lens), http.StatusBadRequest)
			return
		}
	}
	s.Hover(opt.HoverId, opt.HoverIdx)

	resp := SceneResponse{Shapes: NewSceneShapes()}
	for _,f := range s.Flights() {
		resp.Shapes.Add(FlightToSceneShapes(s, f, opt.ColorScheme))
	}
	if f,exists := s.Get(opt.HoverId); exists {
		resp.Hover = TelemetryFor(f, opt.HoverIdx)
	}

	WriteEncodedData(w, r, resp)
}

// }}}
// {{{ SceneResponse, HoverTelemetry

// SceneResponse is what the scene endpoint returns: every shape to
// draw, plus a telemetry readout when a waypoint is hovered.
type SceneResponse struct {
	Shapes *SceneShapes    `json:"shapes"`
	Hover  *HoverTelemetry `json:"hover,omitempty"`
}

type HoverTelemetry struct {
	FlightId   string   `json:"flight"`
	Index      int      `json:"index"`
	AltitudeFt float64  `json:"alt_ft"`
	SpeedMs    *float64 `json:"speed_ms,omitempty"` // nil when the waypoint rides the mission default
	PitchDeg   float64  `json:"pitch_deg"`
	HeadingDeg float64  `json:"heading_deg"`

	// Only when the flight has a POI.
	PoiDistKM  *float64 `json:"poi_dist_km,omitempty"`
	PoiBearing *float64 `json:"poi_bearing,omitempty"`
}

// }}}
// {{{ TelemetryFor

func TelemetryFor(f *wayline.Flight, idx int) *HoverTelemetry {
	if idx < 0 || idx >= len(f.Waypoints) { return nil }
	wp := f.Waypoints[idx]

	t := HoverTelemetry{
		FlightId:   f.Id,
		Index:      idx,
		AltitudeFt: wp.AltitudeFt,
		SpeedMs:    wp.SpeedMs,
		PitchDeg:   wp.Pitch(),
		HeadingDeg: displayHeading(f, idx),
	}

	if f.HasPoi() {
		dist,bearing := wp.DistKM(f.Poi.Latlong), wp.BearingTowards(f.Poi.Latlong)
		t.PoiDistKM, t.PoiBearing = &dist, &bearing
	}

	return &t
}

// displayHeading prefers the waypoint's explicit heading. Without one,
// interior waypoints blend the inbound and outbound leg bearings, and
// endpoints take their single adjacent leg.
func displayHeading(f *wayline.Flight, idx int) float64 {
	wp := f.Waypoints[idx]
	if wp.HeadingDeg != nil { return *wp.HeadingDeg }

	switch {
	case len(f.Waypoints) < 2:      return 0
	case idx == 0:                  return wp.BearingTowards(f.Waypoints[1].Latlong)
	case idx == len(f.Waypoints)-1: return f.Waypoints[idx-1].BearingTowards(wp.Latlong)
	}

	in  := f.Waypoints[idx-1].BearingTowards(wp.Latlong)
	out := wp.BearingTowards(f.Waypoints[idx+1].Latlong)
	return geo.InterpolateHeading(in, out, 0.5)
}

// }}}
// {{{ FlightToSceneShapes

func FlightToSceneShapes(s *viewer.Session, f *wayline.Flight, colorscheme ColorScheme) *SceneShapes {
	ss := NewSceneShapes()

	for _,sl := range CurveToSceneLines(s, f, colorscheme) {
		ss.AddLine(sl)
	}

	for i,wp := range f.Waypoints {
		color := f.Color
		if colorscheme == ByAltitude { color = ColorByAltitude(wp.AltitudeFt) }
		ss.AddPoint(ScenePoint{
			Pos:   wp.Latlong,
			AltFt: wp.AltitudeFt,
			Color: color,
			Text:  fmt.Sprintf("WP %d/%d\n%s", i+1, len(f.Waypoints), wp),
		})
		ss.AddLabel(SceneLabel{Pos: wp.Latlong, Text: fmt.Sprintf("%d", i+1)})
	}

	if f.HasPoi() {
		ss.AddPoint(ScenePoint{
			Pos:   f.Poi.Latlong,
			AltFt: f.PoiAltitudeFt(),
			Color: "#ffcc00",
			Text:  fmt.Sprintf("POI for %s", f.Name),
		})
		ss.AddLabel(SceneLabel{Pos: f.Poi.Latlong, Text: "POI"})
	}

	fr := s.Frame()
	for _,wf := range s.Frusta(f) {
		for _,sl := range WireframeToSceneLines(fr, wf, f.Color) {
			ss.AddLine(sl)
		}
	}

	return ss
}

// }}}
// {{{ CurveToSceneLines

// The fitted curve, unprojected back to geodetic coordinates and cut
// into short colored line segments.
func CurveToSceneLines(s *viewer.Session, f *wayline.Flight, colorscheme ColorScheme) []SceneLine {
	lines := []SceneLine{}
	fr := s.Frame()

	it := s.Curve(f).Iter()
	if !it.Iterate() { return lines }
	prevPos,prevAlt := fr.Unproject(it.Point())

	for it.Iterate() {
		pos,altFt := fr.Unproject(it.Point())

		color := f.Color
		if colorscheme == ByAltitude { color = ColorByAltitude((prevAlt + altFt) / 2) }

		lines = append(lines, SceneLine{Start: prevPos, End: pos, Color: color, Opacity: 1.0})
		prevPos,prevAlt = pos, altFt
	}

	return lines
}

// }}}
// {{{ WireframeToSceneLines

func WireframeToSceneLines(fr frame.Frame, wf frustum.Wireframe, color string) []SceneLine {
	opacity := 0.6
	if wf.Dashed { opacity = 0.4 }

	lines := make([]SceneLine, 0, len(wf.Segments))
	for _,seg := range wf.Segments {
		start,_ := fr.Unproject(seg[0])
		end,_ := fr.Unproject(seg[1])
		lines = append(lines, SceneLine{
			Start: start,
			End: end,
			Color: color,
			Opacity: opacity,
			Dashed: wf.Dashed,
		})
	}

	return lines
}

// }}}

////////////////////////////////////////////////////////////////////////////////////////////

// {{{ LoadHandler

// Accepts a multi-select upload under the form key "files". One result
// per file, in order; a bad file reports its error without unwinding
// the loads before it.

func LoadHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "load is POST only", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "multipart parse error", http.StatusBadRequest)
		return
	}

	hdrs := r.MultipartForm.File["files"]
	if len(hdrs) == 0 {
		http.Error(w, "no files selected", http.StatusBadRequest)
		return
	}

	files := []viewer.NamedBytes{}
	for _,hdr := range hdrs {
		file,err := hdr.Open()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b,err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		files = append(files, viewer.NamedBytes{Name: hdr.Filename, Bytes: b})
	}

	WriteEncodedData(w, r, loadResultsJSON(s.LoadAll(files)))
}

// }}}
// {{{ loadResultsJSON

type LoadResultJSON struct {
	Name      string `json:"name"`
	Id        string `json:"id,omitempty"`
	Color     string `json:"color,omitempty"`
	Waypoints int    `json:"waypoints,omitempty"`
	HasPoi    bool   `json:"has_poi,omitempty"`
	Error     string `json:"error,omitempty"`
}

func loadResultsJSON(results []viewer.LoadResult) []LoadResultJSON {
	out := make([]LoadResultJSON, 0, len(results))
	for _,res := range results {
		j := LoadResultJSON{Name: res.Name}
		if res.Err != nil {
			j.Error = res.Err.Error()
		} else {
			j.Id = res.Flight.Id
			j.Color = res.Flight.Color
			j.Waypoints = len(res.Flight.Waypoints)
			j.HasPoi = res.Flight.HasPoi()
		}
		out = append(out, j)
	}
	return out
}

// }}}
// {{{ FlightsHandler

// The loaded-flight list, with per-flight stats.

func FlightsHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	type flightJSON struct {
		Id        string `json:"id"`
		Name      string `json:"name"`
		Color     string `json:"color"`
		Waypoints int    `json:"waypoints"`
		HasPoi    bool   `json:"has_poi"`
		Stats     string `json:"stats,omitempty"`
	}

	out := []flightJSON{}
	for _,f := range s.Flights() {
		j := flightJSON{
			Id:        f.Id,
			Name:      f.Name,
			Color:     f.Color,
			Waypoints: len(f.Waypoints),
			HasPoi:    f.HasPoi(),
		}
		if m := s.Stats(f); m != nil {
			j.Stats = m.String()
		}
		out = append(out, j)
	}

	jsonBytes,err := json.MarshalIndent(out, "", " ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonBytes)
}

// }}}
// {{{ RemoveHandler, ClearHandler

// ?id=f2 ; removing a flight never reshuffles the colors of the rest.

func RemoveHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if !s.Remove(id) {
		http.Error(w, fmt.Sprintf("flight %q not found", id), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK\n"))
}

func ClearHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	s.Clear()
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK\n"))
}

// }}}

// {{{ WriteEncodedData

func WriteEncodedData(w http.ResponseWriter, r *http.Request, data interface{}) {
	switch r.FormValue("encoding") {
	case "gob":
		w.Header().Set("Content-Type", "application/octet-stream")
		if err := gob.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

	default:  // json
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
