package ui

import(
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/viewer"
	"github.com/skyloom/wayline/wpml"
)

var(
	csvHeader = "latitude,longitude,altitude(ft),heading(deg),curvesize(ft),rotationdir," +
		"gimbalmode,gimbalpitchangle,altitudemode,speed(m/s),poi_latitude,poi_longitude," +
		"poi_altitude(ft),poi_altitudemode,photo_timeinterval,photo_distinterval\n"

	// Two waypoints aimed at a POI just beyond them.
	csvPoi = csvHeader +
		"47.850,-114.262,100,0,0,0,2,-90,0,5,47.852,-114.264,50,0,0,0\n" +
		"47.851,-114.263,120,10,0,0,2,-85,0,5,47.852,-114.264,50,0,0,0\n"
)

func testSession(t *testing.T) (*viewer.Session, *wayline.Flight) {
	s := viewer.NewSession()
	f,err := s.LoadFile("orchard.csv", []byte(csvPoi))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return s,f
}

// {{{ TestSceneHandler

func TestSceneHandler(t *testing.T) {
	s,f := testSession(t)

	req := httptest.NewRequest("GET", "/scene?hover="+f.Id+":1&colorby=altitude", nil)
	w := httptest.NewRecorder()
	SceneHandler(s, w, req)
	if w.Code != 200 {
		t.Fatalf("scene: status %d: %s", w.Code, w.Body.String())
	}

	resp := SceneResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding scene: %v", err)
	}

	// Two waypoint markers plus the POI marker, each with a label.
	if len(resp.Shapes.Points) != 3 || len(resp.Shapes.Labels) != 3 {
		t.Errorf("expected 3 points and labels, got %d/%d",
			len(resp.Shapes.Points), len(resp.Shapes.Labels))
	}
	if resp.Shapes.Labels[0].Text != "1" || resp.Shapes.Labels[2].Text != "POI" {
		t.Errorf("unexpected labels: %+v", resp.Shapes.Labels)
	}

	dashed := 0
	for _,l := range resp.Shapes.Lines {
		if l.Dashed { dashed++ }
	}
	if dashed == 0 {
		t.Errorf("hovering should contribute a dashed view cone")
	}

	h := resp.Hover
	if h == nil { t.Fatalf("expected hover telemetry") }
	if h.FlightId != f.Id || h.Index != 1 {
		t.Errorf("hover names wrong waypoint: %s:%d", h.FlightId, h.Index)
	}
	if h.AltitudeFt != 120 || h.PitchDeg != -85 || h.HeadingDeg != 10 {
		t.Errorf("telemetry off: alt=%v pitch=%v heading=%v", h.AltitudeFt, h.PitchDeg, h.HeadingDeg)
	}
	if h.SpeedMs == nil || *h.SpeedMs != 5 {
		t.Errorf("expected explicit speed 5, got %v", h.SpeedMs)
	}
	if h.PoiDistKM == nil || *h.PoiDistKM <= 0 {
		t.Errorf("expected a POI distance, got %v", h.PoiDistKM)
	}

	// No hover param means no telemetry block.
	w = httptest.NewRecorder()
	SceneHandler(s, w, httptest.NewRequest("GET", "/scene", nil))
	resp = SceneResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding scene: %v", err)
	}
	if resp.Hover != nil {
		t.Errorf("unhovered scene should omit telemetry, got %+v", resp.Hover)
	}
}

// }}}
// {{{ TestSceneHandlerLens

func TestSceneHandlerLens(t *testing.T) {
	s,_ := testSession(t)

	w := httptest.NewRecorder()
	SceneHandler(s, w, httptest.NewRequest("GET", "/scene?lens=fisheye", nil))
	if w.Code != 400 || !strings.Contains(w.Body.String(), "fisheye") {
		t.Errorf("bad lens: expected 400 naming the lens, got %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	SceneHandler(s, w, httptest.NewRequest("GET", "/scene?lens=tele", nil))
	if w.Code != 200 {
		t.Errorf("lens switch: status %d", w.Code)
	}
	if s.Lens().Name != "tele" {
		t.Errorf("lens switch should stick on the session, got %q", s.Lens().Name)
	}
}

// }}}
// {{{ TestLoadHandler

func TestLoadHandler(t *testing.T) {
	s := viewer.NewSession()

	body := bytes.Buffer{}
	mw := multipart.NewWriter(&body)
	for _,file := range []struct{ name, content string }{
		{"one.csv", csvPoi},
		{"bad.gpx", "not a mission"},
	} {
		fw,err := mw.CreateFormFile("files", file.name)
		if err != nil { t.Fatalf("CreateFormFile: %v", err) }
		fw.Write([]byte(file.content))
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/load", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	LoadHandler(s, w, req)
	if w.Code != 200 {
		t.Fatalf("load: status %d: %s", w.Code, w.Body.String())
	}

	results := []LoadResultJSON{}
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("decoding results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Id == "" || results[0].Waypoints != 2 || !results[0].HasPoi || results[0].Error != "" {
		t.Errorf("good file mis-reported: %+v", results[0])
	}
	if !strings.Contains(results[1].Error, ".gpx") {
		t.Errorf("bad file should name its extension: %+v", results[1])
	}
	if n := len(s.Flights()); n != 1 {
		t.Errorf("expected 1 flight after mixed load, got %d", n)
	}

	// GET is refused.
	w = httptest.NewRecorder()
	LoadHandler(s, w, httptest.NewRequest("GET", "/load", nil))
	if w.Code != 405 {
		t.Errorf("GET load: expected 405, got %d", w.Code)
	}

	// An upload with no files is a client error.
	empty := bytes.Buffer{}
	mw = multipart.NewWriter(&empty)
	mw.Close()
	req = httptest.NewRequest("POST", "/load", &empty)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	LoadHandler(s, w, req)
	if w.Code != 400 {
		t.Errorf("empty upload: expected 400, got %d", w.Code)
	}
}

// }}}
// {{{ TestFlightsRemoveClear

func TestFlightsRemoveClear(t *testing.T) {
	s,f := testSession(t)

	w := httptest.NewRecorder()
	FlightsHandler(s, w, httptest.NewRequest("GET", "/flights", nil))
	if w.Code != 200 {
		t.Fatalf("flights: status %d", w.Code)
	}
	list := []map[string]interface{}{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding flights: %v", err)
	}
	if len(list) != 1 || list[0]["name"] != "orchard.csv" {
		t.Fatalf("unexpected flight list: %+v", list)
	}
	if stats,_ := list[0]["stats"].(string); !strings.Contains(stats, "2 waypoints") {
		t.Errorf("stats string off: %q", stats)
	}

	w = httptest.NewRecorder()
	RemoveHandler(s, w, httptest.NewRequest("GET", "/remove?id=zzz", nil))
	if w.Code != 404 {
		t.Errorf("removing a stranger: expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	RemoveHandler(s, w, httptest.NewRequest("GET", "/remove?id="+f.Id, nil))
	if w.Code != 200 || len(s.Flights()) != 0 {
		t.Errorf("remove failed: status %d, %d flights left", w.Code, len(s.Flights()))
	}

	s,_ = testSession(t)
	w = httptest.NewRecorder()
	ClearHandler(s, w, httptest.NewRequest("GET", "/clear", nil))
	if w.Code != 200 || len(s.Flights()) != 0 {
		t.Errorf("clear failed: status %d, %d flights left", w.Code, len(s.Flights()))
	}
}

// }}}
// {{{ TestKmzExportHandler

func TestKmzExportHandler(t *testing.T) {
	s,f := testSession(t)

	req := httptest.NewRequest("GET", "/export/kmz?id="+f.Id+"&speed=7.5&drone=matrice_30", nil)
	w := httptest.NewRecorder()
	KmzExportHandler(s, w, req)
	if w.Code != 200 {
		t.Fatalf("kmz: status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("kmz content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="orchard.kmz"`) {
		t.Errorf("kmz disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Errorf("kmz body should be a zip archive")
	}

	w = httptest.NewRecorder()
	KmzExportHandler(s, w, httptest.NewRequest("GET", "/export/kmz?id=zzz", nil))
	if w.Code != 404 {
		t.Errorf("kmz for a stranger: expected 404, got %d", w.Code)
	}
}

// }}}
// {{{ TestKmlExportHandler

func TestKmlExportHandler(t *testing.T) {
	s,f := testSession(t)

	w := httptest.NewRecorder()
	KmlExportHandler(s, w, httptest.NewRequest("GET", "/export/kml", nil))
	if w.Code != 200 || !strings.Contains(w.Body.String(), "<kml") {
		t.Fatalf("kml: status %d, body %q", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "orchard.csv") {
		t.Errorf("kml should name the flight")
	}

	w = httptest.NewRecorder()
	KmlExportHandler(s, w, httptest.NewRequest("GET", "/export/kml?id="+f.Id, nil))
	if w.Code != 200 || !strings.Contains(w.Body.String(), "orchard.csv") {
		t.Errorf("single-flight kml: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	KmlExportHandler(s, w, httptest.NewRequest("GET", "/export/kml?id=zzz", nil))
	if w.Code != 404 {
		t.Errorf("kml for a stranger: expected 404, got %d", w.Code)
	}
}

// }}}
// {{{ TestPdfExportHandler

func TestPdfExportHandler(t *testing.T) {
	s,f := testSession(t)

	req := httptest.NewRequest("GET", "/export/pdf?id="+f.Id+"&hover="+f.Id+":0", nil)
	w := httptest.NewRecorder()
	PdfExportHandler(s, w, req)
	if w.Code != 200 {
		t.Fatalf("pdf: status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("pdf content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("pdf body should start with the magic")
	}

	// No id profiles the whole session; an empty session still renders.
	s.Clear()
	w = httptest.NewRecorder()
	PdfExportHandler(s, w, httptest.NewRequest("GET", "/export/pdf", nil))
	if w.Code != 200 || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("empty-session pdf: status %d", w.Code)
	}
}

// }}}
// {{{ TestReportHandlers

func TestReportHandlers(t *testing.T) {
	s,_ := testSession(t)

	w := httptest.NewRecorder()
	ReportCSVHandler(s, w, httptest.NewRequest("GET", "/report/csv", nil))
	if w.Code != 200 {
		t.Fatalf("report csv: status %d", w.Code)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if !strings.HasPrefix(lines[0], "flight,file,waypoints,") || len(lines) != 2 {
		t.Errorf("report csv shape off: %v", lines)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("report csv disposition %q", cd)
	}

	w = httptest.NewRecorder()
	ReportCSVHandler(s, w, httptest.NewRequest("GET", "/report/csv?debug=1", nil))
	if !strings.Contains(w.Body.String(), "flights considered") {
		t.Errorf("debug dump missing metadata: %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	ReportXLSXHandler(s, w, httptest.NewRequest("GET", "/report/xlsx", nil))
	if w.Code != 200 || !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Errorf("report xlsx: status %d", w.Code)
	}
}

// }}}
// {{{ TestViewHandler

func TestViewHandler(t *testing.T) {
	s,_ := testSession(t)

	defer func(){ templates = nil }()
	templates = template.Must(template.New("view").Funcs(TemplateFuncMap()).Parse(
		`{{.Title}} lens={{.Lens}}` +
			` {{range $i,$f := .Flights}}[{{add $i 1}}:{{$f.Name}}]{{end}} {{.Shapes.LinesToJSMap}}`))

	w := httptest.NewRecorder()
	ViewHandler(s, w, httptest.NewRequest("GET", "/?lens=medium", nil))
	if w.Code != 200 {
		t.Fatalf("view: status %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _,want := range []string{"lens=medium", "[1:orchard.csv]", "s:{lat:"} {
		if !strings.Contains(body, want) {
			t.Errorf("view body missing %q:\n%s", want, body)
		}
	}
}

// }}}
// {{{ TestWithSession

func TestWithSession(t *testing.T) {
	s,_ := testSession(t)
	ctxMaker := func(r *http.Request) context.Context { return context.Background() }

	called := false
	bh := WithSessionCtx(ctxMaker, s,
		func(s *viewer.Session, w http.ResponseWriter, r *http.Request) { called = true })

	w := httptest.NewRecorder()
	bh(w, httptest.NewRequest("GET", "/?debugoptions=1", nil))
	if called {
		t.Errorf("debugoptions should short-circuit the handler")
	}
	if !strings.HasPrefix(w.Body.String(), "OK") {
		t.Errorf("debugoptions dump off: %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	bh(w, httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Errorf("handler never ran")
	}
}

// }}}
// {{{ TestFormValueOptions

func TestFormValueOptions(t *testing.T) {
	url := "/?colorby=altitude&lens=tele&hover=f3:7" +
		"&speed=7.5&drone=matrice_30&heading=manual&rclost=executeLostAction&straight=1"
	opt := FormValueDisplayOptions(httptest.NewRequest("GET", url, nil))

	if opt.ColorScheme != ByAltitude || opt.Lens != "tele" {
		t.Errorf("display options off: %+v", opt)
	}
	if opt.HoverId != "f3" || opt.HoverIdx != 7 {
		t.Errorf("hover parse off: %s:%d", opt.HoverId, opt.HoverIdx)
	}
	if opt.Wpml.MissionSpeedMs != 7.5 || opt.Wpml.DroneType != "matrice_30" ||
		opt.Wpml.HeadingMode != wpml.HeadingManual ||
		opt.Wpml.SignalLostAction != wpml.SignalLostExecute ||
		!opt.Wpml.AllowStraightLines {
		t.Errorf("wpml options off: %+v", opt.Wpml)
	}

	// Defaults.
	opt = FormValueDisplayOptions(httptest.NewRequest("GET", "/", nil))
	if opt.ColorScheme != ByFlight || opt.Lens != "" || opt.HoverIdx != -1 {
		t.Errorf("defaults off: %+v", opt)
	}
	if opt.Wpml != wpml.DefaultOptions() {
		t.Errorf("wpml defaults off: %+v", opt.Wpml)
	}

	// Junk hover values mean nothing is hovered.
	for _,junk := range []string{"f1", ":3", "f1:x", "f1:-2"} {
		opt = FormValueDisplayOptions(httptest.NewRequest("GET", "/?hover="+junk, nil))
		if opt.HoverId != "" || opt.HoverIdx != -1 {
			t.Errorf("hover=%q should parse as nothing, got %s:%d", junk, opt.HoverId, opt.HoverIdx)
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
