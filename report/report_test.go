package report

import(
	"bytes"
	"strings"
	"testing"

	"github.com/skypies/geo"
	"github.com/xuri/excelize/v2"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
)

func fp(v float64) *float64 { return &v }

// Three samples along two 3-4-5m legs, so the track length is exactly 10m.
func testSamples() []frame.Sample {
	return []frame.Sample{
		{Waypoint: wayline.Waypoint{AltitudeFt: 100, SpeedMs: fp(4)}, Pos: frame.Vec3{0,0,0}},
		{Waypoint: wayline.Waypoint{AltitudeFt: 120},                 Pos: frame.Vec3{3,0,4}},
		{Waypoint: wayline.Waypoint{AltitudeFt: 90,  SpeedMs: fp(6)}, Pos: frame.Vec3{6,0,8}},
	}
}

func testReport() Report {
	r := BlankReport()
	r.Name = "missions"
	f := wayline.Flight{
		Id: "f1",
		Name: "orchard.csv",
		Poi: &wayline.Poi{Latlong: geo.Latlong{Lat: 47.8495, Long: -114.2615}},
	}
	r.AddFlight(&f, testSamples())
	return r
}

func TestAddFlightRow(t *testing.T) {
	r := testReport()

	if len(r.RowsText) != 1 {
		t.Fatalf("expected 1 row, got %d", len(r.RowsText))
	}
	if r.HeadersText[0] != "flight" || len(r.HeadersText) != 10 {
		t.Errorf("unexpected headers %v", r.HeadersText)
	}

	expected := []string{"f1", "orchard.csv", "3", "10.0", "33", "90", "120",
		"5.0", "11.2", "47.84950,-114.26150"}
	row := r.RowsText[0]
	if len(row) != len(expected) {
		t.Fatalf("row has %d cells, expected %d: %v", len(row), len(expected), row)
	}
	for i,want := range expected {
		if row[i] != want {
			t.Errorf("cell[%d] (%s): got %q, expected %q", i, r.HeadersText[i], row[i], want)
		}
	}

	if r.I["[A] flights considered"] != 1 || r.I["[B] flights reported"] != 1 {
		t.Errorf("counters off: %v", r.I)
	}
	if r.I["[C] flights with a POI"] != 1 {
		t.Errorf("POI counter off: %v", r.I)
	}
}

func TestAddFlightNothingToProject(t *testing.T) {
	r := BlankReport()
	f := wayline.Flight{Id: "f1", Name: "empty.csv"}
	r.AddFlight(&f, nil)

	if len(r.RowsText) != 0 {
		t.Errorf("expected no rows, got %v", r.RowsText)
	}
	if r.I["[B] Eliminated: no projectable waypoints"] != 1 {
		t.Errorf("elimination counter off: %v", r.I)
	}
	if !strings.Contains(r.Log, "skipped") {
		t.Errorf("expected a skip note in the log, got %q", r.Log)
	}
}

func TestMetadataTable(t *testing.T) {
	r := testReport()
	table := r.MetadataTable()

	kv := map[string]string{}
	for _,row := range table {
		kv[row[0]] = row[1]
	}

	if kv["[A] flights considered"] != "1" {
		t.Errorf("metadata missing counters: %v", kv)
	}
	if kv["[C] total length, m"] != "10.0" {
		t.Errorf("total length off: %v", kv)
	}
	if kv["[Y] leg ft, N"] != "2" || kv["[Z] alt ft, N"] != "3" {
		t.Errorf("histogram stats off: %v", kv)
	}

	for i := 1; i < len(table); i++ {
		if table[i-1][0] >= table[i][0] {
			t.Errorf("metadata keys not sorted: %q before %q", table[i-1][0], table[i][0])
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	r := BlankReport()
	r.LogLevel = INFO
	r.Debug("quiet\n")
	if r.Log != "" {
		t.Errorf("debug leaked through INFO level: %q", r.Log)
	}
	r.Info("loud\n")
	if r.Log != "loud\n" {
		t.Errorf("info suppressed: %q", r.Log)
	}
}

func TestFinishSummary(t *testing.T) {
	r := testReport()
	r.FinishSummary()
	if !strings.Contains(r.Log, "1 rows") {
		t.Errorf("summary missing row count: %q", r.Log)
	}
}

func TestWriteCSV(t *testing.T) {
	r := testReport()

	buf := bytes.Buffer{}
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "flight,file,waypoints,") {
		t.Errorf("bad header line %q", lines[0])
	}
	// The POI cell contains a comma, so the csv writer must quote it.
	if !strings.HasSuffix(lines[1], `"47.84950,-114.26150"`) {
		t.Errorf("POI cell not quoted: %q", lines[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	r := testReport()

	buf := bytes.Buffer{}
	if err := r.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	x,err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Flights" || sheets[1] != "Distributions" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	for _,tc := range []struct{ sheet, cell, expected string }{
		{"Flights", "A1", "flight"},
		{"Flights", "B2", "orchard.csv"},
		{"Flights", "D2", "10.0"},
		{"Distributions", "A1", "[A] flights considered"},
		{"Distributions", "B1", "1"},
	} {
		got,err := x.GetCellValue(tc.sheet, tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", tc.sheet, tc.cell, err)
		}
		if got != tc.expected {
			t.Errorf("%s!%s: got %q, expected %q", tc.sheet, tc.cell, got, tc.expected)
		}
	}
}
