package litchi

import(
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
)

// {{{ notes

/* Litchi mission hub exports CSV rows with a header line. Header names
vary a little across versions (case, unit suffixes), so we normalize
them and turn each row into a map from header name to value.

The full set looks like this:

[0]latitude, [1]longitude, [2]altitude(ft), [3]heading(deg),
  [4]curvesize(ft), [5]rotationdir, [6]gimbalmode, [7]gimbalpitchangle,
  [8]altitudemode, [9]speed(m/s),
  [10]poi_latitude, [11]poi_longitude, [12]poi_altitude(ft),
  [13]poi_altitudemode, [14]photo_timeinterval, [15]photo_distinterval

E.g.:

47.850423,-114.262894,100,0,0,0,2,-90,0,5,0,0,0,0,0,0

Only latitude/longitude/altitude are load-bearing; everything else
falls back to a default when missing or unparsable.
 */

// }}}

type RowReader struct {
	csvreader  *csv.Reader
	headers   []string
	nRows      int // data rows seen, including short ones
	nShort     int // rows dropped for having fewer fields than the header
}

func NewRowReader(ioreader io.Reader) *RowReader {
	csvreader := csv.NewReader(ioreader)
	csvreader.FieldsPerRecord = -1 // we do our own length policing

	rdr := RowReader{
		csvreader: csvreader,
	}

	headers,_ := rdr.csvreader.Read() // Discard err, we'll get it when we try to get next row
	for _,h := range headers {
		rdr.headers = append(rdr.headers, NormalizeHeader(h))
	}
	return &rdr
}

// {{{ rdr.Read()

// Read returns the next data row as a field bag. A row with fewer
// fields than the header is dropped without surfacing an error (that's
// what the format's consumers expect); a row with more fields keeps
// just the first len(headers) of them.
func (r *RowReader)Read() (Row,error) {
	for {
		vals,err := r.csvreader.Read()
		if err != nil {
			return Row{}, err
		}
		r.nRows++

		if len(vals) < len(r.headers) {
			r.nShort++
			continue
		}

		m := map[string]string{}
		for i,h := range r.headers {
			m[h] = vals[i]
		}
		return m,nil
	}
}

// }}}

func (r *RowReader)RowsSeen() int    { return r.nRows }
func (r *RowReader)RowsSkipped() int { return r.nShort }

// {{{ NormalizeHeader

// NormalizeHeader case-folds, strips a parenthesized unit annotation
// ("altitude(ft)" -> "altitude"), and collapses runs of anything
// non-alphanumeric into single underscores.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if i := strings.Index(h, "("); i >= 0 {
		if j := strings.Index(h[i:], ")"); j >= 0 {
			h = h[:i] + h[i+j+1:]
		}
	}

	out := strings.Builder{}
	pendingSep := false
	for _,c := range h {
		alnum := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		if alnum {
			if pendingSep && out.Len() > 0 { out.WriteByte('_') }
			pendingSep = false
			out.WriteRune(c)
		} else {
			pendingSep = true
		}
	}
	return out.String()
}

// }}}

// Row is the raw field bag for one CSV line: normalized header name to
// raw string value. Conversion to a Waypoint is total; bad optional
// values become nil, never an error.
type Row map[string]string

// {{{ row.ToWaypoint

// ToWaypoint validates the bag into a typed waypoint. Only a row whose
// latitude, longitude and altitude all parse to finite numbers is kept.
func (r Row)ToWaypoint() (wayline.Waypoint, error) {
	lat  := r.optFloat("latitude")
	long := r.optFloat("longitude")
	alt  := r.optFloat("altitude")
	if lat == nil || long == nil || alt == nil {
		return wayline.Waypoint{}, fmt.Errorf("latitude/longitude/altitude not all finite")
	}

	wp := wayline.Waypoint{
		Latlong:     geo.Latlong{Lat: *lat, Long: *long},
		AltitudeFt:  *alt,

		HeadingDeg:   r.optFloat("heading"),
		CurveSizeFt:  r.optFloat("curvesize"),
		RotationDir:  r.optFloat("rotationdir"),
		GimbalMode:   r.optFloat("gimbalmode"),
		GimbalPitch:  r.optFloat("gimbalpitchangle"),
		AltitudeMode: r.optFloat("altitudemode"),
		SpeedMs:      r.optFloat("speed"),

		PhotoTimeInterval: r.optFloat("photo_timeinterval"),
		PhotoDistInterval: r.optFloat("photo_distinterval"),
	}

	return wp, nil
}

// }}}
// {{{ row.ToPoi

// ToPoi extracts the row's point of interest, if it has a usable one.
// Litchi writes zeros into the poi columns of rows that don't use a
// POI, so (0,0) counts as absent.
func (r Row)ToPoi() *wayline.Poi {
	lat  := r.optFloat("poi_latitude")
	long := r.optFloat("poi_longitude")
	if lat == nil || long == nil { return nil }
	if *lat == 0 && *long == 0 { return nil }

	return &wayline.Poi{
		Latlong:      geo.Latlong{Lat: *lat, Long: *long},
		AltitudeFt:   r.optFloat("poi_altitude"),
		AltitudeMode: r.optFloat("poi_altitudemode"),
	}
}

// }}}

func (r Row)optFloat(key string) *float64 {
	v,err := strconv.ParseFloat(strings.TrimSpace(r[key]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v,0) { return nil }
	return &v
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
