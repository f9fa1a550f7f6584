package report

import(
	"fmt"
	"sort"

	"github.com/skypies/util/histogram"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
	"github.com/skyloom/wayline/stats"
)

type ReportLogLevel int
const(
	DEBUG = iota
	INFO
)

// Report accumulates one summary row per flight, plus distributions
// over every leg and waypoint it is fed. It only ever sees projected
// samples; the caller owns the session and its reference point.
type Report struct {
	Name      string
	LogLevel  ReportLogLevel

	// Output state
	RowsText    [][]string
	HeadersText []string

	I         map[string]int
	F         map[string]float64
	S         map[string]string

	LegFt     histogram.Histogram // distances between consecutive waypoints, in feet
	AltFt     histogram.Histogram // waypoint altitudes, in feet

	Stats histogram.Set // internal performance counters
	Log string
}

func BlankReport() Report {
	return Report{
		I: map[string]int{},
		F: map[string]float64{},
		S: map[string]string{},
		RowsText: [][]string{},
		HeadersText: []string{},
		LegFt: histogram.Histogram{ValMin:0, ValMax:2000, NumBuckets:40},
		AltFt: histogram.Histogram{ValMin:0, ValMax:400, NumBuckets:40},
		Stats: histogram.NewSet(40000),  // maxval, in micros; 40ms == 40000us
	}
}

func (r *Report)Logger(level ReportLogLevel, s string) {
	if level < r.LogLevel { return }
	r.Log += s
}
func (r *Report)Infof(s string,args ...interface{}) { r.Logger(INFO, fmt.Sprintf(s,args...)) }
func (r *Report)Debugf(s string,args ...interface{}) { r.Logger(DEBUG, fmt.Sprintf(s,args...)) }
func (r *Report)Info(s string) { r.Infof(s) }
func (r *Report)Debug(s string) { r.Debugf(s) }

func (r *Report)SetHeaders(headers []string) {
	if len(r.HeadersText) == 0 { r.HeadersText = headers }
}
func (r *Report)AddRow(text []string) {
	r.RowsText = append(r.RowsText, text)
}

// AddFlight summarizes one flight into a row, and feeds the leg and
// altitude distributions. Flights that project to nothing are counted
// but get no row.
func (r *Report)AddFlight(f *wayline.Flight, samples []frame.Sample) {
	r.SetHeaders([]string{
		"flight", "file", "waypoints", "length_m", "length_ft",
		"min_alt_ft", "max_alt_ft", "avg_speed_ms", "avg_speed_mph", "poi",
	})

	r.I["[A] flights considered"]++

	m := stats.Compute(samples)
	if m == nil {
		r.I["[B] Eliminated: no projectable waypoints"]++
		r.Debugf("%s: skipped, nothing to project\n", f.Name)
		return
	}

	r.I["[B] flights reported"]++
	r.F["[C] total length, m"] += m.LengthM

	poi := ""
	if f.HasPoi() {
		poi = fmt.Sprintf("%.5f,%.5f", f.Poi.Lat, f.Poi.Long)
		r.I["[C] flights with a POI"]++
	}

	r.AddRow([]string{
		f.Id,
		f.Name,
		fmt.Sprintf("%d", m.Points),
		fmt.Sprintf("%.1f", m.LengthM),
		fmt.Sprintf("%.0f", m.LengthFt),
		fmt.Sprintf("%.0f", m.MinAltFt),
		fmt.Sprintf("%.0f", m.MaxAltFt),
		fmt.Sprintf("%.1f", m.AvgSpeedMs),
		fmt.Sprintf("%.1f", m.AvgSpeedMph),
		poi,
	})

	for i,s := range samples {
		r.AltFt.Add(histogram.ScalarVal(s.AltitudeFt))
		if i > 0 {
			r.LegFt.Add(histogram.ScalarVal(s.Pos.Dist(samples[i-1].Pos) / wayline.MetersPerFoot))
		}
	}
}

func (r *Report)FinishSummary() {
	r.Infof("**** Stage: all done; %d rows\n", len(r.RowsText))
	r.Infof("Stats (in micros):-\n%s", r.Stats)
}

func (r *Report)MetadataTable()[][]string {
	all := map[string]string{}

	for k,v := range r.I { all[k] = fmt.Sprintf("%d", v) }
	for k,v := range r.F { all[k] = fmt.Sprintf("%.1f", v) }
	for k,v := range r.S { all[k] = v }

	if stats,valid := r.LegFt.Stats(); valid {
		all["[Y] leg ft, N"] = fmt.Sprintf("%d", stats.N)
		all["[Y] leg ft, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Y] leg ft, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Y] leg ft, 50%ile"] = fmt.Sprintf("%d", stats.Percentile50)
		all["[Y] leg ft, 90%ile"] = fmt.Sprintf("%d", stats.Percentile90)
	}
	if stats,valid := r.AltFt.Stats(); valid {
		all["[Z] alt ft, N"] = fmt.Sprintf("%d", stats.N)
		all["[Z] alt ft, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] alt ft, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Z] alt ft, 50%ile"] = fmt.Sprintf("%d", stats.Percentile50)
		all["[Z] alt ft, 90%ile"] = fmt.Sprintf("%d", stats.Percentile90)
	}

	keys := []string{}
	for k,_ := range all { keys = append(keys, k) }
	sort.Strings(keys)

	out := [][]string{}
	for _,k := range keys {
		out = append(out, []string{k, all[k]})
	}

	return out
}
