package ui

import(
	"fmt"
	"net/http"
	"time"

	"github.com/skyloom/wayline/report"
	"github.com/skyloom/wayline/viewer"
)

// {{{ buildReport

// Every loaded flight goes through the report, in load order. The
// per-flight wall time lands in the report's stats set.
func buildReport(s *viewer.Session) report.Report {
	rep := report.BlankReport()

	for _,f := range s.Flights() {
		tStart := time.Now()
		rep.AddFlight(f, s.Samples(f))
		rep.Stats.RecordValue("flight", (time.Since(tStart).Nanoseconds() / 1000))
	}
	rep.FinishSummary()

	return rep
}

// }}}

// {{{ ReportCSVHandler

// &debug=1 dumps the metadata table and log instead of the rows.

func ReportCSVHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	rep := buildReport(s)

	if r.FormValue("debug") != "" {
		str := ""
		for _,row := range rep.MetadataTable() {
			str += fmt.Sprintf("-> %v <-\n", row)
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(fmt.Sprintf("OK\n\n%s\n%s", str, rep.Log)))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="missions.csv"`)
	if err := rep.WriteCSV(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}
// {{{ ReportXLSXHandler

func ReportXLSXHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	rep := buildReport(s)

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="missions.xlsx"`)
	if err := rep.WriteXLSX(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
