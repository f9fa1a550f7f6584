package report

import(
	"encoding/csv"
	"io"
)

// WriteCSV writes the header row then one row per flight. Content-type
// and disposition headers are the HTTP layer's problem.
func (r *Report)WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Write(r.HeadersText)
	for _,row := range r.RowsText {
		csvWriter.Write(row)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
