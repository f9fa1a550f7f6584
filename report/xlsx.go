package report

import(
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX emits a workbook: a Flights sheet holding the rows, and a
// Distributions sheet holding the counters and histogram stats.
func (r *Report)WriteXLSX(w io.Writer) error {
	x := excelize.NewFile()
	defer x.Close()

	writeRow := func(sheet string, rowIdx int, cells []string) error {
		for col,v := range cells {
			cell,err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil { return err }
			if err := x.SetCellValue(sheet, cell, v); err != nil { return err }
		}
		return nil
	}

	flights := "Flights"
	if err := x.SetSheetName("Sheet1", flights); err != nil { return err }
	if err := writeRow(flights, 1, r.HeadersText); err != nil { return err }
	for i,row := range r.RowsText {
		if err := writeRow(flights, i+2, row); err != nil { return err }
	}

	dists := "Distributions"
	if _,err := x.NewSheet(dists); err != nil { return err }
	for i,kv := range r.MetadataTable() {
		if err := writeRow(dists, i+1, kv); err != nil { return err }
	}

	return x.Write(w)
}
