// Package litchi reads Litchi mission hub CSV exports into flights.
package litchi

import(
	"fmt"
	"io"

	"github.com/skyloom/wayline"
)

// {{{ ReadFrom

// ReadFrom parses one CSV file into one Flight. The returned debug
// string (also stored on the flight) records what was kept and what
// was dropped, for the viewer's inspection panel.
//
// Failure modes: a file without any data line is an EmptyInputError; a
// file whose every data row fails validation is a NoWaypointsError; a
// row the csv layer can't tokenize at all is a ParseError. All three
// name the source file.
func ReadFrom(name string, rdr io.Reader) (*wayline.Flight, string, error) {
	str := fmt.Sprintf("---- Waypoints loaded from %s\n", name)

	waypoints := []wayline.Waypoint{}
	var poi *wayline.Poi
	nDropped := 0

	rowReader := NewRowReader(rdr)

	i := 1
	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil {
			return nil,str, wayline.ParseError{Filename: name, Detail: err.Error()}
		}
		i++

		wp,err := row.ToWaypoint()
		if err != nil {
			nDropped++
			str += fmt.Sprintf("%s:%d dropped: %v\n", name, i, err)
			continue
		}

		// First usable POI in the file applies to the whole flight.
		if poi == nil {
			poi = row.ToPoi()
		}

		waypoints = append(waypoints, wp)
	}

	if rowReader.RowsSeen() == 0 {
		return nil,str, wayline.EmptyInputError{Filename: name}
	}
	if len(waypoints) == 0 {
		return nil,str, wayline.NoWaypointsError{Filename: name}
	}

	str = fmt.Sprintf("---- File read, %d rows, %d waypoints (%d dropped, %d short)\n",
		rowReader.RowsSeen(), len(waypoints), nDropped, rowReader.RowsSkipped()) + str

	f := wayline.Flight{
		Name:      name,
		Waypoints: waypoints,
		Poi:       poi,
		DebugLog:  str,
	}

	return &f,str,nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
