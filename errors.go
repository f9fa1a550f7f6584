package wayline

import "fmt"

// The four failure kinds a file load or export can surface. All are
// recoverable at the file boundary: one file's error never unloads
// another file's flight. Each names its source file.

type ParseError struct {
	Filename string
	Detail   string
}
func (e ParseError)Error() string {
	return fmt.Sprintf("%s: parse error: %s", e.Filename, e.Detail)
}

type EmptyInputError struct {
	Filename string
}
func (e EmptyInputError)Error() string {
	return fmt.Sprintf("%s: no data rows", e.Filename)
}

type NoWaypointsError struct {
	Filename string
}
func (e NoWaypointsError)Error() string {
	return fmt.Sprintf("%s: no valid waypoints", e.Filename)
}

type UnsupportedFormatError struct {
	Filename string
	Ext      string
}
func (e UnsupportedFormatError)Error() string {
	return fmt.Sprintf("%s: unsupported format %q (want .csv or .kmz)", e.Filename, e.Ext)
}
