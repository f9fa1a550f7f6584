package wayline

// The flight palette. Colors are assigned by load order and cycle; with
// ten entries the eleventh flight repeats the first flight's color.
var FlightPalette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
	"#fabed4", // pink
	"#9a6324", // brown
}

func ColorForLoadIndex(i int) string {
	if i < 0 { i = 0 }
	return FlightPalette[i % len(FlightPalette)]
}
