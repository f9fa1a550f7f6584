package ui

import "net/http"

var(
	grad12 = []string{
		"#00BFA9",
		"#00C266",
		"#00C521",
		"#25C900",
		"#6FCC00",
		"#BBD000",
		"#D39D00",
		"#D75300",
		"#DA0600",
		"#DE0048",
		"#E10099",
		"#DB00E5",
	}
)

type ColorScheme int
const(
	ByFlight ColorScheme = iota
	ByAltitude
)

func (cs ColorScheme)String() string {
	switch cs {
	case ByFlight:   return "flight"
	case ByAltitude: return "altitude"
	default: return ""
	}
}

func FormValueColorScheme(r *http.Request) ColorScheme {
	switch r.FormValue("colorby") {
	case "flight":   return ByFlight
	case "altitude": return ByAltitude
	default:         return ByFlight
	}
}

// Twelve bands of 35ft, covering the 0-400ft envelope these missions
// live inside. Anything above 385ft gets the coolest color.
func ColorByAltitude(alt float64) string {
	switch {
	case alt <  35: return grad12[11]
	case alt <  70: return grad12[10]
	case alt < 105: return grad12[9]
	case alt < 140: return grad12[8]
	case alt < 175: return grad12[7]
	case alt < 210: return grad12[6]
	case alt < 245: return grad12[5]
	case alt < 280: return grad12[4]
	case alt < 315: return grad12[3]
	case alt < 350: return grad12[2]
	case alt < 385: return grad12[1]
	default:        return grad12[0]
	}
}
