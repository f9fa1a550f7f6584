package ui

import(
	"net/http"
	"strconv"
	"strings"

	"github.com/skypies/util/widget"

	"github.com/skyloom/wayline/wpml"
)

// Common parameters for UI rendering, as parsed from CGI params
type DisplayOptions struct {
	ColorScheme ColorScheme
	Lens        string // a LensProfile name; empty leaves the session's selection alone

	HoverId  string
	HoverIdx int    // -1 when nothing is hovered

	Wpml wpml.Options // export knobs, for the KMZ handlers
}

// Parse a full set of display options
//  &colorby=altitude&lens=tele&hover=f1:3
func FormValueDisplayOptions(r *http.Request) DisplayOptions {
	opt := DisplayOptions{
		ColorScheme: FormValueColorScheme(r),
		Lens:        r.FormValue("lens"),
		Wpml:        FormValueWpmlOptions(r),
	}
	opt.HoverId, opt.HoverIdx = formValueHover(r)
	return opt
}

// &hover=f1:3 names a flight and a waypoint index within it. Anything
// unparseable means nothing is hovered.
func formValueHover(r *http.Request) (string, int) {
	parts := strings.SplitN(r.FormValue("hover"), ":", 2)
	if len(parts) != 2 || parts[0] == "" { return "", -1 }

	idx,err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 { return "", -1 }

	return parts[0], idx
}

// Export knobs ride on top of the defaults; a typo'd dropdown value
// falls back to default behavior downstream rather than erroring here.
//  &speed=7.5&drone=matrice_30&heading=manual&rclost=executeLostAction&straight=1
func FormValueWpmlOptions(r *http.Request) wpml.Options {
	opt := wpml.DefaultOptions()

	if v := widget.FormValueFloat64EatErrs(r, "speed"); v > 0 { opt.MissionSpeedMs = v }
	if v := r.FormValue("drone"); v != "" { opt.DroneType = v }
	if v := r.FormValue("heading"); v != "" { opt.HeadingMode = v }
	if v := r.FormValue("rclost"); v != "" { opt.SignalLostAction = v }
	opt.AllowStraightLines = widget.FormValueCheckbox(r, "straight")

	return opt
}
