package ui

import(
	"html/template"
	"net/http"
	"time"

	"github.com/skypies/geo"
	hw "github.com/skypies/util/handlerware"
	"github.com/skypies/util/widget"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/viewer"
	"github.com/skyloom/wayline/wpml"
)

// The webapp's singleton template set. The app's main() populates it
// via LoadTemplates before serving anything.
var templates *template.Template

func LoadTemplates(dir string) {
	templates = hw.ParseRecursive(template.New("").Funcs(TemplateFuncMap()), dir)
}

// {{{ getSceneDisplayParams

//  &colorby=altitude
//  &lens=tele
//  &hover=f1:3
//  &zoom=18
//  &refpt_lat=37&refpt_long=-122   (move the projection reference point)

func getSceneDisplayParams(s *viewer.Session, r *http.Request, params map[string]interface{}) {
	opt := FormValueDisplayOptions(r)

	if opt.Lens != "" { s.SetLens(opt.Lens) }
	if refpt := geo.FormValueLatlong(r, "refpt"); !refpt.IsNil() {
		s.SetReference(refpt)
	}
	s.Hover(opt.HoverId, opt.HoverIdx)

	zoom := widget.FormValueInt64(r, "zoom")
	if zoom == 0 { zoom = 17 }

	shapes := NewSceneShapes()
	for _,f := range s.Flights() {
		shapes.Add(FlightToSceneShapes(s, f, opt.ColorScheme))
	}

	params["Zoom"] = zoom
	params["Center"] = sceneCenter(s)
	params["ColorScheme"] = opt.ColorScheme.String()
	params["ColorSchemes"] = []string{ByFlight.String(), ByAltitude.String()}
	params["Lens"] = s.Lens().Name
	params["Shapes"] = shapes
}

// sceneCenter picks somewhere for the map to open: the first waypoint
// of the first flight, if any.
func sceneCenter(s *viewer.Session) geo.Latlong {
	for _,f := range s.Flights() {
		if len(f.Waypoints) > 0 { return f.Waypoints[0].Latlong }
	}
	return geo.Latlong{}
}

// }}}
// {{{ flightTableRows

type flightTableRow struct {
	Id, Name, Color string
	Stats           string
	HasPoi          bool
	DebugLog        string
}

func flightTableRows(s *viewer.Session) []flightTableRow {
	rows := []flightTableRow{}

	for _,f := range s.Flights() {
		row := flightTableRow{
			Id: f.Id,
			Name: f.Name,
			Color: f.Color,
			HasPoi: f.HasPoi(),
			DebugLog: f.DebugLog,
		}
		if m := s.Stats(f); m != nil { row.Stats = m.String() }
		rows = append(rows, row)
	}

	return rows
}

// }}}
// {{{ lensNames, droneKeys

func lensNames() []string {
	names := []string{}
	for _,l := range wayline.Lenses { names = append(names, l.Name) }
	return names
}

func droneKeys() []string {
	keys := []string{}
	for _,d := range wpml.DroneTypes { keys = append(keys, d.Key) }
	return keys
}

// }}}

// {{{ ViewHandler

// The single page: flight list, the scene as inline JS vars, lens and
// export controls.

func ViewHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	opt := FormValueDisplayOptions(r)

	var params = map[string]interface{}{
		"Title": "wayline",
		"Flights": flightTableRows(s),
		"LensNames": lensNames(),
		"UploadExtensions": []string{".kmz", ".csv"},
		"Now": time.Now(),
	}
	getSceneDisplayParams(s, r, params)

	// The export form's fields, consumed via {{unprefixdict "export" .}}
	params["export_Speed"] = opt.Wpml.MissionSpeedMs
	params["export_Drone"] = opt.Wpml.DroneType
	params["export_DroneKeys"] = droneKeys()
	params["export_Heading"] = opt.Wpml.HeadingMode
	params["export_HeadingModes"] = []string{
		wpml.HeadingPoiOrInterpolate, wpml.HeadingFollowWayline, wpml.HeadingManual,
	}
	params["export_RCLost"] = opt.Wpml.SignalLostAction
	params["export_RCLostActions"] = []string{wpml.SignalLostContinue, wpml.SignalLostExecute}

	if err := templates.ExecuteTemplate(w, "view", params); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
