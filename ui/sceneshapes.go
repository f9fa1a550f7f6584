package ui

import(
	"fmt"
	"html/template"

	"github.com/skypies/geo"
)

// SceneShapes is a single thing that contains all the things we want to render in a scene
type SceneShapes struct {
	Lines  []SceneLine  `json:"lines"`
	Points []ScenePoint `json:"points"`
	Labels []SceneLabel `json:"labels"`
}

// {{{ NewSceneShapes

func NewSceneShapes() *SceneShapes {
	ss := SceneShapes{
		Lines:  []SceneLine{},
		Points: []ScenePoint{},
		Labels: []SceneLabel{},
	}
	return &ss
}

// }}}
// {{{ ss.Add [Line,Point,Label]

func (ss1 *SceneShapes)Add(ss2 *SceneShapes) {
	ss1.Lines  = append(ss1.Lines,  ss2.Lines...)
	ss1.Points = append(ss1.Points, ss2.Points...)
	ss1.Labels = append(ss1.Labels, ss2.Labels...)
}

func (ss1 *SceneShapes)AddLine(sl SceneLine) { ss1.Lines = append(ss1.Lines, sl) }
func (ss1 *SceneShapes)AddPoint(sp ScenePoint) { ss1.Points = append(ss1.Points, sp) }
func (ss1 *SceneShapes)AddLabel(sl SceneLabel) { ss1.Labels = append(ss1.Labels, sl) }

// }}}

// {{{ SceneLine{}

type SceneLine struct {
	Start geo.Latlong `json:"s"`
	End   geo.Latlong `json:"e"`

	Color   string  `json:"color"`    // A hex color value (e.g. "#ff8822")
	Opacity float64 `json:"opacity"`
	Dashed  bool    `json:"dashed,omitempty"` // the hover-only FOV cone renders dashed
}

// }}}
// {{{ ScenePoint{}

type ScenePoint struct {
	Pos   geo.Latlong `json:"pos"`
	AltFt float64     `json:"alt_ft"`

	Color string `json:"color"`
	Text  string `json:"info"`
}

// }}}
// {{{ SceneLabel{}

type SceneLabel struct {
	Pos  geo.Latlong `json:"pos"`
	Text string      `json:"text"`
}

// }}}

// {{{ sl.ToJSStr

func (sl SceneLine)ToJSStr() string {
	color,op := sl.Color, sl.Opacity
	if color == "" { color = "#000000" }
	if op == 0.0 { op = 1.0 }
	str := fmt.Sprintf("s:{lat:%f, lng:%f}, e:{lat:%f, lng:%f}, color:\"%s\", opacity:%.2f",
		sl.Start.Lat, sl.Start.Long, sl.End.Lat, sl.End.Long, color, op)
	if sl.Dashed { str += ", dashed:true" }
	return str
}

// }}}
// {{{ sp.ToJSStr

func (sp ScenePoint)ToJSStr() string {
	color := sp.Color
	if color == "" { color = "#000000" }
	return fmt.Sprintf("pos:{lat:%f, lng:%f}, alt:%.0f, color:%q, info:%q",
		sp.Pos.Lat, sp.Pos.Long, sp.AltFt, color, sp.Text)
}

// }}}
// {{{ sl.ToJSStr (labels)

func (sl SceneLabel)ToJSStr() string {
	return fmt.Sprintf("pos:{lat:%f, lng:%f}, text:%q", sl.Pos.Lat, sl.Pos.Long, sl.Text)
}

// }}}

// These FooToJSMap methods are invoked from the scene-shapes.js template
// {{{ ss.LinesToJSMap

func (ss SceneShapes)LinesToJSMap() template.JS {
	str := "{\n"
	for i,sl := range ss.Lines {
		str += fmt.Sprintf("    %d: {%s},\n", i, sl.ToJSStr())
	}
	return template.JS(str + "  }\n")
}

// }}}
// {{{ ss.PointsToJSMap

func (ss SceneShapes)PointsToJSMap() template.JS {
	str := "{\n"
	for i,sp := range ss.Points {
		str += fmt.Sprintf("    %d: {%s},\n", i, sp.ToJSStr())
	}
	return template.JS(str + "  }\n")
}

// }}}
// {{{ ss.LabelsToJSMap

func (ss SceneShapes)LabelsToJSMap() template.JS {
	str := "{\n"
	for i,sl := range ss.Labels {
		str += fmt.Sprintf("    %d: {%s},\n", i, sl.ToJSStr())
	}
	return template.JS(str + "  }\n")
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
