// Package wpml reads and writes DJI wayline mission containers: a KMZ
// (ZIP) holding a template document and a waylines document under a
// wpmz/ prefix. The vendor schema is closed; element names, nesting and
// enumerated values here are exactly what the aircraft accepts.
package wpml

import(
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const(
	KmlNamespace  = "http://www.opengis.net/kml/2.2"
	WpmlNamespace = "http://www.dji.com/wpmz/1.0.2"

	TemplatePath = "wpmz/template.kml"
	WaylinesPath = "wpmz/waylines.wpml"
)

// {{{ etree helpers

// childText returns the text of a (possibly nested) child element, "" if
// absent. Paths use etree syntax, e.g. "wpml:waypointHeadingParam/wpml:waypointHeadingAngle".
func childText(e *etree.Element, path string) string {
	if el := e.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// optFloat parses a child's text, nil on absence or junk. This is the
// same degrade-to-default policy the CSV side uses.
func optFloat(e *etree.Element, path string) *float64 {
	s := childText(e, path)
	if s == "" { return nil }
	v,err := strconv.ParseFloat(s, 64)
	if err != nil { return nil }
	return &v
}

// addText creates <wpml:tag>text</wpml:tag> under parent.
func addText(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

func addInt(parent *etree.Element, tag string, v int) *etree.Element {
	return addText(parent, tag, strconv.Itoa(v))
}

// addFloat rounds to 6dp before the shortest-form print, so unit
// conversions come out as "30.48" rather than "30.480000000000004".
func addFloat(parent *etree.Element, tag string, v float64) *etree.Element {
	v = math.Round(v*1e6) / 1e6
	return addText(parent, tag, strconv.FormatFloat(v, 'f', -1, 64))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
