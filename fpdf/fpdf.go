// Provides routines to render missions as PDFs in various ways
package fpdf

import(
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/skyloom/wayline/frame"
	"github.com/skyloom/wayline/path"
	"github.com/skyloom/wayline/stats"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// ProfileEntry is one flight's worth of inputs for a profile page.
type ProfileEntry struct {
	Caption   string
	Samples   []frame.Sample
	Curve     *path.Curve
	MarkIdx   int    // waypoint to highlight; ignored unless MarkLabel is set
	MarkLabel string
}

// {{{ newProfile

// newProfile fits the axis ranges to the entry, rounding up so the
// gridlines land on round numbers.
func newProfile(e ProfileEntry) *ProfilePdf {
	g := ProfilePdf{
		ToShow: map[string]bool{"altitude":true, "speed":true, "gimbalpitch":true},
		PathProjector: &ProjectAlongPath{},
		Caption: e.Caption,
	}

	if m := stats.Compute(e.Samples); m != nil {
		g.AltitudeMax = roundUpTo(m.MaxAltFt, 100)
		if m.MinAltFt < 0 {
			g.AltitudeMin = -roundUpTo(-m.MinAltFt, 100)
		}
		g.PathDistMaxFt = roundUpTo(m.LengthFt, 500)
		g.DistGridEveryFt = g.PathDistMaxFt / 5
	}

	return &g
}

func roundUpTo(v, step float64) float64 {
	if v <= 0 { return step }
	return math.Ceil(v/step) * step
}

// }}}

// {{{ WriteProfiles

// WriteProfiles renders one page per entry into a single document.
func WriteProfiles(output io.Writer, entries []ProfileEntry) error {
	var pdf *gofpdf.Fpdf

	for _,e := range entries {
		g := newProfile(e)
		g.Fpdf = pdf
		g.Init()
		g.DrawFrames()
		if err := g.DrawProfiledFlight(e.Samples); err != nil {
			return err
		}
		g.DrawCurveProfile(e.Curve)
		if e.MarkLabel != "" && e.MarkIdx >= 0 && e.MarkIdx < len(e.Samples) {
			g.DrawWaypointMark(e.MarkIdx, e.MarkLabel)
		}
		g.DrawCaption()
		pdf = g.Fpdf
	}

	if pdf == nil {
		pdf = gofpdf.New("P", "mm", "Letter", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "", 10)
		pdf.MoveTo(10, 10)
		pdf.Cell(40, 10, "No flights loaded")
	}

	return pdf.Output(output)
}

// }}}
// {{{ WriteProfile

func WriteProfile(output io.Writer, e ProfileEntry) error {
	return WriteProfiles(output, []ProfileEntry{e})
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
