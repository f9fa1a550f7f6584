package fpdf

import(
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
	"github.com/skyloom/wayline/path"
)

var (
	RedRGB   = []int{0xff, 0, 0}
	GreenRGB = []int{0, 0xff, 0}
	BlueRGB  = []int{0, 0, 0xff}
	CurveRGB = []int{0x88, 0x88, 0xcc}
)

type ProfilePdf struct {
	ToShow          map[string]bool       // Which grids to render
	Grids           map[string]*BaseGrid

	AltitudeMin     float64  // Min/max for the altitude and distance axes
	AltitudeMax     float64
	PathDistMinFt   float64
	PathDistMaxFt   float64
	DistGridEveryFt float64

	DefaultSpeedMs  float64  // plotted where a waypoint has no speed override

	PathProjector   // embedded

	LineThickness   float64
	LineOpacity     float64 // 0.0==transparent, 1.0==opaque

	*gofpdf.Fpdf    // embedded

	Caption         string
	Debug           string
	ShowDebug       bool
}

// {{{ pp.Init

func (g *ProfilePdf)Init() {
	// Callers can chain several profiles into one document by passing
	// the previous profile's Fpdf along.
	if g.Fpdf == nil {
		g.Fpdf = gofpdf.New("P", "mm", "Letter", "")
	}
	g.AddPage()
	g.SetFont("Arial", "", 10)

	if g.LineThickness == 0.0   { g.LineThickness = 0.25 }
	if g.LineOpacity == 0.0     { g.LineOpacity = 1.0 }
	if g.AltitudeMax == 0.0     { g.AltitudeMax = 400 }
	if g.PathDistMaxFt == 0.0   { g.PathDistMaxFt = 1000 }
	if g.DistGridEveryFt == 0.0 { g.DistGridEveryFt = g.PathDistMaxFt / 5 }
	if g.DefaultSpeedMs == 0.0  { g.DefaultSpeedMs = 5.0 }

	g.Grids = map[string]*BaseGrid{}

	u,v := 22.0,35.0 // The top-left origin, in PDF space; increment as we go down the page

	incompleteGrid := func() *BaseGrid {
		return &BaseGrid{
			Fpdf: g.Fpdf,
			OffsetU: u,
			OffsetV: v,
			W: 170,
			MinX: g.PathDistMinFt,
			MaxX: g.PathDistMaxFt,
			XGridlineEvery: g.DistGridEveryFt,
			Clip: true,    // set to false for debugging datasets
		}
	}

	if g.ToShow["altitude"] {
		ng := incompleteGrid()
		g.Grids["altitude"] = ng
		ng.LineColor = RedRGB
		ng.H = 100
		ng.MinY = g.AltitudeMin
		ng.MaxY = g.AltitudeMax
		ng.YMinorGridlineEvery = 50
		ng.YGridlineEvery = 100
		ng.XMinorGridlineEvery = g.DistGridEveryFt / 5
		ng.XTickFmt = "%.0fft"
		ng.XOriginTickFmt = "%.0fft (launch)"
		ng.YTickFmt = "%.0fft"
		ng.XTickOtherSide = true

		v += 110
	}

	if g.ToShow["speed"] {
		ng := incompleteGrid()
		g.Grids["speed"] = ng
		ng.LineColor = RedRGB
		ng.H = 50
		ng.MinY = 0
		ng.MaxY = 20
		ng.YGridlineEvery = 5
		ng.YTickFmt = "%.0f m/s"

		// This is overlayed into the same grid as speed
		if g.ToShow["gimbalpitch"] {
			ng = incompleteGrid()
			g.Grids["gimbalpitch"] = ng
			ng.LineColor = GreenRGB
			ng.H = 50
			ng.MinY = -90
			ng.MaxY = 30
			ng.YGridlineEvery = 30
			ng.YTickOtherSide = true
			ng.YTickFmt = "%.0f deg"
			ng.YOriginTickFmt = "%.0f (level)"
			ng.NoGridlines = true
		}

		v += 60
	}
}

// }}}

// {{{ pp.DrawFrames

func (g ProfilePdf)DrawFrames() {
	for _,grid := range g.Grids {
		grid.DrawGridlines()
	}
}

// }}}
// {{{ pp.DrawCaption

func (g ProfilePdf)DrawCaption() {
	title := ""

	if g.PathProjector != nil {
		title += fmt.Sprintf("* Projection: %s\n", g.PathProjector.Description())
	}

	title += g.Caption

	if g.ShowDebug {
		title += "--DEBUG--\n" + g.Debug
	}

	g.SetTextColor(0x50, 0x70, 0xc0)
	g.MoveTo(10, 10)
	g.MultiCell(0, 4, title, "", "", false)
	g.DrawPath("D")
}

// }}}

// {{{ pp.DrawProfiledFlight

// DrawProfiledFlight plots one segment per pair of waypoints: altitude
// against distance, plus speed and gimbal pitch when those grids are on.
func (g *ProfilePdf)DrawProfiledFlight(samples []frame.Sample) error {
	if len(samples) == 0 {
		return nil
	}
	if g.PathProjector == nil {
		return fmt.Errorf("DrawProfiledFlight: no projector")
	}
	if err := g.PathProjector.Setup(samples); err != nil {
		return err
	}

	g.SetDrawColor(0xff, 0x00, 0x00)
	g.SetAlpha(g.LineOpacity, "")

	for i,_ := range samples[1:] {
		x1,alt1 := g.PathProjector.Project(i)
		x2,alt2 := g.PathProjector.Project(i+1)

		g.SetLineWidth(g.LineThickness)

		if grid,exists := g.Grids["altitude"]; exists {
			grid.Line(x1,alt1, x2,alt2)
		}

		// We can re-use the dist values (x1,x2), and plot other functions of the waypoints
		if grid,exists := g.Grids["speed"]; exists {
			grid.Line(x1,g.speedOf(samples[i]), x2,g.speedOf(samples[i+1]))
		}
		if grid,exists := g.Grids["gimbalpitch"]; exists {
			grid.Line(x1,samples[i].Pitch(), x2,samples[i+1].Pitch())
		}
	}

	g.DrawPath("D")
	g.SetAlpha(1.0, "")

	return nil
}

func (g ProfilePdf)speedOf(s frame.Sample) float64 {
	if s.SpeedMs != nil { return *s.SpeedMs }
	return g.DefaultSpeedMs
}

// }}}
// {{{ pp.DrawCurveProfile

// DrawCurveProfile underlays the fitted curve's altitude, so the smooth
// flown profile shows against the straight waypoint legs. The x values
// are distance along the curve; pair this with ProjectAlongPath, or the
// two plots won't share an axis.
func (g *ProfilePdf)DrawCurveProfile(c *path.Curve) {
	if c == nil || c.IsEmpty() { return }
	grid,exists := g.Grids["altitude"]
	if !exists { return }

	saved := grid.LineColor
	grid.LineColor = CurveRGB
	g.SetLineWidth(0.15)

	cumFt := 0.0
	prev := frame.Vec3{}
	first := true

	it := c.Iter()
	for it.Iterate() {
		p := it.Point()
		if first {
			prev, first = p, false
			continue
		}
		x1 := cumFt
		cumFt += p.Dist(prev) / wayline.MetersPerFoot
		grid.Line(x1, prev.Y / wayline.MetersPerFoot, cumFt, p.Y / wayline.MetersPerFoot)
		prev = p
	}

	grid.LineColor = saved
	g.DrawPath("D")
}

// }}}
// {{{ pp.DrawWaypointMark

// DrawWaypointMark drops a vertical reference line at sample i on every
// grid, with a label on the altitude grid. Call after DrawProfiledFlight,
// which is what sets the projector up.
func (g *ProfilePdf)DrawWaypointMark(i int, label string) {
	if g.PathProjector == nil { return }
	x,_ := g.PathProjector.Project(i)

	for name,grid := range g.Grids {
		grid.SetDrawColor(20,220,20)
		grid.SetLineWidth(0.3)
		grid.MoveTo(x, grid.MinY)
		grid.LineTo(x, grid.MaxY)
		grid.DrawPath("D")

		if name == "altitude" && label != "" {
			grid.SetTextColor(20,220,20)
			grid.MoveTo(x, grid.MinY)
			grid.MoveBy(-4, 2)  // Offset in MM
			grid.MultiCell(0, 4, label, "", "", false)
			grid.DrawPath("D")
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
