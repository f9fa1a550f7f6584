package fpdf

import(
	"fmt"
	"math"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
)

// A PathProjector maps projected samples onto the profile's x axis
// (distance in feet by altitude in feet).
type PathProjector interface {
	Setup([]frame.Sample) error
	Project(i int) (distFt float64, altFt float64)
	Description() string
}

// {{{ ProjectAlongPath

// ProjectAlongPath plots each waypoint at its distance flown along the
// mission. A path that doubles back keeps growing, so the profile never
// folds over itself.

type ProjectAlongPath struct {
	samples []frame.Sample
	cumFt   []float64
}
func (p *ProjectAlongPath)Description() string { return "Along Path (i.e. distance travelled)" }

func (p *ProjectAlongPath)Setup(samples []frame.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("ProjectAlongPath: no samples")
	}
	p.samples = samples
	p.cumFt = make([]float64, len(samples))
	for i := 1; i < len(samples); i++ {
		legFt := samples[i].Pos.Dist(samples[i-1].Pos) / wayline.MetersPerFoot
		p.cumFt[i] = p.cumFt[i-1] + legFt
	}
	return nil
}

func (p *ProjectAlongPath)Project(i int) (float64,float64) {
	return p.cumFt[i], p.samples[i].AltitudeFt
}

// }}}
// {{{ ProjectAsCrowFlies

// ProjectAsCrowFlies plots each waypoint at its straight-line distance
// from the launch point. An orbit shows up as a flat band; the less the
// mission flies straight out, the less useful this is.

type ProjectAsCrowFlies struct {
	samples []frame.Sample
	launch  frame.Vec3
}
func (p *ProjectAsCrowFlies)Description() string {
	return "As Crow Flies (distance to launch)"
}

func (p *ProjectAsCrowFlies)Setup(samples []frame.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("ProjectAsCrowFlies: no samples")
	}
	p.samples = samples
	p.launch = samples[0].Pos
	return nil
}

// Ground distance only; climbing straight up stays at x=0.
func (p *ProjectAsCrowFlies)Project(i int) (float64,float64) {
	d := p.samples[i].Pos.Sub(p.launch)
	distFt := math.Hypot(d.X, d.Z) / wayline.MetersPerFoot
	return distFt, p.samples[i].AltitudeFt
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
