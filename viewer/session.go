// Package viewer owns the state of one viewing session: the loaded
// flights, the shared projection reference, the selected lens, and the
// current hover. One page, one Session; every handler and renderer
// hangs off it rather than off package globals.
package viewer

import(
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skypies/geo"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
	"github.com/skyloom/wayline/frustum"
	"github.com/skyloom/wayline/litchi"
	"github.com/skyloom/wayline/path"
	"github.com/skyloom/wayline/stats"
	"github.com/skyloom/wayline/wpml"
)

// Session is safe for concurrent handlers: the flights list and the
// pointer state sit behind one mutex. Loads stay sequential (LoadAll
// holds no lock across files but processes them in order), so color
// and id assignment are deterministic.
type Session struct {
	mu       sync.Mutex
	flights  []*wayline.Flight // load order
	byId     map[string]*wayline.Flight
	seq      int // successful loads ever; drives ids and palette cycling

	ref      *geo.Latlong // nil = first waypoint of first flight
	lens     wayline.LensProfile

	onHover  func(flightId string, index int)
	hoverId  string
	hoverIdx int
}

func NewSession() *Session {
	return &Session{
		byId:     map[string]*wayline.Flight{},
		lens:     wayline.DefaultLens(),
		hoverIdx: -1,
	}
}

// {{{ LoadFile, LoadAll

// LoadFile parses one file by extension (.csv or .kmz) and appends the
// flight, assigning its id and palette color by load order.
func (s *Session)LoadFile(name string, b []byte) (*wayline.Flight, error) {
	f,err := readFile(name, b)
	if err != nil { return nil, err }

	s.mu.Lock()
	defer s.mu.Unlock()

	f.Id = fmt.Sprintf("f%d", s.seq+1)
	f.Color = wayline.ColorForLoadIndex(s.seq)
	s.seq++

	s.flights = append(s.flights, f)
	s.byId[f.Id] = f

	return f, nil
}

func readFile(name string, b []byte) (*wayline.Flight, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		f,_,err := litchi.ReadFrom(name, bytes.NewReader(b))
		return f, err
	case ".kmz":
		f,_,err := wpml.ReadKmz(name, b)
		return f, err
	}
	return nil, wayline.UnsupportedFormatError{Filename: name, Ext: ext}
}

// NamedBytes is one member of a multi-select load.
type NamedBytes struct {
	Name  string
	Bytes []byte
}

// LoadResult reports one file's outcome. Flight is nil iff Err is set.
type LoadResult struct {
	Name   string
	Flight *wayline.Flight
	Err    error
}

// LoadAll processes a multi-select strictly in order. A failure is
// recorded and the next file still loads; earlier flights are never
// unwound by a later file's error.
func (s *Session)LoadAll(files []NamedBytes) []LoadResult {
	results := make([]LoadResult, 0, len(files))
	for _,nb := range files {
		f,err := s.LoadFile(nb.Name, nb.Bytes)
		results = append(results, LoadResult{Name: nb.Name, Flight: f, Err: err})
	}
	return results
}

// }}}
// {{{ Remove, Clear, Flights, Get

// Remove drops one flight. The load counter keeps running, so colors
// never reshuffle under the remaining flights.
func (s *Session)Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _,exists := s.byId[id]; !exists { return false }

	delete(s.byId, id)
	kept := s.flights[:0]
	for _,f := range s.flights {
		if f.Id != id { kept = append(kept, f) }
	}
	s.flights = kept

	if s.hoverId == id {
		s.hoverId, s.hoverIdx = "", -1
	}
	return true
}

// Clear resets to a fresh session.
func (s *Session)Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = nil
	s.byId = map[string]*wayline.Flight{}
	s.seq = 0
	s.ref = nil
	s.hoverId, s.hoverIdx = "", -1
}

// Flights returns the load-ordered list (a copy; the underlying slice
// keeps changing under loads and removes).
func (s *Session)Flights() []*wayline.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*wayline.Flight, len(s.flights))
	copy(out, s.flights)
	return out
}

func (s *Session)Get(id string) (*wayline.Flight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f,exists := s.byId[id]
	return f, exists
}

// }}}
// {{{ SetLens, SetReference, Frame

func (s *Session)SetLens(name string) bool {
	lens,found := wayline.LensByName(name)
	if !found { return false }
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lens = lens
	return true
}

func (s *Session)Lens() wayline.LensProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lens
}

func (s *Session)SetReference(pos geo.Latlong) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = &pos
}

// Frame resolves the session's shared projection frame: the explicit
// reference if one was set, else the first waypoint of the first
// loaded flight. Recomputed every call; removing the first flight just
// moves the anchor, with nothing to invalidate.
func (s *Session)Frame() frame.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ref != nil { return frame.NewFrame(*s.ref) }
	for _,f := range s.flights {
		if len(f.Waypoints) > 0 { return frame.FrameFor(f) }
	}
	return frame.Frame{}
}

// }}}
// {{{ Hover

// SetHoverFunc registers the listener the render surface notifies on
// pointer moves, so a telemetry panel can follow along.
func (s *Session)SetHoverFunc(fn func(flightId string, index int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onHover = fn
}

// Hover records the pointer state and notifies the listener. Index -1
// (any flight id) means nothing is hovered. The listener runs outside
// the session lock, so it may call back in.
func (s *Session)Hover(flightId string, index int) {
	s.mu.Lock()
	if index < 0 {
		flightId, index = "", -1
	}
	s.hoverId, s.hoverIdx = flightId, index
	fn := s.onHover
	s.mu.Unlock()

	if fn != nil { fn(flightId, index) }
}

func (s *Session)HoverState() (flightId string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoverId, s.hoverIdx
}

// }}}
// {{{ derived views

// The derived views are all computed fresh per call, against the
// session frame and lens of the moment.

func (s *Session)Samples(f *wayline.Flight) []frame.Sample {
	return s.Frame().ProjectFlight(f)
}

func (s *Session)Curve(f *wayline.Flight) *path.Curve {
	return path.Build(frame.Positions(s.Samples(f)))
}

// Frusta returns a body pyramid per waypoint, plus the dashed FOV cone
// for the hovered waypoint when the hover is on this flight.
func (s *Session)Frusta(f *wayline.Flight) []frustum.Wireframe {
	samples := s.Samples(f)
	if len(samples) == 0 { return nil }

	lens := s.Lens()
	scale := frustum.ScaleFor(samples)

	out := make([]frustum.Wireframe, 0, len(samples)+1)
	for _,sample := range samples {
		out = append(out, frustum.Body(sample, lens, scale))
	}

	hoverId,hoverIdx := s.HoverState()
	if hoverId == f.Id && hoverIdx >= 0 && hoverIdx < len(samples) {
		out = append(out, frustum.Cone(samples[hoverIdx], lens, frustum.ConeExtentFor(samples)))
	}

	return out
}

func (s *Session)Stats(f *wayline.Flight) *stats.Mission {
	return stats.Compute(s.Samples(f))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
