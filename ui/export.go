package ui

import(
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/fpdf"
	"github.com/skyloom/wayline/kmlview"
	"github.com/skyloom/wayline/viewer"
	"github.com/skyloom/wayline/wpml"
)

// {{{ lookupFlight, exportFilename

// ?id=f1 ; every per-flight export starts here.
func lookupFlight(s *viewer.Session, w http.ResponseWriter, r *http.Request) *wayline.Flight {
	id := r.FormValue("id")
	f,exists := s.Get(id)
	if !exists {
		http.Error(w, fmt.Sprintf("flight %q not found", id), http.StatusNotFound)
		return nil
	}
	return f
}

// exportFilename swaps the source extension for the export's.
func exportFilename(f *wayline.Flight, ext string) string {
	base := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	if base == "" { base = f.Id }
	return base + ext
}

// }}}

// {{{ KmzExportHandler

// ?id=f1
// &speed=7.5&drone=matrice_30&heading=manual&rclost=executeLostAction&straight=1

func KmzExportHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	f := lookupFlight(s, w, r)
	if f == nil { return }

	kmz,err := wpml.Build(f, FormValueWpmlOptions(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s\"", exportFilename(f, ".kmz")))
	w.Header().Set("Content-Length", strconv.Itoa(len(kmz)))
	w.Write(kmz)
}

// }}}
// {{{ KmlExportHandler

// ?id=f1 previews one flight; no id previews every loaded flight.

func KmlExportHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")

	if r.FormValue("id") != "" {
		f := lookupFlight(s, w, r)
		if f == nil { return }
		if err := kmlview.RenderFlight(w, s, f); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := kmlview.Render(w, s); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}
// {{{ PdfExportHandler

// ?id=f1 profiles one flight; no id chains every flight into one
// document, a page each.
// &hover=f1:3 marks that waypoint on its flight's page.

func PdfExportHandler(s *viewer.Session, w http.ResponseWriter, r *http.Request) {
	opt := FormValueDisplayOptions(r)

	flights := s.Flights()
	if r.FormValue("id") != "" {
		f := lookupFlight(s, w, r)
		if f == nil { return }
		flights = []*wayline.Flight{f}
	}

	entries := []fpdf.ProfileEntry{}
	for _,f := range flights {
		e := fpdf.ProfileEntry{
			Caption: f.Name,
			Samples: s.Samples(f),
			Curve:   s.Curve(f),
		}
		if m := s.Stats(f); m != nil {
			e.Caption = fmt.Sprintf("%s: %s", f.Name, m)
		}
		if opt.HoverId == f.Id && opt.HoverIdx >= 0 {
			e.MarkIdx = opt.HoverIdx
			e.MarkLabel = fmt.Sprintf("WP %d", opt.HoverIdx+1)
		}
		entries = append(entries, e)
	}

	w.Header().Set("Content-Type", "application/pdf")
	if err := fpdf.WriteProfiles(w, entries); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
