package main

import(
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyloom/wayline/fpdf"
	"github.com/skyloom/wayline/kmlview"
	"github.com/skyloom/wayline/report"
	"github.com/skyloom/wayline/viewer"
	"github.com/skyloom/wayline/wpml"
)

var(
	fVerbosity int
	fLens string
	fConvert bool
	fOutDir string
	fSpeed float64
	fDrone string
	fHeading string
	fRCLost string
	fStraight bool
	fKml string
	fPdf string
	fCsv string
	fXlsx string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.StringVar(&fLens, "lens", "", "lens for the view cones (wide, medium, tele)")
	flag.BoolVar(&fConvert, "convert", false, "write a vendor .kmz next to each input")
	flag.StringVar(&fOutDir, "outdir", "", "write converted files here instead of next to the inputs")
	flag.Float64Var(&fSpeed, "speed", 0, "mission speed, m/s")
	flag.StringVar(&fDrone, "drone", "", "drone profile (dji_fly, mavic3_enterprise, matrice_30)")
	flag.StringVar(&fHeading, "heading", "", "heading mode (poi_or_interpolate, follow_wayline, manual)")
	flag.StringVar(&fRCLost, "rclost", "", "on signal loss (continue, executeLostAction)")
	flag.BoolVar(&fStraight, "straight", false, "straight legs only, ignoring curve sizes")
	flag.StringVar(&fKml, "kml", "", "write a preview KML of all inputs to this file")
	flag.StringVar(&fPdf, "pdf", "", "write profile pages for all inputs to this PDF")
	flag.StringVar(&fCsv, "csv", "", "write the mission report to this CSV")
	flag.StringVar(&fXlsx, "xlsx", "", "write the mission report to this workbook")
	flag.Parse()
}

// {{{ exportOptionsFromArgs

// Based on the various command line flags
func exportOptionsFromArgs() wpml.Options {
	opt := wpml.DefaultOptions()

	if fSpeed > 0 { opt.MissionSpeedMs = fSpeed }
	if fDrone != "" { opt.DroneType = fDrone }
	if fHeading != "" { opt.HeadingMode = fHeading }
	if fRCLost != "" { opt.SignalLostAction = fRCLost }
	opt.AllowStraightLines = fStraight

	return opt
}

// }}}
// {{{ loadFiles

func loadFiles(filenames []string) *viewer.Session {
	files := []viewer.NamedBytes{}
	for _,filename := range filenames {
		b,err := os.ReadFile(filename)
		if err != nil { log.Fatal(err) }
		files = append(files, viewer.NamedBytes{Name: filename, Bytes: b})
	}

	s := viewer.NewSession()
	if fLens != "" && !s.SetLens(fLens) {
		log.Fatalf("no lens %q (want wide, medium or tele)", fLens)
	}

	for _,res := range s.LoadAll(files) {
		if res.Err != nil {
			fmt.Printf("[!!] %v\n", res.Err)
		}
	}
	if len(s.Flights()) == 0 {
		log.Fatal("nothing loaded")
	}

	return s
}

// }}}
// {{{ listFlights

func listFlights(s *viewer.Session) {
	for i,f := range s.Flights() {
		str := fmt.Sprintf("%-30.30s", f.Name)
		if m := s.Stats(f); m != nil { str += " " + m.String() }
		fmt.Printf("[%2d] %s\n", i, str)
	}
	fmt.Printf("\n")

	if fVerbosity > 0 {
		for i,f := range s.Flights() {
			str := fmt.Sprintf("----{ %d : %s }----\n", i, f.Name)
			if f.HasPoi() {
				str += fmt.Sprintf("    POI: %s (%.0fft)\n", f.Poi.Latlong, f.PoiAltitudeFt())
			}
			for n,wp := range f.Waypoints {
				str += fmt.Sprintf("    - [%3d] %s\n", n, wp)
			}
			if fVerbosity > 1 {
				str += fmt.Sprintf("---- DebugLog:-\n%s\n", f.DebugLog)
			}
			str += "\n"
			fmt.Print(str)
		}
	}
}

// }}}
// {{{ convertAll

// convertAll writes one .kmz per loaded flight.
func convertAll(s *viewer.Session) {
	opt := exportOptionsFromArgs()

	for _,f := range s.Flights() {
		b,err := wpml.Build(f, opt)
		if err != nil { log.Fatal(err) }

		outfile := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".kmz"
		if fOutDir != "" {
			outfile = filepath.Join(fOutDir, filepath.Base(outfile))
		}
		if err := os.WriteFile(outfile, b, 0644); err != nil { log.Fatal(err) }
		fmt.Printf("wrote %s (%d bytes)\n", outfile, len(b))
	}
}

// }}}
// {{{ writeKml, writePdf

func writeKml(s *viewer.Session) {
	osfile,err := os.Create(fKml)
	if err != nil { log.Fatal(err) }
	defer osfile.Close()

	if err := kmlview.Render(osfile, s); err != nil { log.Fatal(err) }
	fmt.Printf("wrote %s\n", fKml)
}

func writePdf(s *viewer.Session) {
	entries := []fpdf.ProfileEntry{}
	for _,f := range s.Flights() {
		e := fpdf.ProfileEntry{Caption: f.Name, Samples: s.Samples(f), Curve: s.Curve(f)}
		if m := s.Stats(f); m != nil {
			e.Caption = fmt.Sprintf("%s: %s", f.Name, m)
		}
		entries = append(entries, e)
	}

	osfile,err := os.Create(fPdf)
	if err != nil { log.Fatal(err) }
	defer osfile.Close()

	if err := fpdf.WriteProfiles(osfile, entries); err != nil { log.Fatal(err) }
	fmt.Printf("wrote %s\n", fPdf)
}

// }}}
// {{{ writeReports

func writeReports(s *viewer.Session) {
	rep := report.BlankReport()
	for _,f := range s.Flights() {
		rep.AddFlight(f, s.Samples(f))
	}
	rep.FinishSummary()

	if fCsv != "" {
		osfile,err := os.Create(fCsv)
		if err != nil { log.Fatal(err) }
		if err := rep.WriteCSV(osfile); err != nil { log.Fatal(err) }
		osfile.Close()
		fmt.Printf("wrote %s\n", fCsv)
	}
	if fXlsx != "" {
		osfile,err := os.Create(fXlsx)
		if err != nil { log.Fatal(err) }
		if err := rep.WriteXLSX(osfile); err != nil { log.Fatal(err) }
		osfile.Close()
		fmt.Printf("wrote %s\n", fXlsx)
	}

	if fVerbosity > 0 {
		for _,row := range rep.MetadataTable() {
			fmt.Printf("%-40.40s %s\n", row[0], row[1])
		}
	}
}

// }}}

func main() {
	if len(flag.Args()) == 0 {
		log.Fatal("usage: wayline [flags] mission1.csv [mission2.kmz ...]")
	}

	s := loadFiles(flag.Args())
	listFlights(s)

	if fConvert { convertAll(s) }
	if fKml != "" { writeKml(s) }
	if fPdf != "" { writePdf(s) }
	if fCsv != "" || fXlsx != "" { writeReports(s) }
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
