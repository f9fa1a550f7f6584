package main

import(
	"fmt"
	"net/http"
	"os"
	"log"
	"time"

	"golang.org/x/net/context"

	"github.com/skyloom/wayline/ui"
	"github.com/skyloom/wayline/viewer"
)

var(
	sess *viewer.Session  // Singleton that belongs to the webapp
)

func init() {
	// The functions to parse templates live in the UI library. The
	// "templates" dir lives under this app's main dir; the relative
	// dirname is relative to the root of the git repo.
	ui.LoadTemplates("app/viewer/templates")

	sess = viewer.NewSession()

	ctxMaker := func(r *http.Request) context.Context {
		ctx,_ := context.WithTimeout(r.Context(), 55 * time.Second)
		return ctx
	}

	// ui/ui.go
	http.HandleFunc("/", ui.WithSessionCtx(ctxMaker, sess, ui.ViewHandler))

	// ui/api.go
	http.HandleFunc("/load", ui.WithSessionCtx(ctxMaker, sess, ui.LoadHandler))
	http.HandleFunc("/flights", ui.WithSessionCtx(ctxMaker, sess, ui.FlightsHandler))
	http.HandleFunc("/remove", ui.WithSessionCtx(ctxMaker, sess, ui.RemoveHandler))
	http.HandleFunc("/clear", ui.WithSessionCtx(ctxMaker, sess, ui.ClearHandler))
	http.HandleFunc("/scene", ui.WithSessionCtx(ctxMaker, sess, ui.SceneHandler))

	// ui/export.go
	http.HandleFunc("/export/kmz", ui.WithSessionCtx(ctxMaker, sess, ui.KmzExportHandler))
	http.HandleFunc("/export/kml", ui.WithSessionCtx(ctxMaker, sess, ui.KmlExportHandler))
	http.HandleFunc("/export/pdf", ui.WithSessionCtx(ctxMaker, sess, ui.PdfExportHandler))

	// ui/report.go
	http.HandleFunc("/report/csv", ui.WithSessionCtx(ctxMaker, sess, ui.ReportCSVHandler))
	http.HandleFunc("/report/xlsx", ui.WithSessionCtx(ctxMaker, sess, ui.ReportXLSXHandler))
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fs := http.FileServer(http.Dir("./app/viewer/static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	log.Printf("Listening on port %s [wayline/app/viewer]", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), nil))
}
