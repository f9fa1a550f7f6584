package ui

import(
	"fmt"
	"net/http"

	"golang.org/x/net/context"

	"github.com/skypies/util/widget"

	"github.com/skyloom/wayline/viewer"
)

// Rather than stash/retrieve the session from the context, we pass it
// directly to a new handler type, used throughout ui/.
type SessionHandler func(*viewer.Session, http.ResponseWriter, *http.Request)

func WithSession(s *viewer.Session, sh SessionHandler) widget.ContextHandler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		r.ParseForm()

		if r.FormValue("debugoptions") != "" {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte(fmt.Sprintf("OK\n%#v\n", FormValueDisplayOptions(r))))
			return
		}

		sh(s, w, r)
	}
}

// The convenience combo the webapp's route table uses.
func WithSessionCtx(f widget.CtxMaker, s *viewer.Session, sh SessionHandler) widget.BaseHandler {
	return widget.WithCtx(f, WithSession(s, sh))
}
