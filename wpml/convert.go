package wpml

import(
	"io"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/litchi"
)

// ConvertCSV is the one-shot converter: a Litchi CSV in, a mission KMZ
// out. Parse failures surface before any document is built, so a bad
// file never yields a half-made archive.
func ConvertCSV(name string, r io.Reader, opt Options) ([]byte, error) {
	f,_,err := litchi.ReadFrom(name, r)
	if err != nil { return nil, err }

	return Build(f, opt)
}

// Convert re-exports an already-loaded flight, for when the viewer has
// the Flight in hand (file load boundary already crossed).
func Convert(f *wayline.Flight, opt Options) ([]byte, error) {
	return Build(f, opt)
}
