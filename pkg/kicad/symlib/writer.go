package symlib

import (
	"io"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

// Serialize renders the library as .kicad_sym text. Untouched parts of a
// loaded library are written exactly as they were read.
func Serialize(lib *Library) string {
	return lib.String()
}

// String returns the library as .kicad_sym text.
func (l *Library) String() string {
	l.syncAll()
	return kicadsexp.Format(l.root, l.indent)
}

// WriteTo writes the library text to w.
func (l *Library) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.String())
	return int64(n), err
}
