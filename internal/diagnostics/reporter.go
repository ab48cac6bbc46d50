package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Reporter writes diagnostics to a stream, colorized when the stream is a
// terminal.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter builds a reporter for w. Color is enabled only when w is
// os.Stderr/os.Stdout attached to a terminal.
func NewReporter(w io.Writer) *Reporter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: w, color: color}
}

// Report writes every diagnostic, one per line.
func (r *Reporter) Report(diags []*Diagnostic) {
	for _, d := range diags {
		if r.color {
			fmt.Fprintf(r.out, "%serror%s %s\n", ansiRed, ansiReset, d.Error())
		} else {
			fmt.Fprintf(r.out, "error %s\n", d.Error())
		}
	}
}
