package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/papapumpkin/justify/internal/ansi"
)

// Printer writes operator-facing status lines, styled with ANSI codes when
// color is enabled.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to stderr. Color is used only when stderr is
// a terminal and NO_COLOR is unset.
func New() *Printer {
	color := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("NO_COLOR") == ""
	return &Printer{w: os.Stderr, color: color}
}

// NewWriter returns a Printer writing to w.
func NewWriter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if !p.color {
		s = ansi.Strip(s)
	}
	io.WriteString(p.w, s)
}

// TotalBadness reports the total badness of the block written to path.
func (p *Printer) TotalBadness(path string, total int64) {
	p.printf(ansi.Bold+"Total badness of %s:"+ansi.Reset+" %d\n", path, total)
}

// Wrote reports a finished write.
func (p *Printer) Wrote(path string, lines, width int) {
	p.printf(ansi.Green+"✓ wrote"+ansi.Reset+" %s "+ansi.Dim+"(%d lines, width %d)"+ansi.Reset+"\n", path, lines, width)
}

func (p *Printer) Watching(path string) {
	p.printf(ansi.Cyan+"◆ watching"+ansi.Reset+" %s "+ansi.Dim+"(ctrl-c to stop)"+ansi.Reset+"\n", path)
}

// Rerun announces a re-justification triggered by a file change.
func (p *Printer) Rerun(run int, path string) {
	p.printf("\n"+ansi.Bold+ansi.Magenta+"── run %d ──"+ansi.Reset+" %s changed\n", run, path)
}

func (p *Printer) Removed(path string) {
	p.printf(ansi.Yellow+ansi.Bold+"⚠ %s removed"+ansi.Reset+" — waiting for it to reappear\n", path)
}

func (p *Printer) Error(msg string) {
	p.printf(ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	p.printf(ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}
