package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	// move two lines up, clear to end of screen
	rewind = "\x1b[2F\x1b[0J"

	cellEmpty = "\x1b[47m \x1b[0m"
	cellAnt   = "\x1b[30m\x1b[47m●\x1b[0m"
	cellMolly = "\x1b[35m\x1b[47m●\x1b[0m"
)

// LiveRenderer redraws the rod in place on every tick: one line of
// white-background cells, plain ants in black, Molly in magenta, and the
// elapsed time underneath.
type LiveRenderer struct {
	out   io.Writer
	cells []rod.Kind
	buf   strings.Builder
}

func NewLiveRenderer(out io.Writer, resolution int) *LiveRenderer {
	if resolution < 1 {
		resolution = 1
	}
	return &LiveRenderer{
		out:   out,
		cells: make([]rod.Kind, resolution),
	}
}

// Start reserves the two output lines the renderer rewinds over and hides
// the cursor.
func (r *LiveRenderer) Start() {
	fmt.Fprint(r.out, hideCursor+"\n\n")
}

func (r *LiveRenderer) Stop() {
	fmt.Fprint(r.out, showCursor)
}

func (r *LiveRenderer) OnTick(snap rod.Snapshot) {
	snap.Raster(r.cells)

	r.buf.Reset()
	r.buf.WriteString(rewind)
	for _, c := range r.cells {
		switch c {
		case rod.Molly:
			r.buf.WriteString(cellMolly)
		case rod.Plain:
			r.buf.WriteString(cellAnt)
		default:
			r.buf.WriteString(cellEmpty)
		}
	}

	fmt.Fprintf(r.out, "%s\ntime: %.1fs\n", r.buf.String(), snap.Time*100)
}
