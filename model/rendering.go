package model

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
)

const (
	// halfBlock draws the top cell as foreground and the bottom cell as background
	halfBlock = "▀"

	clearScreen = "\x1b[2J\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearLine   = "\x1b[K"
	cursorUp    = "\x1b[%dA"
)

// CellReader is the read-only view of a grid a renderer needs
type CellReader interface {
	Size() int
	GetCell(x, y int) uint8
}

// TerminalRenderer draws a grid with two cell rows per terminal line
type TerminalRenderer struct {
	Out   io.Writer
	lines int // height of the previous frame
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Render returns the ANSI-coloured frame for g
func (r *TerminalRenderer) Render(g CellReader) string {
	size := g.Size()
	lines := make([]string, 0, (size+1)/2)

	for y := 0; y < size; y += 2 {
		var b strings.Builder
		for x := range size {
			top := g.GetCell(x, y) == 1
			bottom := y+1 < size && g.GetCell(x, y+1) == 1
			b.WriteString(glyph(top, bottom))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func glyph(top, bottom bool) string {
	var v aurora.Value
	if top {
		v = aurora.White(halfBlock)
	} else {
		v = aurora.Black(halfBlock)
	}
	if bottom {
		v = v.BgWhite()
	} else {
		v = v.BgBlack()
	}
	return v.String()
}

// Display overwrites the previous frame with the status lines followed by the grid
func (r *TerminalRenderer) Display(g CellReader, status string) error {
	var b strings.Builder
	if r.lines > 0 {
		fmt.Fprintf(&b, cursorUp, r.lines)
	}

	lines := 0
	if status = strings.TrimRight(status, "\n"); status != "" {
		for _, line := range strings.Split(status, "\n") {
			b.WriteString(line + clearLine + "\n")
			lines++
		}
	}
	frame := r.Render(g)
	b.WriteString(frame + "\n")
	lines += strings.Count(frame, "\n") + 1

	if _, err := io.WriteString(r.Out, b.String()); err != nil {
		return err
	}
	r.lines = lines
	return nil
}

// Clear clears the terminal screen and hides the cursor
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, clearScreen+hideCursor)
	r.lines = 0
}

// Restore shows the cursor again
func (r *TerminalRenderer) Restore() {
	fmt.Fprint(r.Out, showCursor)
}
