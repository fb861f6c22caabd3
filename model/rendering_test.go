package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
)

func TestRenderPacksTwoRowsPerLine(t *testing.T) {
	for size, lines := range map[int]int{1: 1, 4: 2, 5: 3} {
		g, _ := NewGridWithCells(size, false, make([]uint8, size*size))
		frame := (&TerminalRenderer{}).Render(g)
		if got := strings.Count(frame, "\n") + 1; got != lines {
			t.Errorf("size %d: %d lines, want %d", size, got, lines)
		}
		if got := strings.Count(frame, halfBlock); got != lines*size {
			t.Errorf("size %d: %d glyphs, want %d", size, got, lines*size)
		}
	}
}

func TestRenderColours(t *testing.T) {
	// column 0: top alive, bottom dead; column 1: top dead, bottom alive
	g, _ := NewGridWithCells(2, false, []uint8{1, 0, 0, 1})
	frame := (&TerminalRenderer{}).Render(g)

	want := aurora.White(halfBlock).BgBlack().String() + aurora.Black(halfBlock).BgWhite().String()
	if frame != want {
		t.Fatalf("frame = %q, want %q", frame, want)
	}
}

func TestDisplayRewindsPreviousFrame(t *testing.T) {
	var out bytes.Buffer
	r := &TerminalRenderer{Out: &out}
	g, _ := NewGrid(4, true)

	if err := r.Display(g, "Gen: 0\nLiving: 5\n"); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if strings.Contains(out.String(), "\x1b[4A") {
		t.Fatal("first frame moved the cursor up")
	}

	out.Reset()
	if err := r.Display(g, "Gen: 1\nLiving: 5"); err != nil {
		t.Fatalf("Display: %v", err)
	}
	// 2 status lines + 2 grid lines
	if !strings.HasPrefix(out.String(), "\x1b[4A") {
		t.Fatalf("second frame does not rewind 4 lines: %q", out.String())
	}

	out.Reset()
	r.Clear()
	if !strings.Contains(out.String(), hideCursor) || r.lines != 0 {
		t.Fatalf("Clear wrote %q, lines=%d", out.String(), r.lines)
	}
	out.Reset()
	r.Restore()
	if out.String() != showCursor {
		t.Fatalf("Restore wrote %q", out.String())
	}
}
