package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

var (
	// ErrConfiguration is returned for a malformed grid size or initial state
	ErrConfiguration = errors.New("configuration error")
	// ErrOutOfRange is returned when writing a cell outside the grid
	ErrOutOfRange = errors.New("coordinates out of range")
)

// gliderSeed is placed on grids created without initial cells
var gliderSeed = [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

// Grid is a square board of size*size cells stored row-major, 0 dead and 1 alive
type Grid struct {
	size  int
	wrap  bool
	cells []uint8
	next  []uint8 // scratch buffer, only touched inside Evolve
}

// NewGrid creates a grid seeded with a glider in the top-left corner
func NewGrid(size int, wrap bool) (*Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrConfiguration, "[NewGrid] size must be positive, got %d", size)
	}

	g := newGrid(size, wrap)
	for _, c := range gliderSeed {
		if c[0] < size && c[1] < size {
			g.cells[c[1]*size+c[0]] = 1
		}
	}
	return g, nil
}

// NewGridWithCells creates a grid from row-major cell values; cells is copied
func NewGridWithCells(size int, wrap bool, cells []uint8) (*Grid, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrConfiguration, "[NewGridWithCells] size must be positive, got %d", size)
	}
	if len(cells) != size*size {
		return nil, errors.Wrapf(ErrConfiguration, "[NewGridWithCells] got %d cells, want %d for size %d", len(cells), size*size, size)
	}
	for i, v := range cells {
		if v > 1 {
			return nil, errors.Wrapf(ErrConfiguration, "[NewGridWithCells] cell %d has state %d, want 0 or 1", i, v)
		}
	}

	g := newGrid(size, wrap)
	copy(g.cells, cells)
	return g, nil
}

func newGrid(size int, wrap bool) *Grid {
	return &Grid{
		size:  size,
		wrap:  wrap,
		cells: make([]uint8, size*size),
		next:  make([]uint8, size*size),
	}
}

// Size returns the width (and height) of the grid
func (g *Grid) Size() int {
	return g.size
}

// Wrap reports whether the grid is toroidal
func (g *Grid) Wrap() bool {
	return g.wrap
}

// Cells returns a copy of the row-major cell values
func (g *Grid) Cells() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// SetCell writes state (0 or 1) at x, y
func (g *Grid) SetCell(x, y int, state uint8) error {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return errors.Wrapf(ErrOutOfRange, "[SetCell] (%d,%d) outside %dx%d grid", x, y, g.size, g.size)
	}
	if state > 1 {
		return errors.Wrapf(ErrConfiguration, "[SetCell] state must be 0 or 1, got %d", state)
	}
	g.cells[y*g.size+x] = state
	return nil
}

// GetCell returns the state at x, y.
// A wrapping grid reduces the coordinates modulo size, a bounded grid reads 0 outside its edges.
func (g *Grid) GetCell(x, y int) uint8 {
	return cellAt(g.cells, g.size, g.wrap, x, y)
}

func cellAt(cells []uint8, size int, wrap bool, x, y int) uint8 {
	if wrap {
		x = (x%size + size) % size
		y = (y%size + size) % size
	} else if x < 0 || x >= size || y < 0 || y >= size {
		return 0
	}
	return cells[y*size+x]
}

// CountNeighbors counts live cells in the Moore neighborhood of x, y
func (g *Grid) CountNeighbors(x, y int) int {
	return countNeighbors(g.cells, g.size, g.wrap, x, y)
}

func countNeighbors(cells []uint8, size int, wrap bool, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			count += int(cellAt(cells, size, wrap, x+dx, y+dy))
		}
	}
	return count
}

// Evolve advances the grid by one generation under e.
// Every action is computed against the current cells and written to a separate buffer,
// which replaces the current cells once the sweep is complete.
func (g *Grid) Evolve(e rules.Evaluator) {
	next := g.next
	copy(next, g.cells)

	for y := range g.size {
		for x := range g.size {
			idx := y*g.size + x
			switch e.Evaluate(g.cells[idx] == 1, countNeighbors(g.cells, g.size, g.wrap, x, y)) {
			case rules.Die:
				next[idx] = 0
			case rules.Born:
				next[idx] = 1
			default:
				// survive, unchanged: keep the copied value
			}
		}
	}

	g.cells, g.next = next, g.cells
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, v := range g.cells {
		count += int(v)
	}
	return
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}
