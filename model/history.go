package model

const historySize = 5

// History keeps recent grid hashes for cycle detection
type History struct {
	hashes []string
}

// Record adds the current state of g and keeps only the most recent hashes
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Stagnant checks if g repeats one of the last three recorded states:
// a still life or an oscillator of period 2 or 3
func (h *History) Stagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := g.Hash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
