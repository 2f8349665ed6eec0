package engine

// Stepper advances a grid one generation per call and tracks stability for
// auto-stop. The next generation is computed against an unmodified copy of
// the previous one (simultaneous update), double-buffered so steady-state
// stepping allocates nothing.
type Stepper struct {
	// StableAfter is the number of consecutive unchanged generations
	// required before Stable reports true. Values below 1 behave as 1.
	StableAfter int

	unchanged int
	scratch   []Cell
}

// NewStepper returns a stepper with the given stability threshold.
func NewStepper(stableAfter int) *Stepper {
	if stableAfter < 1 {
		stableAfter = 1
	}
	return &Stepper{StableAfter: stableAfter}
}

// Step computes generation N+1 under the grid's rule and installs it,
// incrementing the generation counter by exactly one. Neighbors outside the
// grid count as dead (no wraparound). Returns true if any cell's alive
// state changed.
func (s *Stepper) Step(g *Grid) bool {
	rows, cols := g.rows, g.cols
	if cap(s.scratch) < len(g.cells) {
		s.scratch = make([]Cell, len(g.cells))
	}
	next := s.scratch[:len(g.cells)]

	gen := g.generation + 1
	changed := false
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			cur := g.cells[i]
			n := liveNeighbors(g, r, c)
			alive := (cur.Alive && g.rule.Survives(n)) || (!cur.Alive && g.rule.Born(n))
			switch {
			case alive && cur.Alive:
				next[i] = Cell{Alive: true, Age: cur.Age + 1, LastChanged: cur.LastChanged}
			case alive:
				next[i] = Cell{Alive: true, Age: 0, LastChanged: gen}
				changed = true
			case cur.Alive:
				next[i] = Cell{Alive: false, Age: 0, LastChanged: gen}
				changed = true
			default:
				next[i] = Cell{Alive: false, Age: 0, LastChanged: cur.LastChanged}
			}
		}
	}

	g.cells, s.scratch = next, g.cells
	g.generation = gen
	if changed {
		s.unchanged = 0
	} else {
		s.unchanged++
	}
	return changed
}

// liveNeighbors counts live cells in the Moore neighborhood of (row, col).
// Out-of-bounds positions are dead.
func liveNeighbors(g *Grid, row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
				continue
			}
			if g.cells[r*g.cols+c].Alive {
				n++
			}
		}
	}
	return n
}

// Stable reports whether the last StableAfter steps all left the grid
// unchanged. Callers should halt continuous stepping when it returns true.
func (s *Stepper) Stable() bool {
	threshold := s.StableAfter
	if threshold < 1 {
		threshold = 1
	}
	return s.unchanged >= threshold
}

// ResetStability clears the unchanged-step counter, typically after a user
// edit perturbs the board.
func (s *Stepper) ResetStability() { s.unchanged = 0 }
