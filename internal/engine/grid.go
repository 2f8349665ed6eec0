package engine

import "time"

// Cell holds per-cell simulation state plus rendering metadata.
// Age counts consecutive generations alive and resets to 0 on death.
// LastChanged records the generation of the most recent alive-state flip
// so renderers can fade recently changed cells; it never feeds back into
// the simulation.
type Cell struct {
	Alive       bool
	Age         int
	LastChanged int
}

// Grid owns the live cell state. Dimensions change only through Resize;
// Session History and the Recorder hold deep copies, never aliases of the
// backing slice.
type Grid struct {
	rows, cols int
	cells      []Cell
	rule       Rule
	generation int
}

// NewGrid allocates an all-dead grid. Non-positive dimensions are clamped
// to 1, matching the smallest legal board.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols), rule: Conway()}
}

func (g *Grid) index(row, col int) int { return row*g.cols + col }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Dimensions returns rows, cols.
func (g *Grid) Dimensions() (int, int) { return g.rows, g.cols }

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Generation returns the monotonically increasing step counter.
func (g *Grid) Generation() int { return g.generation }

// Rule returns the active birth/survival rule.
func (g *Grid) Rule() Rule { return g.rule }

// SetRule swaps the active rule. Cell state is untouched.
func (g *Grid) SetRule(r Rule) { g.rule = r }

// Get returns the cell at (row, col) or ErrOutOfBounds.
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.inBounds(row, col) {
		return Cell{}, ErrOutOfBounds
	}
	return g.cells[g.index(row, col)], nil
}

// Set forces the cell at (row, col) alive or dead. Age and LastChanged are
// updated only on an actual alive-state transition; setting a cell to its
// current state is a no-op.
func (g *Grid) Set(row, col int, alive bool) error {
	if !g.inBounds(row, col) {
		return ErrOutOfBounds
	}
	i := g.index(row, col)
	if g.cells[i].Alive == alive {
		return nil
	}
	g.cells[i] = Cell{Alive: alive, Age: 0, LastChanged: g.generation}
	return nil
}

// Resize reallocates the grid to newRows x newCols, preserving the
// overlapping region at the origin. New cells start dead with age 0.
func (g *Grid) Resize(newRows, newCols int) error {
	if newRows <= 0 || newCols <= 0 {
		return ErrOutOfBounds
	}
	next := make([]Cell, newRows*newCols)
	copyRows := min(g.rows, newRows)
	copyCols := min(g.cols, newCols)
	for r := 0; r < copyRows; r++ {
		copy(next[r*newCols:r*newCols+copyCols], g.cells[r*g.cols:r*g.cols+copyCols])
	}
	g.rows, g.cols, g.cells = newRows, newCols, next
	return nil
}

// Clear kills every cell and resets ages. The generation counter and rule
// are kept; Reset drops the counter too.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Reset is a full reset: all cells dead, generation back to 0.
func (g *Grid) Reset() {
	g.Clear()
	g.generation = 0
}

// Randomize sets every cell alive with probability density/100 using the
// given deterministic stream. Densities outside 0-100 are clamped.
func (g *Grid) Randomize(density int, st *Stream) {
	if density < 0 {
		density = 0
	}
	if density > 100 {
		density = 100
	}
	for i := range g.cells {
		g.cells[i] = Cell{Alive: st.Intn(100) < density, LastChanged: g.generation}
	}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Alive {
			n++
		}
	}
	return n
}

// Snapshot is an immutable deep copy of grid contents at a point in time.
type Snapshot struct {
	Rows, Cols int
	Cells      []Cell
	Generation int
	TakenAt    time.Time
}

// Snapshot captures the current grid contents. The returned copy never
// aliases the live backing slice.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{Rows: g.rows, Cols: g.cols, Cells: cells, Generation: g.generation, TakenAt: time.Now()}
}

// Restore replaces grid contents, dimensions and generation with a snapshot.
func (g *Grid) Restore(s Snapshot) {
	cells := make([]Cell, len(s.Cells))
	copy(cells, s.Cells)
	g.rows, g.cols, g.cells = s.Rows, s.Cols, cells
	g.generation = s.Generation
}

// restoreCells swaps in cell contents without touching the generation
// counter. Used by recording scrub.
func (g *Grid) restoreCells(rows, cols int, cells []Cell) {
	next := make([]Cell, len(cells))
	copy(next, cells)
	g.rows, g.cols, g.cells = rows, cols, next
}
