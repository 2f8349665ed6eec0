package engine

// Pattern is an immutable named boolean matrix. Rotation returns a new
// pattern; the source is never mutated.
type Pattern struct {
	Name        string
	Category    string
	Description string
	cells       [][]bool
}

// NewPattern builds a pattern from a cell matrix. Ragged rows are padded
// with dead cells to the widest row. The matrix is deep-copied.
func NewPattern(name, category, description string, cells [][]bool) Pattern {
	width := 0
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}
	copied := make([][]bool, len(cells))
	for i, row := range cells {
		copied[i] = make([]bool, width)
		copy(copied[i], row)
	}
	return Pattern{Name: name, Category: category, Description: description, cells: copied}
}

func (p Pattern) Rows() int { return len(p.cells) }

func (p Pattern) Cols() int {
	if len(p.cells) == 0 {
		return 0
	}
	return len(p.cells[0])
}

// Alive reports the pattern cell at (row, col); positions outside the
// matrix are dead.
func (p Pattern) Alive(row, col int) bool {
	if row < 0 || row >= len(p.cells) || col < 0 || col >= len(p.cells[row]) {
		return false
	}
	return p.cells[row][col]
}

// Rotate returns the pattern rotated clockwise by the given degrees, which
// must be a multiple of 90. Full turns return an identical pattern.
func (p Pattern) Rotate(degrees int) (Pattern, error) {
	deg := ((degrees % 360) + 360) % 360
	if deg%90 != 0 {
		return Pattern{}, ErrInvalidRotation
	}
	out := p
	for turns := deg / 90; turns > 0; turns-- {
		out = out.rotateQuarter()
	}
	return out, nil
}

// rotateQuarter rotates 90 degrees clockwise: transpose then reverse rows.
func (p Pattern) rotateQuarter() Pattern {
	rows, cols := p.Rows(), p.Cols()
	rotated := make([][]bool, cols)
	for r := 0; r < cols; r++ {
		rotated[r] = make([]bool, rows)
		for c := 0; c < rows; c++ {
			rotated[r][c] = p.cells[rows-1-c][r]
		}
	}
	return Pattern{Name: p.Name, Category: p.Category, Description: p.Description, cells: rotated}
}

// Stamp overlays the pattern's live cells onto the grid with the pattern's
// top-left at (anchorRow, anchorCol). Pattern cells falling outside the
// grid are clipped silently. Dead pattern cells leave the grid untouched
// (union semantics), so stamping never erases unrelated life.
func (g *Grid) Stamp(p Pattern, anchorRow, anchorCol int) {
	for r := 0; r < p.Rows(); r++ {
		for c := 0; c < p.Cols(); c++ {
			if !p.Alive(r, c) {
				continue
			}
			if g.inBounds(anchorRow+r, anchorCol+c) {
				_ = g.Set(anchorRow+r, anchorCol+c, true)
			}
		}
	}
}
