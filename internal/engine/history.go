package engine

// History is a bounded linear undo/redo over grid snapshots. Capture points
// are caller-driven: the session captures before discrete user edits
// (toggles, stamps, clears), never per simulated generation.
type History struct {
	max  int
	undo []Snapshot
	redo []Snapshot
}

// DefaultMaxHistory caps the undo stack when no explicit depth is given.
const DefaultMaxHistory = 50

// NewHistory returns a history capped at max snapshots; non-positive max
// uses DefaultMaxHistory.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{max: max}
}

// Capture pushes the current grid state onto the undo stack, evicting the
// oldest snapshot beyond the cap. Any redo history is invalidated.
func (h *History) Capture(g *Grid) {
	h.undo = append(h.undo, g.Snapshot())
	if len(h.undo) > h.max {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// Undo restores the most recent captured snapshot, pushing the current
// state onto the redo stack. Fails with ErrNothingToUndo on an empty stack.
func (h *History) Undo(g *Grid) error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g.Snapshot())
	g.Restore(top)
	return nil
}

// Redo is the inverse of Undo; fails with ErrNothingToRedo.
func (h *History) Redo(g *Grid) error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g.Snapshot())
	g.Restore(top)
	return nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the current undo stack size.
func (h *History) Depth() int { return len(h.undo) }
