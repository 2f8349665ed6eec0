package engine

import (
	"errors"
	"testing"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	g := NewGrid(5, 5)
	h := NewHistory(10)
	h.Capture(g)
	g.Set(2, 2, true)
	if err := h.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if c, _ := g.Get(2, 2); c.Alive {
		t.Fatalf("undo did not restore pre-edit state")
	}
	if err := h.Redo(g); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if c, _ := g.Get(2, 2); !c.Alive {
		t.Fatalf("redo did not restore post-edit state")
	}
}

func TestUndoRestoresGenerationFromSnapshot(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(2, 2, true)
	h := NewHistory(10)
	h.Capture(g)
	st := NewStepper(1)
	st.Step(g)
	st.Step(g)
	if err := h.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.Generation() != 0 {
		t.Fatalf("undo restored generation %d, want 0", g.Generation())
	}
}

func TestHistoryErrorsOnEmptyStacks(t *testing.T) {
	g := NewGrid(3, 3)
	h := NewHistory(5)
	if err := h.Undo(g); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	if err := h.Redo(g); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryEvictsOldestBeyondCap(t *testing.T) {
	g := NewGrid(3, 3)
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		g.Set(0, i%3, true)
		h.Capture(g)
	}
	if h.Depth() != 3 {
		t.Fatalf("depth = %d, want cap 3", h.Depth())
	}
	for h.CanUndo() {
		if err := h.Undo(g); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	if err := h.Undo(g); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo past evicted entries should fail, got %v", err)
	}
}

func TestCaptureClearsRedo(t *testing.T) {
	g := NewGrid(3, 3)
	h := NewHistory(5)
	h.Capture(g)
	g.Set(1, 1, true)
	if err := h.Undo(g); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	// divergent edit invalidates redo
	h.Capture(g)
	g.Set(0, 0, true)
	if h.CanRedo() {
		t.Fatalf("redo survived a divergent capture")
	}
	if err := h.Redo(g); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}
