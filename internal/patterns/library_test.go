package patterns

import (
	"testing"

	"github.com/sworgkh/game-of-life-studio/internal/engine"
)

func TestGetKnownPatterns(t *testing.T) {
	lib := New()
	for _, name := range []string{"glider", "block", "blinker", "gosper-glider-gun", "r-pentomino"} {
		if _, ok := lib.Get(name); !ok {
			t.Fatalf("missing built-in pattern %q", name)
		}
	}
	if _, ok := lib.Get("  GLIDER "); !ok {
		t.Fatalf("lookup should be case-insensitive and trimmed")
	}
	if _, ok := lib.Get("nonexistent"); ok {
		t.Fatalf("unexpected hit for unknown pattern")
	}
}

func TestGliderShape(t *testing.T) {
	lib := New()
	p, _ := lib.Get("glider")
	if p.Rows() != 3 || p.Cols() != 3 {
		t.Fatalf("glider dims %dx%d", p.Rows(), p.Cols())
	}
	want := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	count := 0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if p.Alive(r, c) {
				count++
			}
		}
	}
	if count != 5 {
		t.Fatalf("glider has %d live cells, want 5", count)
	}
	for _, rc := range want {
		if !p.Alive(rc[0], rc[1]) {
			t.Fatalf("glider missing cell (%d,%d)", rc[0], rc[1])
		}
	}
}

func TestSearch(t *testing.T) {
	lib := New()
	if got := len(lib.Search("")); got != lib.Len() {
		t.Fatalf("empty query returned %d of %d", got, lib.Len())
	}
	ships := lib.Search("spaceship")
	if len(ships) != 3 {
		t.Fatalf("spaceship search returned %d, want 3", len(ships))
	}
	for i := 1; i < len(ships); i++ {
		if ships[i-1].Name > ships[i].Name {
			t.Fatalf("search results not sorted: %s before %s", ships[i-1].Name, ships[i].Name)
		}
	}
	byDesc := lib.Search("130 generations")
	if len(byDesc) != 1 || byDesc[0].Name != "diehard" {
		t.Fatalf("description search failed: %v", byDesc)
	}
}

func TestLibraryImplementsPatternSource(t *testing.T) {
	var _ engine.PatternSource = New()
}
