package engine

import "testing"

func aliveSet(g *Grid) map[[2]int]bool {
	set := map[[2]int]bool{}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if cell, _ := g.Get(r, c); cell.Alive {
				set[[2]int{r, c}] = true
			}
		}
	}
	return set
}

func TestAllDeadGridStaysDead(t *testing.T) {
	g := NewGrid(10, 10)
	st := NewStepper(1)
	if changed := st.Step(g); changed {
		t.Fatalf("all-dead grid reported change")
	}
	if g.Population() != 0 {
		t.Fatalf("spontaneous birth: %d cells", g.Population())
	}
	if g.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", g.Generation())
	}
	if !st.Stable() {
		t.Fatalf("stepper not stable after unchanged step")
	}
}

func TestLoneCellDies(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(2, 2, true)
	st := NewStepper(1)
	if changed := st.Step(g); !changed {
		t.Fatalf("expected change")
	}
	if c, _ := g.Get(2, 2); c.Alive {
		t.Fatalf("lone cell survived under B3/S23")
	}
}

func TestGliderTranslatesByOneOne(t *testing.T) {
	glider := NewPattern("glider", "spaceship", "", [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	})
	g := NewGrid(50, 50)
	g.Stamp(glider, 10, 10)
	before := aliveSet(g)
	st := NewStepper(1)
	for i := 0; i < 4; i++ {
		st.Step(g)
	}
	after := aliveSet(g)
	if len(after) != len(before) {
		t.Fatalf("cell count changed: %d -> %d", len(before), len(after))
	}
	for rc := range before {
		if !after[[2]int{rc[0] + 1, rc[1] + 1}] {
			t.Fatalf("glider did not translate by (1,1); missing (%d,%d)", rc[0]+1, rc[1]+1)
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	g := NewGrid(5, 5)
	for c := 1; c <= 3; c++ {
		g.Set(2, c, true)
	}
	st := NewStepper(1)
	st.Step(g)
	want := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	got := aliveSet(g)
	if len(got) != len(want) {
		t.Fatalf("blinker phase wrong: %v", got)
	}
	for rc := range want {
		if !got[rc] {
			t.Fatalf("blinker missing cell %v", rc)
		}
	}
	st.Step(g)
	got = aliveSet(g)
	for _, rc := range [][2]int{{2, 1}, {2, 2}, {2, 3}} {
		if !got[rc] {
			t.Fatalf("blinker did not return to horizontal phase")
		}
	}
}

func TestNoWraparound(t *testing.T) {
	// A corner cell with two live edge neighbors would see a third
	// neighbor on a toroidal board. Here the edge is dead space.
	g := NewGrid(4, 4)
	g.Set(0, 0, true)
	g.Set(0, 3, true)
	g.Set(3, 0, true)
	g.Set(3, 3, true)
	st := NewStepper(1)
	st.Step(g)
	if g.Population() != 0 {
		t.Fatalf("corners survived; wraparound leaked in (%d alive)", g.Population())
	}
}

func TestSimultaneousUpdate(t *testing.T) {
	// R-pentomino first step is a known simultaneous-update result; an
	// in-place scan would corrupt it.
	g := NewGrid(10, 10)
	cells := [][2]int{{1, 2}, {1, 3}, {2, 1}, {2, 2}, {3, 2}}
	for _, rc := range cells {
		g.Set(rc[0], rc[1], true)
	}
	st := NewStepper(1)
	st.Step(g)
	want := map[[2]int]bool{
		{1, 1}: true, {1, 2}: true, {1, 3}: true,
		{2, 1}: true, {3, 1}: true, {3, 2}: true,
	}
	got := aliveSet(g)
	if len(got) != len(want) {
		t.Fatalf("r-pentomino step: got %d cells %v, want %d", len(got), got, len(want))
	}
	for rc := range want {
		if !got[rc] {
			t.Fatalf("r-pentomino step missing %v", rc)
		}
	}
}

func TestAgeTracksConsecutiveGenerations(t *testing.T) {
	// Block is a still life: ages should climb each generation.
	g := NewGrid(5, 5)
	for _, rc := range [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		g.Set(rc[0], rc[1], true)
	}
	st := NewStepper(3)
	st.Step(g)
	st.Step(g)
	c, _ := g.Get(1, 1)
	if c.Age != 2 {
		t.Fatalf("block cell age = %d after 2 steps, want 2", c.Age)
	}
}

func TestStableAfterThreshold(t *testing.T) {
	g := NewGrid(5, 5)
	st := NewStepper(3)
	st.Step(g)
	st.Step(g)
	if st.Stable() {
		t.Fatalf("stable before threshold")
	}
	st.Step(g)
	if !st.Stable() {
		t.Fatalf("not stable after 3 unchanged steps")
	}
	st.ResetStability()
	if st.Stable() {
		t.Fatalf("stable after reset")
	}
}

func TestCustomRuleSeeds(t *testing.T) {
	// B1/S: every dead cell with exactly one neighbor is born, nothing
	// survives.
	rule, err := ParseRule("B1/S")
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	g := NewGrid(3, 3)
	g.SetRule(rule)
	g.Set(1, 1, true)
	st := NewStepper(1)
	st.Step(g)
	if c, _ := g.Get(1, 1); c.Alive {
		t.Fatalf("center survived with empty survival set")
	}
	if g.Population() != 8 {
		t.Fatalf("B1 birth count = %d, want 8", g.Population())
	}
}
