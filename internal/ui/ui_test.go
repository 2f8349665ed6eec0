package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sworgkh/game-of-life-studio/internal/util"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := util.Default()
	cfg.Rows, cfg.Cols = 10, 10
	cfg.SeedText = "ui-test-seed"
	return initialModel(context.Background(), nil, cfg, "test")
}

func key(m model, k string) model {
	next, _ := m.handleKey(k)
	return next.(model)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := testModel(t)
	for i := 0; i < 20; i++ {
		m = key(m, "up")
		m = key(m, "left")
	}
	if m.curRow != 0 || m.curCol != 0 {
		t.Fatalf("cursor escaped top-left: %d,%d", m.curRow, m.curCol)
	}
	for i := 0; i < 50; i++ {
		m = key(m, "down")
		m = key(m, "right")
	}
	if m.curRow != 9 || m.curCol != 9 {
		t.Fatalf("cursor escaped bottom-right: %d,%d", m.curRow, m.curCol)
	}
}

func TestToggleAndUndoThroughKeys(t *testing.T) {
	m := testModel(t)
	m = key(m, "x")
	if c, _ := m.session.Grid.Get(0, 0); !c.Alive {
		t.Fatalf("x did not toggle cell")
	}
	m = key(m, "u")
	if c, _ := m.session.Grid.Get(0, 0); c.Alive {
		t.Fatalf("u did not undo toggle")
	}
}

func TestViewSwitching(t *testing.T) {
	m := testModel(t)
	m = key(m, "b")
	if m.view != viewPatterns {
		t.Fatalf("b should open patterns, got %s", m.view)
	}
	m = key(m, "esc")
	m = key(m, "v")
	if m.view != viewRecordings {
		t.Fatalf("v should open recordings, got %s", m.view)
	}
	m = key(m, "esc")
	m = key(m, "?")
	if m.view != viewHelp {
		t.Fatalf("? should open help, got %s", m.view)
	}
}

func TestPatternSearchAndSelect(t *testing.T) {
	m := testModel(t)
	m = key(m, "b")
	for _, r := range "glider" {
		m = key(m, string(r))
	}
	if len(m.patternList) == 0 {
		t.Fatalf("search for glider found nothing")
	}
	m = key(m, "enter")
	if m.view != viewBoard {
		t.Fatalf("enter should return to board")
	}
	if !strings.Contains(m.stamp, "glider") {
		t.Fatalf("stamp selection = %q", m.stamp)
	}
}

func TestSpaceStartsRunLoop(t *testing.T) {
	m := testModel(t)
	next, cmd := m.handleKey(" ")
	m = next.(model)
	if !m.session.Running() {
		t.Fatalf("space did not start the run")
	}
	if cmd == nil {
		t.Fatalf("starting the run must schedule a tick")
	}
	next, _ = m.handleKey(" ")
	m = next.(model)
	if m.session.Running() {
		t.Fatalf("space did not pause")
	}
}

func TestRunHaltsWhenStable(t *testing.T) {
	m := testModel(t)
	m = key(m, "x") // lone cell
	next, _ := m.handleKey(" ")
	m = next.(model)
	// two ticks: cell dies, then the board is stable and the run halts
	for i := 0; i < 2; i++ {
		nm, _ := m.Update(tickMsg{})
		m = nm.(model)
	}
	if m.session.Running() {
		t.Fatalf("run did not halt on stable board")
	}
	if !strings.Contains(m.status, "stable") {
		t.Fatalf("status should report stability, got %q", m.status)
	}
}

func TestScrubKeysAfterRecordedRun(t *testing.T) {
	m := testModel(t)
	m = key(m, "x")
	next, _ := m.handleKey(" ")
	m = next.(model)
	nm, _ := m.Update(tickMsg{})
	m = nm.(model)
	m.session.SetRunning(false)
	m = key(m, "[")
	if !m.scrubbing {
		t.Fatalf("[ did not enter scrub mode")
	}
	if m.scrubIdx != 0 {
		t.Fatalf("scrub index = %d, want 0", m.scrubIdx)
	}
}

func TestSettingsRuleCycle(t *testing.T) {
	m := testModel(t)
	m = key(m, "s")
	if m.view != viewSettings {
		t.Fatalf("s should open settings")
	}
	before := m.cfg.Rule
	m = key(m, "r")
	if m.cfg.Rule == before {
		t.Fatalf("r did not cycle rule")
	}
	if m.session.Grid.Rule().String() != m.cfg.Rule {
		t.Fatalf("grid rule not updated with config")
	}
}

func TestBoardViewRenders(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 120, 40
	out := m.View()
	if !strings.Contains(out, "Game of Life Studio") {
		t.Fatalf("board view missing title")
	}
	if !strings.Contains(out, "B3/S23") {
		t.Fatalf("board view missing rule in status line")
	}
}

var _ tea.Model = model{}
