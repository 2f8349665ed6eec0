package engine

import "context"

// PatternSource is the read-only pattern library collaborator.
type PatternSource interface {
	Get(name string) (Pattern, bool)
	Search(query string) []Pattern
}

// Session composes the grid, stepper, history and recorder and owns the
// capture points for user edits. Cross-cutting notification is a single
// explicit callback, not a shared event bus: OnChange fires once per
// completed step, placement, undo/redo and scrub. All mutating calls must
// be serialized onto one logical thread of control by the host.
type Session struct {
	Grid     *Grid
	Stepper  *Stepper
	History  *History
	Recorder *Recorder
	Store    RecordingStore
	Patterns PatternSource

	// OnChange is invoked after any visible grid change so an external
	// renderer can redraw. Nil is fine.
	OnChange func()

	running bool
}

// SessionConfig carries the tunables a session is built from.
type SessionConfig struct {
	Rows, Cols  int
	Rule        Rule
	MaxHistory  int
	MaxFrames   int
	StableAfter int
}

// NewSession wires a session from its collaborators. store and patterns
// may be nil when persistence or the library is unavailable.
func NewSession(cfg SessionConfig, store RecordingStore, patterns PatternSource) *Session {
	g := NewGrid(cfg.Rows, cfg.Cols)
	g.SetRule(cfg.Rule)
	return &Session{
		Grid:     g,
		Stepper:  NewStepper(cfg.StableAfter),
		History:  NewHistory(cfg.MaxHistory),
		Recorder: NewRecorder(cfg.MaxFrames),
		Store:    store,
		Patterns: patterns,
	}
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// Running reports whether continuous stepping is active.
func (s *Session) Running() bool { return s.running }

// SetRunning toggles continuous stepping. Recording follows the run state:
// frames are captured while the simulation runs.
func (s *Session) SetRunning(run bool) {
	if s.running == run {
		return
	}
	s.running = run
	if run {
		s.Stepper.ResetStability()
		s.Recorder.Start()
	} else {
		s.Recorder.Stop()
	}
}

// Tick advances one generation, records the result, and halts the run when
// the board has been stable for the configured number of steps. Returns
// the changed flag from the step.
func (s *Session) Tick() bool {
	changed := s.Stepper.Step(s.Grid)
	s.Recorder.Observe(s.Grid)
	if s.Stepper.Stable() {
		s.SetRunning(false)
	}
	s.notify()
	return changed
}

// Step advances a single generation outside a continuous run.
func (s *Session) Step() bool {
	changed := s.Stepper.Step(s.Grid)
	s.Recorder.Observe(s.Grid)
	s.notify()
	return changed
}

// ToggleCell flips one cell as a discrete user edit, captured for undo.
func (s *Session) ToggleCell(row, col int) error {
	cur, err := s.Grid.Get(row, col)
	if err != nil {
		return err
	}
	s.History.Capture(s.Grid)
	if err := s.Grid.Set(row, col, !cur.Alive); err != nil {
		return err
	}
	s.Stepper.ResetStability()
	s.notify()
	return nil
}

// PlacePattern stamps a named library pattern rotated by degrees with its
// top-left at (row, col). The edit is captured for undo.
func (s *Session) PlacePattern(name string, row, col, degrees int) error {
	if s.Patterns == nil {
		return ErrPatternNotFound
	}
	p, ok := s.Patterns.Get(name)
	if !ok {
		return ErrPatternNotFound
	}
	return s.StampPattern(p, row, col, degrees)
}

// StampPattern stamps an explicit pattern, rotated, as a captured edit.
func (s *Session) StampPattern(p Pattern, row, col, degrees int) error {
	rotated, err := p.Rotate(degrees)
	if err != nil {
		return err
	}
	s.History.Capture(s.Grid)
	s.Grid.Stamp(rotated, row, col)
	s.Stepper.ResetStability()
	s.notify()
	return nil
}

// ClearGrid kills every cell as a captured edit. Generation counter and
// rule are preserved.
func (s *Session) ClearGrid() {
	s.History.Capture(s.Grid)
	s.Grid.Clear()
	s.Stepper.ResetStability()
	s.notify()
}

// RandomizeGrid fills the board from a deterministic stream as a captured
// edit.
func (s *Session) RandomizeGrid(density int, st *Stream) {
	s.History.Capture(s.Grid)
	s.Grid.Randomize(density, st)
	s.Stepper.ResetStability()
	s.notify()
}

// Undo restores the previous captured state.
func (s *Session) Undo() error {
	if err := s.History.Undo(s.Grid); err != nil {
		return err
	}
	s.Stepper.ResetStability()
	s.notify()
	return nil
}

// Redo restores the next captured state.
func (s *Session) Redo() error {
	if err := s.History.Redo(s.Grid); err != nil {
		return err
	}
	s.Stepper.ResetStability()
	s.notify()
	return nil
}

// ScrubTo loads a recorded frame into the live grid.
func (s *Session) ScrubTo(frame int) error {
	if err := s.Recorder.ScrubTo(s.Grid, frame); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SaveRecording freezes the buffer under a name and persists it.
func (s *Session) SaveRecording(ctx context.Context, name string) (Recording, error) {
	rec, err := s.Recorder.Snapshot(name, s.Grid)
	if err != nil {
		return Recording{}, err
	}
	if s.Store != nil {
		if err := s.Store.SaveRecording(ctx, rec); err != nil {
			return Recording{}, err
		}
	}
	return rec, nil
}

// LoadRecording replaces the buffer with a saved recording and positions
// playback at frame 0.
func (s *Session) LoadRecording(ctx context.Context, name string) error {
	if s.Store == nil {
		return ErrRecordingNotFound
	}
	rec, err := s.Store.GetRecording(ctx, name)
	if err != nil {
		return err
	}
	s.SetRunning(false)
	s.Recorder.Load(rec)
	if rule, err := ParseRule(rec.Rule); err == nil {
		s.Grid.SetRule(rule)
	}
	return s.ScrubTo(0)
}
