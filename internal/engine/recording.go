package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Frame is one recorded generation: a deep copy of grid contents plus the
// generation number it was captured at.
type Frame struct {
	Rows, Cols int
	Cells      []Cell
	Generation int
}

// Recording is an immutable named sequence of frames plus capture metadata.
type Recording struct {
	ID        uuid.UUID
	Name      string
	Rule      string
	Rows      int
	Cols      int
	CreatedAt time.Time
	Frames    []Frame
}

// RecordingStore persists named recordings. Implementations live outside
// the core; failures propagate to the caller unchanged.
type RecordingStore interface {
	SaveRecording(ctx context.Context, rec Recording) error
	GetRecording(ctx context.Context, name string) (Recording, error)
	ListRecordings(ctx context.Context) ([]RecordingSummary, error)
}

// RecordingSummary is the listing row for saved recordings.
type RecordingSummary struct {
	ID        uuid.UUID
	Name      string
	Rule      string
	Rows      int
	Cols      int
	Frames    int
	CreatedAt time.Time
}

// DefaultMaxFrames bounds the in-memory frame buffer; the oldest frames
// are evicted first beyond the cap.
const DefaultMaxFrames = 2000

// Recorder captures a frame per completed generation while active and
// answers scrub queries. It is speed-agnostic: playback rate belongs to
// the host scheduler.
type Recorder struct {
	maxFrames int
	active    bool
	frames    []Frame
}

// NewRecorder returns a recorder capped at maxFrames; non-positive uses
// DefaultMaxFrames.
func NewRecorder(maxFrames int) *Recorder {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return &Recorder{maxFrames: maxFrames}
}

// Start begins appending frames on Observe. The buffer persists across
// idle periods until explicitly cleared.
func (r *Recorder) Start() { r.active = true }

// Stop pauses capture without discarding the buffer.
func (r *Recorder) Stop() { r.active = false }

// Active reports whether frames are currently being captured.
func (r *Recorder) Active() bool { return r.active }

// Observe appends a frame for the grid's current state if recording is
// active, evicting the oldest frame beyond the cap.
func (r *Recorder) Observe(g *Grid) {
	if !r.active {
		return
	}
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	r.frames = append(r.frames, Frame{Rows: g.rows, Cols: g.cols, Cells: cells, Generation: g.generation})
	if len(r.frames) > r.maxFrames {
		r.frames = r.frames[1:]
	}
}

// Len returns the number of buffered frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Frame returns the buffered frame at index i.
func (r *Recorder) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(r.frames) {
		return Frame{}, ErrFrameOutOfRange
	}
	return r.frames[i], nil
}

// ScrubTo loads frame i's cells into the live grid. The buffer is not
// mutated and the generation counter does not advance.
func (r *Recorder) ScrubTo(g *Grid, i int) error {
	if i < 0 || i >= len(r.frames) {
		return ErrFrameOutOfRange
	}
	f := r.frames[i]
	g.restoreCells(f.Rows, f.Cols, f.Cells)
	return nil
}

// Snapshot freezes the current buffer into an immutable named Recording.
// Fails with ErrEmptyRecording when nothing has been captured.
func (r *Recorder) Snapshot(name string, g *Grid) (Recording, error) {
	if len(r.frames) == 0 {
		return Recording{}, ErrEmptyRecording
	}
	frames := make([]Frame, len(r.frames))
	for i, f := range r.frames {
		cells := make([]Cell, len(f.Cells))
		copy(cells, f.Cells)
		frames[i] = Frame{Rows: f.Rows, Cols: f.Cols, Cells: cells, Generation: f.Generation}
	}
	first := frames[0]
	return Recording{
		ID:        uuid.New(),
		Name:      name,
		Rule:      g.Rule().String(),
		Rows:      first.Rows,
		Cols:      first.Cols,
		CreatedAt: time.Now(),
		Frames:    frames,
	}, nil
}

// Load replaces the buffer with a read-only copy of the recording's frames
// and stops capture. Playback position is the caller's concern; the
// session scrubs to frame 0 after loading.
func (r *Recorder) Load(rec Recording) {
	frames := make([]Frame, len(rec.Frames))
	for i, f := range rec.Frames {
		cells := make([]Cell, len(f.Cells))
		copy(cells, f.Cells)
		frames[i] = Frame{Rows: f.Rows, Cols: f.Cols, Cells: cells, Generation: f.Generation}
	}
	r.frames = frames
	r.active = false
}

// Clear empties the in-memory buffer. Saved recordings are unaffected.
func (r *Recorder) Clear() { r.frames = r.frames[:0] }
