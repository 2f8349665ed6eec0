package engine

import "errors"

// Sentinel errors for the core API. All are locally recoverable; none are
// fatal to the process. Callers match with errors.Is.
var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidRuleString = errors.New("invalid rule string")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
	ErrFrameOutOfRange   = errors.New("frame index out of range")
	ErrRecordingNotFound = errors.New("recording not found")
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrInvalidRotation   = errors.New("rotation must be a multiple of 90 degrees")
	ErrEmptyRecording    = errors.New("recording has no frames")
)
