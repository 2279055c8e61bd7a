package pipeline

import "errors"

var (
	// ErrOutOfOrder indicates the stage is not the next pending stage (for
	// submit) or not yet complete (for rerun). Rejected before any I/O
	// beyond the snapshot read.
	ErrOutOfOrder = errors.New("stage out of order")
	// ErrGenerationFailed indicates the completion call was made and failed.
	// The credit is spent; retrying bills again.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrInvalidInput indicates invalid stage input.
	ErrInvalidInput = errors.New("invalid stage input")
	// ErrGapIndexOutOfRange indicates a selected gap index outside the
	// current analysis.
	ErrGapIndexOutOfRange = errors.New("gap index out of range")
)
