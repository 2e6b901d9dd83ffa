package quantize

import (
	"errors"
	"fmt"

	. "github.com/JeanRibes/midi2sheet/shared"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrDegenerateGrid = errors.New("degenerate grid")
	ErrInvalidTempo   = errors.New("invalid tempo")
)

// StageError reports which stage failed and, when relevant, on which segment.
// Index is -1 when the failure is not tied to a segment.
type StageError struct {
	Stage Stage
	Index int
	Err   error
}

func (e *StageError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: segment %d: %v", e.Stage, e.Index, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
