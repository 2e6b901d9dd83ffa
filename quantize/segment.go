// Package quantize cleans a performed monophonic note sequence and snaps it
// onto a sixteenth-note grid.
package quantize

import (
	"fmt"
	"slices"

	. "github.com/JeanRibes/midi2sheet/shared"
)

// Segment is one performed note. Start and End are in seconds.
type Segment struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Pitch uint8   `yaml:"pitch" json:"pitch"`
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %d]", s.Start, s.End, s.Pitch)
}

// Sequence is ordered by onset.
type Sequence []Segment

// RestTrack holds the silence before each note: element 0 is the silence
// before the first note, element i the gap between note i-1 and note i.
type RestTrack []float64

// NoteTrack is a gap-free note sequence: note i+1 starts where note i ends.
type NoteTrack []Segment

func (seq Sequence) Clone() Sequence {
	return slices.Clone(seq)
}

// TotalDuration sums the note durations, silences excluded.
func (seq Sequence) TotalDuration() (total float64) {
	for _, s := range seq {
		total += s.Duration()
	}
	return
}

func (nt NoteTrack) Durations() []float64 {
	res := make([]float64, len(nt))
	for i, n := range nt {
		res[i] = n.Duration()
	}
	return res
}

func (rt RestTrack) Sum() (total float64) {
	for _, r := range rt {
		total += r
	}
	return
}

// Validate checks the invariants the pipeline expects at its entry. A note may
// start before the previous one ends; decomposition lines it up after it.
func Validate(seq Sequence) error {
	if len(seq) == 0 {
		return &StageError{Stage: Input, Index: -1, Err: fmt.Errorf("%w: empty sequence", ErrMalformedInput)}
	}
	for i, s := range seq {
		if !(s.End > s.Start) {
			return &StageError{Stage: Input, Index: i, Err: fmt.Errorf("%w: offset %v not after onset %v", ErrMalformedInput, s.End, s.Start)}
		}
		if s.Pitch > 127 {
			return &StageError{Stage: Input, Index: i, Err: fmt.Errorf("%w: pitch %d out of range", ErrMalformedInput, s.Pitch)}
		}
		if i == 0 {
			continue
		}
		prev := seq[i-1]
		if s.Start < prev.Start {
			return &StageError{Stage: Input, Index: i, Err: fmt.Errorf("%w: onset %v before previous onset %v", ErrMalformedInput, s.Start, prev.Start)}
		}
	}
	return nil
}
