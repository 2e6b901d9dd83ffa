package quantize

import (
	"fmt"
	"math"

	. "github.com/JeanRibes/midi2sheet/shared"
)

// Grid snaps durations onto multiples of Unit, the length of a sixteenth note
// in seconds.
type Grid struct {
	Unit float64
}

func NewGrid(unit float64) (Grid, error) {
	if !(unit > 0) || math.IsInf(unit, 1) {
		return Grid{}, &StageError{Stage: GridQuantizer, Index: -1, Err: fmt.Errorf("%w: unit %v", ErrDegenerateGrid, unit)}
	}
	return Grid{Unit: unit}, nil
}

// GridFromDownbeat derives the grid from the length of one 4/4 measure.
func GridFromDownbeat(downbeat float64) (Grid, error) {
	return NewGrid(downbeat / 16)
}

// Units returns d as a whole number of sixteenths, rounding half to even.
func (g Grid) Units(d float64) int {
	return int(math.RoundToEven(d / g.Unit))
}

// QuantizeRest rounds to the nearest multiple of the unit, halves going up.
func (g Grid) QuantizeRest(rest float64) float64 {
	q := math.Floor(rest / g.Unit)
	if rest/g.Unit-q < 0.5 {
		return q * g.Unit
	}
	return (q + 1) * g.Unit
}

func (g Grid) QuantizeRests(rests RestTrack) RestTrack {
	out := make(RestTrack, len(rests))
	for i, r := range rests {
		out[i] = g.QuantizeRest(r)
	}
	return out
}

// QuantizeNotes rounds every duration to whole sixteenths and packs the notes
// contiguously from time 0.
func (g Grid) QuantizeNotes(notes NoteTrack) NoteTrack {
	durations := make([]float64, len(notes))
	for i, n := range notes {
		durations[i] = float64(g.Units(n.Duration())) * g.Unit
	}
	return pack(notes, durations, nil, 0)
}

// Legal reports whether a length in sixteenths has a single-notehead
// notation: any even count, a sixteenth or a dotted eighth.
func Legal(units int) bool {
	return units%2 == 0 || units == 1 || units == 3
}

// CorrectOddRuns shortens every note whose length is an odd number of
// sixteenths other than 1 or 3 by one sixteenth, and packs the following
// notes up against it.
func (g Grid) CorrectOddRuns(notes NoteTrack) NoteTrack {
	if len(notes) == 0 {
		return NoteTrack{}
	}
	durations := make([]float64, len(notes))
	for i, n := range notes {
		units := g.Units(n.Duration())
		if !Legal(units) {
			units--
		}
		durations[i] = float64(units) * g.Unit
	}
	return pack(notes, durations, nil, notes[0].Start)
}
