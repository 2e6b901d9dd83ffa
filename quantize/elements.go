package quantize

import (
	"fmt"
	"math"

	. "github.com/JeanRibes/midi2sheet/shared"
)

// Element is one note or rest as handed to the notation renderer. Duration is
// in quarter notes.
type Element struct {
	Name     string  `yaml:"name" json:"name"`
	Pitch    string  `yaml:"pitch" json:"pitch"`
	Duration float64 `yaml:"duration" json:"duration"`
	// Key is the MIDI key of a note, zero for rests. Use IsRest to tell a rest
	// from a C-1.
	Key uint8 `yaml:"key" json:"key"`
}

func (e Element) IsRest() bool {
	return e.Pitch == RestMarker
}

var pitchClasses = [12]string{"C", "C#", "D", "E-", "E", "F", "F#", "G", "G#", "A", "B-", "B"}

// PitchName spells a MIDI key the way scores name it, middle C being C4.
// Flats are written with '-'.
func PitchName(key uint8) string {
	return fmt.Sprintf("%s%d", pitchClasses[key%12], int(key)/12-1)
}

// quarters converts a duration to quarter notes through whole sixteenths.
func (g Grid) quarters(d float64) float64 {
	return math.RoundToEven(d/g.Unit) * 0.25
}

// BuildElements interleaves rests and notes, rest i before note i, and
// leaves out every element that rounds to nothing.
func (g Grid) BuildElements(notes NoteTrack, rests RestTrack) []Element {
	elements := make([]Element, 0, 2*len(notes))
	for i, n := range notes {
		if i < len(rests) {
			if d := g.quarters(rests[i]); d != 0 {
				elements = append(elements, Element{
					Name:     fmt.Sprintf("r%d", i),
					Pitch:    RestMarker,
					Duration: d,
				})
			}
		}
		if d := g.quarters(n.Duration()); d != 0 {
			elements = append(elements, Element{
				Name:     fmt.Sprintf("n%d", i),
				Pitch:    PitchName(n.Pitch),
				Duration: d,
				Key:      n.Pitch,
			})
		}
	}
	return elements
}
