package music

import (
	"fmt"
	"strings"

	"github.com/JeanRibes/midi2sheet/quantize"
)

// Monophony decides what happens when a note starts while another one is
// still sounding.
type Monophony int

const (
	// Cut stops the sounding note when the next one starts.
	Cut Monophony = iota
	// Ignore skips notes started while another one sounds.
	Ignore
)

func (m Monophony) String() string {
	switch m {
	case Cut:
		return "cut"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("monophony(%d)", int(m))
	}
}

func ParseMonophony(s string) (Monophony, error) {
	switch strings.ToLower(s) {
	case "", "cut":
		return Cut, nil
	case "ignore":
		return Ignore, nil
	}
	return Cut, fmt.Errorf("unknown monophony policy %q (want cut or ignore)", s)
}

type noteEvent struct {
	at  float64 // seconds
	key uint8
	on  bool
}

const silent = 128

// reduce filters chords so that only one note is ever playing at a given
// time. Zero-length notes are dropped.
func (m Monophony) reduce(events []noteEvent) quantize.Sequence {
	out := quantize.Sequence{}
	sounding := uint16(silent)
	startedAt := 0.0
	emit := func(end float64) {
		if end > startedAt {
			out = append(out, quantize.Segment{Start: startedAt, End: end, Pitch: uint8(sounding)})
		}
	}

	for _, ev := range events {
		switch {
		case ev.on && sounding == silent:
			sounding = uint16(ev.key)
			startedAt = ev.at
		case ev.on && m == Cut: // note already playing, stop it
			emit(ev.at)
			sounding = uint16(ev.key)
			startedAt = ev.at
		case ev.on: // note already playing, skip
		case sounding == uint16(ev.key):
			emit(ev.at)
			sounding = silent
		}
	}
	return out
}
