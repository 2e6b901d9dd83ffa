package music

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	. "github.com/JeanRibes/midi2sheet/shared"

	"github.com/JeanRibes/midi2sheet/quantize"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const VELOCITY = 100

const TICKS = smf.MetricTicks(960)

// Take is one performed line read from a MIDI file.
type Take struct {
	Segments quantize.Sequence
	// Tempo is the first tempo found in the file, DefaultTempo otherwise.
	Tempo float64
	Track int
}

type ReadOptions struct {
	// Track is the index of the track to read; -1 picks the first track
	// holding notes.
	Track     int
	Monophony Monophony
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on truncated files
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("parsing %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file %s: %w", filepath, err)
	}
	return res, nil
}

func ReadTake(filepath string, opts ReadOptions) (*Take, error) {
	f, err := ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return TakeFrom(f, opts)
}

// TakeFrom extracts one monophonic line from f, with times in seconds
// following the file's tempo map.
func TakeFrom(f *smf.SMF, opts ReadOptions) (*Take, error) {
	if f.NumTracks() < 1 {
		return nil, errors.New("no tracks in file")
	}
	take := &Take{Tempo: Tempo(f), Track: opts.Track}
	if take.Track < 0 {
		take.Track = firstTrackWithNotes(f)
	}
	if take.Track < 0 || take.Track >= len(f.Tracks) {
		return nil, fmt.Errorf("track %d not found (file has %d tracks)", opts.Track, f.NumTracks())
	}

	var events []noteEvent
	var ch, key, vel uint8
	absTicks := int64(0)
	for _, ev := range f.Tracks[take.Track] {
		absTicks += int64(ev.Delta)
		msg := midi.Message(ev.Message)
		at := float64(f.TimeAt(absTicks)) / 1e6
		switch {
		case msg.GetNoteOn(&ch, &key, &vel) && vel > 0:
			events = append(events, noteEvent{at: at, key: key, on: true})
		case msg.GetNoteEnd(&ch, &key):
			events = append(events, noteEvent{at: at, key: key})
		}
	}
	take.Segments = opts.Monophony.reduce(events)
	if len(take.Segments) == 0 {
		return nil, fmt.Errorf("track %d has no notes", take.Track)
	}
	return take, nil
}

func firstTrackWithNotes(f *smf.SMF) int {
	var ch, key, vel uint8
	for i, tr := range f.Tracks {
		for _, ev := range tr {
			if ev.Message.GetNoteOn(&ch, &key, &vel) {
				return i
			}
		}
	}
	return -1
}

// Tempo returns the first tempo of the file in BPM.
func Tempo(f *smf.SMF) float64 {
	bpm := DefaultTempo
	for _, tr := range f.Tracks {
		for _, ev := range tr {
			if ev.Message.GetMetaTempo(&bpm) {
				return bpm
			}
		}
	}
	return DefaultTempo
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// Track converts segments into a single-instrument track at a constant
// tempo. Notes starting before the previous one ended are moved after it.
func Track(seq quantize.Sequence, tempo float64, ticks smf.MetricTicks, name string) smf.Track {
	tr := smf.Track{}
	if name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(name))
	}
	tr.Add(0, smf.MetaTempo(tempo))
	last := uint32(0)
	for _, s := range seq {
		on := ticks.Ticks(tempo, toDuration(s.Start))
		off := ticks.Ticks(tempo, toDuration(s.End))
		if on < last {
			on = last
		}
		if off < on {
			off = on
		}
		tr.Add(on-last, midi.NoteOn(0, s.Pitch, VELOCITY))
		tr.Add(off-on, midi.NoteOff(0, s.Pitch))
		last = off
	}
	tr.Close(0)
	return tr
}

func WriteSegments(seq quantize.Sequence, tempo float64, filepath string) error {
	f := smf.New()
	if err := f.Add(Track(seq, tempo, f.TimeFormat.(smf.MetricTicks), "")); err != nil {
		return err
	}
	if err := f.WriteFile(filepath); err != nil {
		return fmt.Errorf("writing %s: %w", filepath, err)
	}
	return nil
}
