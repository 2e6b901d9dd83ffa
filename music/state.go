package music

import (
	"errors"
	"fmt"

	. "github.com/JeanRibes/midi2sheet/shared"

	"github.com/JeanRibes/midi2sheet/quantize"
	"gitlab.com/gomidi/midi/v2/smf"
)

// State keeps the sequence produced by every pipeline stage so they can be
// compared side by side.
type State struct {
	Stages   [NUM_STAGES]quantize.Sequence
	recorded [NUM_STAGES]bool
	Tempo    float64
}

const STATE_PREALLOCATION = 128

func NewState(tempo float64) *State {
	state := State{Tempo: tempo}
	for i := 0; i < NUM_STAGES; i++ {
		state.Stages[i] = make(quantize.Sequence, 0, STATE_PREALLOCATION)
	}
	return &state
}

// Record stores seq as the output of stage. It has the signature of
// quantize.Options.Observer.
func (s *State) Record(stage Stage, seq quantize.Sequence) {
	if stage < 0 || int(stage) >= NUM_STAGES {
		return
	}
	s.Stages[stage] = append(s.Stages[stage][0:0], seq...)
	s.recorded[stage] = true
}

func (s *State) Recorded(stage Stage) bool {
	return s.recorded[stage]
}

func (s *State) Clear(stage Stage) {
	s.Stages[stage] = s.Stages[stage][0:0]
	s.recorded[stage] = false
}

func (s *State) Stats() (res [NUM_STAGES]int) {
	for i, seq := range s.Stages {
		res[i] = len(seq)
	}
	return
}

func (s *State) Stat(stage Stage) int {
	return len(s.Stages[stage])
}

// SaveToFile writes one track per recorded stage, named after the stage.
func (s *State) SaveToFile(filepath string) (errs error) {
	f := smf.New()
	ticks := f.TimeFormat.(smf.MetricTicks)
	for i, seq := range s.Stages {
		if !s.recorded[i] {
			continue
		}
		if err := f.Add(Track(seq, s.Tempo, ticks, StageName(Stage(i)))); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if err := f.WriteFile(filepath); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

// LoadFromFile reads back a file written by SaveToFile. Tracks are matched to
// stages by name.
func (s *State) LoadFromFile(filepath string) error {
	f, err := ReadFile(filepath)
	if err != nil {
		return err
	}
	if f.NumTracks() < 1 {
		return errors.New("no tracks in file")
	}
	s.Tempo = Tempo(f)
	for i, tr := range f.Tracks {
		name := ""
		for _, ev := range tr {
			if ev.Message.GetMetaTrackName(&name) {
				break
			}
		}
		stage, ok := stageByName(name)
		if !ok {
			continue
		}
		take, err := TakeFrom(f, ReadOptions{Track: i})
		if err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		s.Record(stage, take.Segments)
	}
	return nil
}

func stageByName(name string) (Stage, bool) {
	for i := 0; i < NUM_STAGES; i++ {
		if StageName(Stage(i)) == name {
			return Stage(i), true
		}
	}
	return 0, false
}
