package music

import (
	"bytes"
	"fmt"

	"github.com/JeanRibes/midi2sheet/quantize"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Reference synthesizes the take as a 4/4 file at the given tempo, with its
// first onset moved to 0.
func Reference(seq quantize.Sequence, tempo float64) (*smf.SMF, error) {
	shifted := seq.Clone()
	if len(shifted) > 0 {
		first := shifted[0].Start
		for i := range shifted {
			shifted[i].Start -= first
			shifted[i].End -= first
		}
	}

	conductor := smf.Track{}
	conductor.Add(0, smf.MetaMeter(4, 4))
	conductor.Add(0, smf.MetaTempo(tempo))
	conductor.Close(0)

	f := smf.New()
	f.TimeFormat = TICKS
	if err := f.Add(conductor); err != nil {
		return nil, err
	}
	if err := f.Add(Track(shifted, tempo, TICKS, "reference")); err != nil {
		return nil, err
	}
	return f, nil
}

// Downbeat returns the time in seconds of the second downbeat of f, that is
// the length of its first measure.
func Downbeat(f *smf.SMF) (float64, error) {
	ticks, ok := f.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, fmt.Errorf("unsupported time format %v", f.TimeFormat)
	}
	num, denom := uint8(4), uint8(4)
meter:
	for _, tr := range f.Tracks {
		for _, ev := range tr {
			if ev.Message.GetMetaMeter(&num, &denom) {
				break meter
			}
		}
	}
	if num == 0 || denom == 0 {
		return 0, fmt.Errorf("invalid meter %d/%d", num, denom)
	}
	measure := int64(ticks.Resolution()) * 4 * int64(num) / int64(denom)
	return float64(f.TimeAt(measure)) / 1e6, nil
}

// EstimateDownbeat writes the reference file of the take and measures its
// first downbeat.
func EstimateDownbeat(seq quantize.Sequence, tempo float64) (float64, error) {
	ref, err := Reference(seq, tempo)
	if err != nil {
		return 0, err
	}
	var bf bytes.Buffer
	if _, err := ref.WriteTo(&bf); err != nil {
		return 0, err
	}
	back, err := smf.ReadFrom(&bf)
	if err != nil {
		return 0, fmt.Errorf("reading reference: %w", err)
	}
	return Downbeat(back)
}
