package music

import (
	"bytes"
	"context"
	"fmt"

	"github.com/JeanRibes/midi2sheet/quantize"
	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2/smf"
	"gitlab.com/gomidi/quantizer/lib/quantizer"
)

// ReferenceQuantize runs gomidi's quantizer over the take, to compare its
// output with the pipeline's.
func ReferenceQuantize(ctx context.Context, seq quantize.Sequence, tempo float64) (quantize.Sequence, error) {
	logger := charmlog.FromContext(ctx)
	logger.Printf("reference quantize at %.0f BPM", tempo)

	var in, out bytes.Buffer
	tmpFile := smf.New()
	if err := tmpFile.Add(Track(seq, tempo, tmpFile.TimeFormat.(smf.MetricTicks), "reference")); err != nil {
		return nil, err
	}
	if _, err := tmpFile.WriteTo(&in); err != nil {
		return nil, err
	}
	if err := quantizer.Quantize(&in, &out); err != nil {
		return nil, fmt.Errorf("quantizer: %w", err)
	}
	q, err := smf.ReadFrom(&out)
	if err != nil {
		return nil, fmt.Errorf("reading quantizer output: %w", err)
	}
	take, err := TakeFrom(q, ReadOptions{Track: -1})
	if err != nil {
		return nil, err
	}
	logger.Debug("reference quantize done", "notes", len(take.Segments))
	return take.Segments, nil
}
