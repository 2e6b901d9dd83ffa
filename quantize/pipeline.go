package quantize

import (
	"context"

	. "github.com/JeanRibes/midi2sheet/shared"

	charmlog "github.com/charmbracelet/log"
)

type Options struct {
	Tempo float64
	Grid  Grid
	// Observer, if set, receives a copy of the sequence after each stage.
	Observer func(stage Stage, seq Sequence)
}

type Result struct {
	Grid     Grid
	Cleaned  Sequence
	Rests    RestTrack
	Notes    NoteTrack
	Elements []Element
}

// Recompose returns the quantized take on an absolute timeline.
func (r *Result) Recompose() Sequence {
	return Recompose(r.Notes, r.Rests)
}

// Run validates seq and takes it through every stage in order. seq is not
// modified.
func Run(ctx context.Context, seq Sequence, opts Options) (*Result, error) {
	logger := charmlog.FromContext(ctx)
	observe := func(stage Stage, seq Sequence) {
		logger.Debug("stage done", "stage", stage, "segments", len(seq), "sounding", seq.TotalDuration())
		if opts.Observer != nil {
			opts.Observer(stage, seq.Clone())
		}
	}

	if err := Validate(seq); err != nil {
		return nil, err
	}
	vib, err := NewVibrato(opts.Tempo)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(opts.Grid.Unit)
	if err != nil {
		return nil, err
	}
	observe(Input, seq)

	cleaned := vib.Filter(seq)
	logger.Debug("vibrato", "allowable", vib.Allowable, "absorbed", len(seq)-len(cleaned))
	observe(VibratoFilter, cleaned)
	cleaned = ResolveOverlaps(cleaned)
	observe(OverlapResolver, cleaned)
	cleaned = DropDegenerate(cleaned)
	observe(DegenerateFilter, cleaned)

	rests := RestTrackOf(cleaned)
	notes := NoteTrackOf(cleaned)
	observe(TimelineDecomposer, Sequence(notes))

	rests = grid.QuantizeRests(rests)
	notes = grid.QuantizeNotes(notes)
	observe(GridQuantizer, Sequence(notes))
	notes = grid.CorrectOddRuns(notes)
	observe(OddRunCorrection, Sequence(notes))

	res := &Result{
		Grid:    grid,
		Cleaned: cleaned,
		Rests:   rests,
		Notes:   notes,
	}
	if opts.Observer != nil {
		observe(TimelineRecomposer, res.Recompose())
	}
	res.Elements = grid.BuildElements(notes, rests)
	logger.Debug("elements", "count", len(res.Elements), "unit", grid.Unit)
	return res, nil
}
