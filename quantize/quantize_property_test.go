package quantize

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// takeFromCodes turns generated codes into a valid performed take: every
// code gives a silence and a note length.
func takeFromCodes(codes []int) Sequence {
	seq := make(Sequence, 0, len(codes))
	at := 0.0
	for i, c := range codes {
		at += float64(c%8) * 0.03
		d := 0.01 + float64(c/8%16)*0.05
		seq = append(seq, Segment{Start: at, End: at + d, Pitch: uint8(48 + i%24)})
		at += d
	}
	return seq
}

// boundaryFromCodes builds sequences with many shared starts and ends and
// zero-length entries.
func boundaryFromCodes(codes []int) Sequence {
	seq := make(Sequence, 0, len(codes))
	start := 0.0
	for _, c := range codes {
		start += float64(c % 4)
		seq = append(seq, Segment{Start: start, End: start + float64(c/4), Pitch: 60})
	}
	return seq
}

func isMultiple(d, unit float64) bool {
	x := d / unit
	return math.Abs(x-math.Round(x)) < 1e-9
}

func TestProperty_CleanupIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("cleanup twice equals cleanup once", prop.ForAll(
		func(codes []int) bool {
			once := Cleanup(boundaryFromCodes(codes))
			return reflect.DeepEqual(once, Cleanup(once))
		},
		gen.SliceOf(gen.IntRange(0, 15)),
	))

	properties.TestingRun(t)
}

func TestProperty_DecomposeIsLossless(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("recompose(decompose(x)) == x", prop.ForAll(
		func(codes []int) bool {
			in := takeFromCodes(codes)
			out := Recompose(NoteTrackOf(in), RestTrackOf(in))
			if len(out) != len(in) {
				return false
			}
			for i := range in {
				if math.Abs(in[i].Start-out[i].Start) > 1e-9 || math.Abs(in[i].End-out[i].End) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 127)),
	))

	properties.TestingRun(t)
}

func TestProperty_PipelineOutput(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	grid := Grid{Unit: 0.125}

	run := func(codes []int) *Result {
		res, err := Run(context.Background(), takeFromCodes(codes), Options{Tempo: 120, Grid: grid})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	codes := gen.SliceOfN(12, gen.IntRange(0, 127))

	properties.Property("durations lie on the grid", prop.ForAll(
		func(codes []int) bool {
			res := run(codes)
			for _, r := range res.Rests {
				if !isMultiple(r, grid.Unit) {
					return false
				}
			}
			for _, n := range res.Notes {
				if !isMultiple(n.Duration(), grid.Unit) {
					return false
				}
			}
			return true
		},
		codes,
	))

	properties.Property("no odd run longer than a dotted eighth", prop.ForAll(
		func(codes []int) bool {
			for _, n := range run(codes).Notes {
				if !Legal(grid.Units(n.Duration())) {
					return false
				}
			}
			return true
		},
		codes,
	))

	properties.Property("total length is kept up to rounding", prop.ForAll(
		func(codes []int) bool {
			res := run(codes)
			before := res.Cleaned.TotalDuration() + RestTrackOf(res.Cleaned).Sum()
			recomposed := res.Recompose()
			after := recomposed[len(recomposed)-1].End
			// half a unit of rounding per rest and note, one more unit per odd-run fix
			slack := float64(len(res.Notes))*2*grid.Unit + 1e-9
			return math.Abs(before-after) <= slack
		},
		codes,
	))

	properties.TestingRun(t)
}
