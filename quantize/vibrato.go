package quantize

import (
	"fmt"
	"math"

	. "github.com/JeanRibes/midi2sheet/shared"
)

// VibratoRatio is the fraction of a sixteenth note under which a segment is
// considered a vibrato artifact.
const VibratoRatio = 0.5

const noMerge = -1

// Vibrato absorbs segments shorter than Allowable into a neighbor.
type Vibrato struct {
	Allowable float64
}

func NewVibrato(tempo float64) (Vibrato, error) {
	if !(tempo > 0) || math.IsInf(tempo, 1) {
		return Vibrato{}, &StageError{Stage: VibratoFilter, Index: -1, Err: fmt.Errorf("%w: %v BPM", ErrInvalidTempo, tempo)}
	}
	// a beat lasts 60/tempo, a sixteenth a quarter of that
	return Vibrato{Allowable: (15 / tempo) * VibratoRatio}, nil
}

func (v Vibrato) unstable(s Segment) bool {
	return s.Duration() < v.Allowable
}

// Plan returns, for every segment, the index of the neighbor it is absorbed
// into, or -1 when it is kept. Durations are read from the unmodified input.
func (v Vibrato) Plan(seq Sequence) []int {
	plan := make([]int, len(seq))
	for i := range plan {
		plan[i] = noMerge
	}
	if len(seq) < 2 {
		return plan
	}
	last := len(seq) - 1
	for i, s := range seq {
		if !v.unstable(s) {
			continue
		}
		switch {
		case i == 0:
			plan[i] = i + 1
		case i == last:
			plan[i] = i - 1
		case v.unstable(seq[i+1]):
			plan[i] = i - 1
		case v.unstable(seq[i-1]):
			plan[i] = i + 1
		case seq[i-1].Duration() < seq[i+1].Duration():
			plan[i] = i - 1
		default:
			plan[i] = i + 1
		}
	}
	// two artifacts absorbing into each other: the later one survives
	for i := 0; i < last; i++ {
		if plan[i] == i+1 && plan[i+1] == i {
			plan[i+1] = noMerge
		}
	}
	return plan
}

// anchor follows the plan from i to the segment that finally receives it.
func anchor(plan []int, i int) int {
	t := plan[i]
	for plan[t] != noMerge {
		t = plan[t]
	}
	return t
}

// Filter applies the merge plan to a copy of seq and drops absorbed segments.
func (v Vibrato) Filter(seq Sequence) Sequence {
	plan := v.Plan(seq)
	merged := seq.Clone()
	for i, target := range plan {
		if target == noMerge {
			continue
		}
		a := anchor(plan, i)
		if a > i {
			merged[a].Start = math.Min(merged[a].Start, seq[i].Start)
		} else {
			merged[a].End = math.Max(merged[a].End, seq[i].End)
		}
	}
	out := make(Sequence, 0, len(seq))
	for i, s := range merged {
		if plan[i] == noMerge {
			out = append(out, s)
		}
	}
	return out
}
