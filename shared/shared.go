package shared

import "fmt"

// Stage identifies one step of the quantization pipeline.
type Stage int

const (
	Input Stage = iota
	VibratoFilter
	OverlapResolver
	DegenerateFilter
	TimelineDecomposer
	GridQuantizer
	OddRunCorrection
	TimelineRecomposer
	NotationElementBuilder
)

const NUM_STAGES = 9

var DefaultTempo = float64(120)

const DefaultTimeSignature = "4/4"

// RestMarker is the pitch field of a rest element.
const RestMarker = "Rest"

func StageName(stage Stage) string {
	switch stage {
	case Input:
		return "input"
	case VibratoFilter:
		return "vibrato"
	case OverlapResolver:
		return "overlap"
	case DegenerateFilter:
		return "degenerate"
	case TimelineDecomposer:
		return "decompose"
	case GridQuantizer:
		return "quantize"
	case OddRunCorrection:
		return "odd-runs"
	case TimelineRecomposer:
		return "recompose"
	case NotationElementBuilder:
		return "elements"
	default:
		return fmt.Sprintf("stage %d", int(stage))
	}
}

func (s Stage) String() string {
	return StageName(s)
}
