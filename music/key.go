package music

import (
	"fmt"
	"math"

	"github.com/JeanRibes/midi2sheet/quantize"
)

type Note int

const (
	Do  Note = 0
	Ré  Note = 2
	Mi  Note = 4
	Fa  Note = 5
	Sol Note = 7
	La  Note = 9
	Si  Note = 11
)

type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// Key is a key signature: Fifths counts sharps (positive) or flats
// (negative).
type Key struct {
	Fifths int
	Mode   Mode
	Tonic  Note
}

var tonicNames = [12]string{"C", "C#", "D", "E-", "E", "F", "F#", "G", "A-", "A", "B-", "B"}

// fifths of the major key built on each pitch class
var majorFifths = [12]int{0, -5, 2, -3, 4, -1, 6, 1, -4, 3, -2, 5}

func NewKey(tonic Note, mode Mode) Key {
	tonic = Note((int(tonic)%12 + 12) % 12)
	relative := tonic
	if mode == Minor {
		relative = (tonic + 3) % 12
	}
	return Key{Fifths: majorFifths[relative], Mode: mode, Tonic: tonic}
}

func (k Key) String() string {
	name := tonicNames[k.Tonic]
	if k.Mode == Minor {
		return fmt.Sprintf("%s minor", name)
	}
	return fmt.Sprintf("%s major", name)
}

// Krumhansl-Kessler key profiles, indexed from the tonic.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

func correlate(hist [12]float64, profile [12]float64, tonic int) float64 {
	var mh, mp float64
	for i := 0; i < 12; i++ {
		mh += hist[i]
		mp += profile[i]
	}
	mh /= 12
	mp /= 12
	var num, dh, dp float64
	for i := 0; i < 12; i++ {
		h := hist[(tonic+i)%12] - mh
		p := profile[i] - mp
		num += h * p
		dh += h * h
		dp += p * p
	}
	if dh == 0 || dp == 0 {
		return 0
	}
	return num / math.Sqrt(dh*dp)
}

// EstimateKey correlates the duration-weighted pitch classes of the take
// with the major and minor profiles of every tonic.
func EstimateKey(seq quantize.Sequence) Key {
	var hist [12]float64
	for _, s := range seq {
		hist[s.Pitch%12] += s.Duration()
	}
	best := NewKey(Do, Major)
	bestScore := math.Inf(-1)
	for tonic := 0; tonic < 12; tonic++ {
		for _, mode := range []Mode{Major, Minor} {
			profile := majorProfile
			if mode == Minor {
				profile = minorProfile
			}
			if score := correlate(hist, profile, tonic); score > bestScore {
				bestScore = score
				best = NewKey(Note(tonic), mode)
			}
		}
	}
	return best
}
