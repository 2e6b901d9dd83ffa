package quantize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVibratoAllowableIsHalfASixteenth(t *testing.T) {
	v, err := NewVibrato(120)
	require.NoError(t, err)
	assert.InDelta(t, 0.0625, v.Allowable, 1e-12)
}

func TestVibratoRejectsNonPositiveTempo(t *testing.T) {
	for _, tempo := range []float64{0, -60} {
		_, err := NewVibrato(tempo)
		assert.ErrorIs(t, err, ErrInvalidTempo)
	}
}

func TestVibratoSingletonPassesThrough(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	in := Sequence{{0.0, 0.04, 60}}
	assert.Equal(t, in, v.Filter(in))
}

func TestVibratoFirstIsAbsorbedForward(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	out := v.Filter(Sequence{{0, 0.01, 60}, {0.01, 1, 62}})
	assert.Equal(t, Sequence{{0, 1, 62}}, out)
}

func TestVibratoLastIsAbsorbedBackward(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	out := v.Filter(Sequence{{0, 1, 60}, {1, 1.02, 61}})
	assert.Equal(t, Sequence{{0, 1.02, 60}}, out)
}

func TestVibratoUnstableFollowerExtendsPrevious(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	in := Sequence{{0, 1, 60}, {1, 1.01, 61}, {1.01, 1.02, 62}, {1.02, 2, 63}}

	assert := assert.New(t)
	assert.Equal([]int{-1, 0, 3, -1}, v.Plan(in))
	assert.Equal(Sequence{{0, 1.01, 60}, {1.01, 2, 63}}, v.Filter(in))
}

func TestVibratoStableNeighborsPickShorter(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	assert := assert.New(t)

	out := v.Filter(Sequence{{0, 0.5, 60}, {0.5, 0.52, 61}, {0.52, 2, 62}})
	assert.Equal(Sequence{{0, 0.52, 60}, {0.52, 2, 62}}, out)

	out = v.Filter(Sequence{{0, 2, 60}, {2, 2.02, 61}, {2.02, 2.5, 62}})
	assert.Equal(Sequence{{0, 2, 60}, {2, 2.5, 62}}, out)
}

func TestVibratoEqualNeighborsAbsorbForward(t *testing.T) {
	v := Vibrato{Allowable: 0.0625}
	out := v.Filter(Sequence{{0, 1, 60}, {1, 1.03125, 61}, {1.03125, 2.03125, 62}})
	assert.Equal(t, Sequence{{0, 1, 60}, {1, 2.03125, 62}}, out)
}

func TestVibratoMutualPairKeepsLater(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	in := Sequence{{0, 0.01, 60}, {0.01, 0.02, 61}}

	assert := assert.New(t)
	assert.Equal([]int{1, -1}, v.Plan(in))
	assert.Equal(Sequence{{0, 0.02, 61}}, v.Filter(in))
}

func TestVibratoCollapsedLeadingPairMayStayShort(t *testing.T) {
	v, err := NewVibrato(120)
	require.NoError(t, err)
	in := Sequence{{0, 0.02, 60}, {0.02, 0.04, 61}, {0.04, 0.06, 62}, {0.06, 1, 63}}

	assert := assert.New(t)
	assert.Equal([]int{1, -1, 3, -1}, v.Plan(in))
	out := v.Filter(in)
	assert.Equal(Sequence{{0, 0.04, 61}, {0.04, 1, 63}}, out)
	assert.Less(out[0].Duration(), v.Allowable)
}

func TestVibratoChainReachesStableAnchor(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	in := Sequence{{0, 1, 60}, {1, 1.01, 61}, {1.01, 1.02, 62}, {1.02, 1.03, 63}, {1.03, 2, 64}}

	assert := assert.New(t)
	assert.Equal([]int{-1, 0, 1, 4, -1}, v.Plan(in))
	assert.Equal(Sequence{{0, 1.02, 60}, {1.02, 2, 64}}, v.Filter(in))
}

func TestVibratoDoesNotModifyInput(t *testing.T) {
	v := Vibrato{Allowable: 0.05}
	in := Sequence{{0, 0.01, 60}, {0.01, 1, 62}, {1, 1.02, 64}}
	before := in.Clone()
	v.Filter(in)
	assert.Equal(t, before, in)
}
