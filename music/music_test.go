package music

import (
	"path/filepath"
	"testing"

	"github.com/JeanRibes/midi2sheet/quantize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSegmentsInDelta(t *testing.T, expected, actual quantize.Sequence) {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return
	}
	for i := range expected {
		assert.InDelta(t, expected[i].Start, actual[i].Start, 1e-3, "start of %d", i)
		assert.InDelta(t, expected[i].End, actual[i].End, 1e-3, "end of %d", i)
		assert.Equal(t, expected[i].Pitch, actual[i].Pitch, "pitch of %d", i)
	}
}

func TestWriteThenReadTake(t *testing.T) {
	seq := quantize.Sequence{{0.5, 1, 60}, {1, 1.5, 62}, {2, 2.25, 64}}
	path := filepath.Join(t.TempDir(), "take.mid")
	require.NoError(t, WriteSegments(seq, 90, path))

	take, err := ReadTake(path, ReadOptions{Track: -1})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(0, take.Track)
	assert.InDelta(90, take.Tempo, 1e-3)
	assertSegmentsInDelta(t, seq, take.Segments)
}

func TestReadTakeMissingTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.mid")
	require.NoError(t, WriteSegments(quantize.Sequence{{0, 1, 60}}, 120, path))

	_, err := ReadTake(path, ReadOptions{Track: 3})
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nothing.mid"))
	assert.Error(t, err)
}

func TestReduceCut(t *testing.T) {
	events := []noteEvent{
		{at: 0, key: 60, on: true},
		{at: 1, key: 62, on: true},
		{at: 1.5, key: 60},
		{at: 2, key: 62},
	}
	assert.Equal(t, quantize.Sequence{{0, 1, 60}, {1, 2, 62}}, Cut.reduce(events))
}

func TestReduceIgnore(t *testing.T) {
	events := []noteEvent{
		{at: 0, key: 60, on: true},
		{at: 1, key: 62, on: true},
		{at: 1.5, key: 60},
		{at: 2, key: 62},
	}
	assert.Equal(t, quantize.Sequence{{0, 1.5, 60}}, Ignore.reduce(events))
}

func TestReduceDropsZeroLength(t *testing.T) {
	events := []noteEvent{
		{at: 0, key: 60, on: true},
		{at: 0, key: 60},
		{at: 1, key: 64, on: true},
		{at: 2, key: 64},
	}
	assert.Equal(t, quantize.Sequence{{1, 2, 64}}, Cut.reduce(events))
}

func TestParseMonophony(t *testing.T) {
	assert := assert.New(t)

	m, err := ParseMonophony("")
	assert.NoError(err)
	assert.Equal(Cut, m)

	m, err = ParseMonophony("IGNORE")
	assert.NoError(err)
	assert.Equal(Ignore, m)
	assert.Equal("ignore", m.String())

	_, err = ParseMonophony("merge")
	assert.Error(err)
}
