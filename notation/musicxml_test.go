package notation

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/JeanRibes/midi2sheet/music"
	"github.com/JeanRibes/midi2sheet/quantize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var take = []quantize.Element{
	{Name: "r0", Pitch: "Rest", Duration: 1},
	{Name: "n0", Pitch: "C4", Duration: 1, Key: 60},
	{Name: "n1", Pitch: "C4", Duration: 1, Key: 60},
	{Name: "r2", Pitch: "Rest", Duration: 0.5},
	{Name: "n2", Pitch: "D4", Duration: 1, Key: 62},
}

func TestSplit(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{16}, split(16))
	assert.Equal([]int{12, 2}, split(14))
	assert.Equal([]int{4, 1}, split(5))
	assert.Empty(split(0))
}

func TestLayoutTiesAcrossBarline(t *testing.T) {
	measures := layout(take, 16)

	assert := assert.New(t)
	require.Len(t, measures, 2)
	assert.Equal([]piece{
		{rest: true, sixteenths: 4},
		{key: 60, sixteenths: 4},
		{key: 60, sixteenths: 4},
		{rest: true, sixteenths: 2},
		{key: 62, sixteenths: 2, tieStart: true},
	}, measures[0])
	assert.Equal([]piece{
		{key: 62, sixteenths: 2, tieStop: true},
		{rest: true, sixteenths: 12},
		{rest: true, sixteenths: 2},
	}, measures[1])
}

func TestLayoutLongNote(t *testing.T) {
	measures := layout([]quantize.Element{{Name: "n0", Pitch: "C4", Duration: 5, Key: 60}}, 12)

	assert := assert.New(t)
	require.Len(t, measures, 2)
	assert.Equal([]piece{{key: 60, sixteenths: 12, tieStart: true}}, measures[0])
	assert.Equal([]piece{
		{key: 60, sixteenths: 8, tieStop: true},
		{rest: true, sixteenths: 4},
	}, measures[1])
}

func TestLayoutUnnotatableLength(t *testing.T) {
	measures := layout([]quantize.Element{{Name: "n0", Pitch: "C4", Duration: 1.25, Key: 60}}, 16)

	require.Len(t, measures, 1)
	assert.Equal(t, []piece{
		{key: 60, sixteenths: 4, tieStart: true},
		{key: 60, sixteenths: 1, tieStop: true},
		{rest: true, sixteenths: 8},
		{rest: true, sixteenths: 3},
	}, measures[0])
}

func TestSpell(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(&pitch{Step: "C", Alter: 1, Octave: 4}, spell(61, 2))
	assert.Equal(&pitch{Step: "D", Alter: -1, Octave: 4}, spell(61, -3))
	assert.Equal(&pitch{Step: "B", Alter: -1, Octave: 4}, spell(70, -1))
	assert.Equal(&pitch{Step: "C", Octave: -1}, spell(0, 0))
}

func TestClefFor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(clef{Sign: "G", Line: 2}, clefFor(take))
	assert.Equal(clef{Sign: "F", Line: 4}, clefFor([]quantize.Element{
		{Name: "n0", Pitch: "C3", Duration: 1, Key: 48},
		{Name: "n1", Pitch: "E3", Duration: 1, Key: 52},
		{Name: "n2", Pitch: "C5", Duration: 1, Key: 72},
	}))
	assert.Equal(clef{Sign: "G", Line: 2}, clefFor(nil))
}

func TestRenderMusicXML(t *testing.T) {
	var out bytes.Buffer
	err := Render(&out, take, Score{
		Title:         "Take",
		Key:           music.NewKey(music.Do, music.Major),
		Tempo:         120,
		TimeSignature: "4/4",
		Format:        FormatMusicXML,
	})
	require.NoError(t, err)

	doc := out.String()
	assert := assert.New(t)
	assert.True(strings.HasPrefix(doc, xml.Header))
	assert.Contains(doc, "<!DOCTYPE score-partwise")
	assert.Contains(doc, `<score-partwise version="3.1">`)
	assert.Contains(doc, "<work-title>Take</work-title>")
	assert.Contains(doc, "<fifths>0</fifths>")
	assert.Contains(doc, "<mode>major</mode>")
	assert.Contains(doc, `<sound tempo="120"></sound>`)
	assert.Contains(doc, `<tie type="start"></tie>`)
	assert.Contains(doc, `<tied type="stop"></tied>`)
	assert.Contains(doc, "<bar-style>light-heavy</bar-style>")
	assert.Equal(2, strings.Count(doc, "<measure "))

	var sp scorePartwise
	require.NoError(t, xml.Unmarshal(out.Bytes(), &sp))
	require.Len(t, sp.Parts, 1)
	require.Len(t, sp.Parts[0].Measures, 2)
	first := sp.Parts[0].Measures[0]
	assert.Len(first.Notes, 5)
	assert.Equal(4, first.Attributes.Divisions)
	assert.Equal("D", first.Notes[4].Pitch.Step)
	assert.Equal("eighth", first.Notes[4].Type)
}

func TestRenderEmptyMusicXML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Render(&out, nil, Score{TimeSignature: "3/4"}))

	doc := out.String()
	assert := assert.New(t)
	assert.NotContains(doc, "<work>")
	assert.Contains(doc, `<rest measure="yes"></rest>`)
	assert.Contains(doc, "<type>half</type>")
	assert.Contains(doc, "<dot></dot>")
	assert.Equal(1, strings.Count(doc, "<measure "))
}

func TestRenderRejectsBadTimeSignature(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Render(&out, take, Score{TimeSignature: "3/5"}))
}
