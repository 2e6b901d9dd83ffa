package notation

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/JeanRibes/midi2sheet/quantize"
)

// one division per sixteenth
const DIVISIONS = 4

const partwiseDoctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 3.1 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`

type scorePartwise struct {
	XMLName  xml.Name `xml:"score-partwise"`
	Version  string   `xml:"version,attr"`
	Work     *work    `xml:"work,omitempty"`
	PartList partList `xml:"part-list"`
	Parts    []part   `xml:"part"`
}

type work struct {
	Title string `xml:"work-title"`
}

type partList struct {
	ScoreParts []scorePart `xml:"score-part"`
}

type scorePart struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"part-name"`
}

type part struct {
	ID       string    `xml:"id,attr"`
	Measures []measure `xml:"measure"`
}

type measure struct {
	Number     int         `xml:"number,attr"`
	Attributes *attributes `xml:"attributes,omitempty"`
	Direction  *direction  `xml:"direction,omitempty"`
	Notes      []note      `xml:"note"`
	Barline    *barline    `xml:"barline,omitempty"`
}

type attributes struct {
	Divisions int     `xml:"divisions"`
	Key       keySig  `xml:"key"`
	Time      timeSig `xml:"time"`
	Clef      clef    `xml:"clef"`
}

type keySig struct {
	Fifths int    `xml:"fifths"`
	Mode   string `xml:"mode"`
}

type timeSig struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type clef struct {
	Sign string `xml:"sign"`
	Line int    `xml:"line"`
}

type direction struct {
	Placement string        `xml:"placement,attr"`
	Type      directionType `xml:"direction-type"`
	Sound     sound         `xml:"sound"`
}

type directionType struct {
	Metronome metronome `xml:"metronome"`
}

type metronome struct {
	BeatUnit  string `xml:"beat-unit"`
	PerMinute string `xml:"per-minute"`
}

type sound struct {
	Tempo string `xml:"tempo,attr"`
}

type note struct {
	Rest      *rest      `xml:"rest,omitempty"`
	Pitch     *pitch     `xml:"pitch,omitempty"`
	Duration  int        `xml:"duration"`
	Ties      []tie      `xml:"tie"`
	Voice     int        `xml:"voice"`
	Type      string     `xml:"type"`
	Dot       *struct{}  `xml:"dot,omitempty"`
	Notations *notations `xml:"notations,omitempty"`
}

type rest struct {
	Measure string `xml:"measure,attr,omitempty"`
}

type pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

type tie struct {
	Type string `xml:"type,attr"`
}

type notations struct {
	Tied []tie `xml:"tied"`
}

type barline struct {
	Location string `xml:"location,attr"`
	BarStyle string `xml:"bar-style"`
}

// piece is what fits on a single notehead: part of an element cut at a
// barline or split into notatable lengths.
type piece struct {
	rest       bool
	key        uint8
	sixteenths int
	tieStart   bool
	tieStop    bool
}

// lengths with a single (possibly dotted) notehead, in sixteenths
var notatable = []int{16, 12, 8, 6, 4, 3, 2, 1}

var noteTypes = map[int]struct {
	name string
	dot  bool
}{
	16: {"whole", false},
	12: {"half", true},
	8:  {"half", false},
	6:  {"quarter", true},
	4:  {"quarter", false},
	3:  {"eighth", true},
	2:  {"eighth", false},
	1:  {"16th", false},
}

func split(sixteenths int) []int {
	var out []int
	for _, v := range notatable {
		for sixteenths >= v {
			out = append(out, v)
			sixteenths -= v
		}
	}
	return out
}

// layout cuts elements into measures of measureLen sixteenths. Notes
// crossing a barline or longer than one notehead are tied, the last measure
// is filled with rests.
func layout(elements []quantize.Element, measureLen int) [][]piece {
	measures := [][]piece{}
	current := []piece{}
	pos := 0
	for _, el := range elements {
		remaining := int(math.Round(el.Duration * 4))
		first := true
		for remaining > 0 {
			chunk := min(remaining, measureLen-pos)
			for _, v := range split(chunk) {
				remaining -= v
				p := piece{rest: el.IsRest(), key: el.Key, sixteenths: v}
				if !p.rest {
					p.tieStop = !first
					p.tieStart = remaining > 0
				}
				first = false
				current = append(current, p)
				pos += v
			}
			if pos == measureLen {
				measures = append(measures, current)
				current = []piece{}
				pos = 0
			}
		}
	}
	if pos > 0 || len(measures) == 0 {
		for _, v := range split(measureLen - pos) {
			current = append(current, piece{rest: true, sixteenths: v})
		}
		measures = append(measures, current)
	}
	return measures
}

var (
	sharpSteps = [12]string{"C", "C", "D", "D", "E", "F", "F", "G", "G", "A", "A", "B"}
	sharpAlter = [12]int{0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0}
	flatSteps  = [12]string{"C", "D", "D", "E", "E", "F", "G", "G", "A", "A", "B", "B"}
	flatAlter  = [12]int{0, -1, 0, -1, 0, 0, -1, 0, -1, 0, -1, 0}
)

// spell writes a MIDI key with sharps in sharp keys and C major, flats
// otherwise.
func spell(key uint8, fifths int) *pitch {
	pc := key % 12
	p := &pitch{Octave: int(key)/12 - 1}
	if fifths >= 0 {
		p.Step, p.Alter = sharpSteps[pc], sharpAlter[pc]
	} else {
		p.Step, p.Alter = flatSteps[pc], flatAlter[pc]
	}
	return p
}

func clefFor(elements []quantize.Element) clef {
	var keys []int
	for _, el := range elements {
		if !el.IsRest() {
			keys = append(keys, int(el.Key))
		}
	}
	if len(keys) == 0 {
		return clef{Sign: "G", Line: 2}
	}
	sort.Ints(keys)
	if keys[len(keys)/2] < 60 {
		return clef{Sign: "F", Line: 4}
	}
	return clef{Sign: "G", Line: 2}
}

func (p piece) note(fifths int, wholeMeasure bool) note {
	n := note{Duration: p.sixteenths * DIVISIONS / 4, Voice: 1}
	t := noteTypes[p.sixteenths]
	n.Type = t.name
	if t.dot {
		n.Dot = &struct{}{}
	}
	if p.rest {
		n.Rest = &rest{}
		if wholeMeasure {
			n.Rest.Measure = "yes"
		}
		return n
	}
	n.Pitch = spell(p.key, fifths)
	var tied []tie
	if p.tieStop {
		n.Ties = append(n.Ties, tie{Type: "stop"})
		tied = append(tied, tie{Type: "stop"})
	}
	if p.tieStart {
		n.Ties = append(n.Ties, tie{Type: "start"})
		tied = append(tied, tie{Type: "start"})
	}
	if len(tied) > 0 {
		n.Notations = &notations{Tied: tied}
	}
	return n
}

func buildScore(elements []quantize.Element, score Score, beats, beatType int) scorePartwise {
	key := score.Key
	sp := scorePartwise{
		Version:  "3.1",
		PartList: partList{ScoreParts: []scorePart{{ID: "P1", Name: "Voice"}}},
	}
	if score.Title != "" {
		sp.Work = &work{Title: score.Title}
	}

	measureLen := beats * 16 / beatType
	p := part{ID: "P1"}
	for i, pieces := range layout(elements, measureLen) {
		m := measure{Number: i + 1}
		if i == 0 {
			m.Attributes = &attributes{
				Divisions: DIVISIONS,
				Key:       keySig{Fifths: key.Fifths, Mode: key.Mode.String()},
				Time:      timeSig{Beats: beats, BeatType: beatType},
				Clef:      clefFor(elements),
			}
			if score.Tempo > 0 {
				m.Direction = &direction{
					Placement: "above",
					Type: directionType{Metronome: metronome{
						BeatUnit:  "quarter",
						PerMinute: strconv.FormatFloat(math.Round(score.Tempo), 'f', 0, 64),
					}},
					Sound: sound{Tempo: strconv.FormatFloat(score.Tempo, 'f', -1, 64)},
				}
			}
		}
		for _, pc := range pieces {
			m.Notes = append(m.Notes, pc.note(key.Fifths, len(pieces) == 1 && pc.rest))
		}
		p.Measures = append(p.Measures, m)
	}
	p.Measures[len(p.Measures)-1].Barline = &barline{Location: "right", BarStyle: "light-heavy"}
	sp.Parts = []part{p}
	return sp
}

func writeMusicXML(w io.Writer, elements []quantize.Element, score Score) error {
	beats, beatType, err := ParseTimeSignature(score.TimeSignature)
	if err != nil {
		return err
	}
	sp := buildScore(elements, score, beats, beatType)

	if _, err := io.WriteString(w, xml.Header+partwiseDoctype+"\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(sp); err != nil {
		return fmt.Errorf("encoding musicxml: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}
