// Package notation writes quantized elements out as a score.
package notation

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/JeanRibes/midi2sheet/shared"

	"github.com/JeanRibes/midi2sheet/music"
	"github.com/JeanRibes/midi2sheet/quantize"
	"github.com/goccy/go-yaml"
)

type Format string

const (
	FormatMusicXML Format = "musicxml"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatMusicXML, "xml", "":
		return FormatMusicXML, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// FormatFor guesses the format from the extension of path, MusicXML when it
// is unknown.
func FormatFor(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatMusicXML
	}
	return f
}

type Score struct {
	Title string
	Key   music.Key
	// Tempo in BPM, written as a metronome mark.
	Tempo         float64
	TimeSignature string
	Format        Format
}

// ParseTimeSignature reads "beats/beat-type". The beat type must be a power of
// two up to 16 so that a measure is a whole number of sixteenths.
func ParseTimeSignature(s string) (beats, beatType int, err error) {
	if s == "" {
		s = DefaultTimeSignature
	}
	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	}
	if beats, err = strconv.Atoi(strings.TrimSpace(num)); err != nil || beats < 1 {
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	}
	beatType, err = strconv.Atoi(strings.TrimSpace(denom))
	switch {
	case err != nil:
		return 0, 0, fmt.Errorf("invalid time signature %q", s)
	case beatType != 1 && beatType != 2 && beatType != 4 && beatType != 8 && beatType != 16:
		return 0, 0, fmt.Errorf("invalid time signature %q: beat type must be 1, 2, 4, 8 or 16", s)
	}
	return beats, beatType, nil
}

// sheet is the YAML and JSON form of a score.
type sheet struct {
	Title         string             `yaml:"title,omitempty" json:"title,omitempty"`
	Key           string             `yaml:"key" json:"key"`
	Fifths        int                `yaml:"fifths" json:"fifths"`
	Tempo         float64            `yaml:"tempo" json:"tempo"`
	TimeSignature string             `yaml:"time_signature" json:"time_signature"`
	Elements      []quantize.Element `yaml:"elements" json:"elements"`
}

func Render(w io.Writer, elements []quantize.Element, score Score) error {
	if score.TimeSignature == "" {
		score.TimeSignature = DefaultTimeSignature
	}
	switch score.Format {
	case FormatMusicXML, "":
		return writeMusicXML(w, elements, score)
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("unsupported output format: %s", score.Format)
	}

	if _, _, err := ParseTimeSignature(score.TimeSignature); err != nil {
		return err
	}
	s := sheet{
		Title:         score.Title,
		Key:           score.Key.String(),
		Fifths:        score.Key.Fifths,
		Tempo:         score.Tempo,
		TimeSignature: score.TimeSignature,
		Elements:      elements,
	}
	if s.Elements == nil {
		s.Elements = []quantize.Element{}
	}
	if score.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
