package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	. "github.com/JeanRibes/midi2sheet/shared"

	"github.com/JeanRibes/midi2sheet/music"
	"github.com/JeanRibes/midi2sheet/notation"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const DEFAULT_CONFIG = "midi2sheet.yaml"

type Config struct {
	// Tempo in BPM, 0 to use the file's
	Tempo         float64 `yaml:"tempo"`
	TimeSignature string  `yaml:"time_signature"`
	Title         string  `yaml:"title"`
	Track         int     `yaml:"track"`
	Monophony     string  `yaml:"monophony"`
	Format        string  `yaml:"format"`
	Output        string  `yaml:"output"`
	MidiOutput    string  `yaml:"midi_output"`
	Snapshot      string  `yaml:"snapshot"`
	Port          string  `yaml:"port"`
}

func defaultConfig() Config {
	return Config{
		TimeSignature: DefaultTimeSignature,
		Track:         -1,
		Monophony:     music.Cut.String(),
	}
}

var config = defaultConfig()

// LoadConfig reads filename over the defaults. A missing file is only an
// error when it was asked for explicitly.
func LoadConfig(filename string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", filename, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cfg *Config, flags *pflag.FlagSet) (err error) {
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "tempo":
			cfg.Tempo, err = flags.GetFloat64(f.Name)
		case "track":
			cfg.Track, err = flags.GetInt(f.Name)
		case "time-signature":
			cfg.TimeSignature = f.Value.String()
		case "title":
			cfg.Title = f.Value.String()
		case "monophony":
			cfg.Monophony = f.Value.String()
		case "format":
			cfg.Format = f.Value.String()
		case "output":
			cfg.Output = f.Value.String()
		case "midi-output":
			cfg.MidiOutput = f.Value.String()
		case "snapshot":
			cfg.Snapshot = f.Value.String()
		case "port":
			cfg.Port = f.Value.String()
		}
	})
	return err
}

func (c Config) Validate() error {
	if c.Tempo < 0 {
		return fmt.Errorf("invalid tempo %g", c.Tempo)
	}
	if _, err := music.ParseMonophony(c.Monophony); err != nil {
		return err
	}
	if _, _, err := notation.ParseTimeSignature(c.TimeSignature); err != nil {
		return err
	}
	if c.Format != "" {
		if _, err := notation.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	return nil
}
