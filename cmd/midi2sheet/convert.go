package main

import (
	"fmt"
	"io"
	"os"

	"github.com/JeanRibes/midi2sheet/music"
	"github.com/JeanRibes/midi2sheet/notation"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	convertCmd.Flags().String("format", "", "musicxml, yaml or json (default: from --output, else musicxml)")
	convertCmd.Flags().StringP("output", "o", "", "score file (default: stdout)")
	convertCmd.Flags().String("midi-output", "", "also write the quantized take as MIDI")
	convertCmd.Flags().String("snapshot", "", "also write every pipeline stage as one MIDI track each")
	convertCmd.Flags().String("title", "", "score title (default: the input file name)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <take.mid>",
	Short: "Quantize a take and write its score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := charmlog.FromContext(ctx)

		p, err := process(ctx, args[0])
		if err != nil {
			return err
		}

		format := notation.FormatFor(config.Output)
		if config.Format != "" {
			if format, err = notation.ParseFormat(config.Format); err != nil {
				return err
			}
		}
		title := config.Title
		if title == "" {
			title = baseName(args[0])
		}

		var w io.Writer = cmd.OutOrStdout()
		if config.Output != "" {
			f, err := os.Create(config.Output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}
		err = notation.Render(w, p.Result.Elements, notation.Score{
			Title:         title,
			Key:           p.Key,
			Tempo:         p.Tempo,
			TimeSignature: config.TimeSignature,
			Format:        format,
		})
		if err != nil {
			return err
		}
		if config.Output != "" {
			logger.Info("score written", "file", config.Output, "format", format)
		}

		if config.MidiOutput != "" {
			if err := music.WriteSegments(p.Result.Recompose(), p.Tempo, config.MidiOutput); err != nil {
				return err
			}
			logger.Info("quantized take written", "file", config.MidiOutput)
		}
		if config.Snapshot != "" {
			if err := p.State.SaveToFile(config.Snapshot); err != nil {
				return err
			}
			logger.Info("stages written", "file", config.Snapshot)
		}
		return nil
	},
}
