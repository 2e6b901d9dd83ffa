package main

import (
	"github.com/JeanRibes/midi2sheet/music"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	referenceCmd.Flags().StringP("output", "o", "", "reference MIDI file (default: <take>.reference.mid)")
	referenceCmd.Flags().String("midi-output", "", "also write the pipeline's quantized take as MIDI")
	rootCmd.AddCommand(referenceCmd)
}

var referenceCmd = &cobra.Command{
	Use:   "reference <take.mid>",
	Short: "Quantize a take with gomidi's quantizer, for comparison",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := charmlog.FromContext(ctx)

		p, err := process(ctx, args[0])
		if err != nil {
			return err
		}
		ref, err := music.ReferenceQuantize(ctx, p.Take.Segments, p.Tempo)
		if err != nil {
			return err
		}
		logger.Info("compared", "pipeline", len(p.Result.Notes), "reference", len(ref))

		output := config.Output
		if output == "" {
			output = baseName(args[0]) + ".reference.mid"
		}
		if err := music.WriteSegments(ref, p.Tempo, output); err != nil {
			return err
		}
		logger.Info("reference written", "file", output)

		if config.MidiOutput != "" {
			if err := music.WriteSegments(p.Result.Recompose(), p.Tempo, config.MidiOutput); err != nil {
				return err
			}
			logger.Info("quantized take written", "file", config.MidiOutput)
		}
		return nil
	},
}
