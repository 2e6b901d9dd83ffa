package main

import (
	"context"

	. "github.com/JeanRibes/midi2sheet/shared"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "midi2sheet",
	Short: "Quantize a performed MIDI line into sheet music",
	Long: `midi2sheet reads a monophonic take from a MIDI file, cleans up the
performance noise, snaps it onto a sixteenth-note grid and writes the score.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := charmlog.FromContext(cmd.Context())
		if debug {
			logger.SetLevel(charmlog.DebugLevel)
		}
		cfg, err := LoadConfig(configFile, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if err := applyFlags(&cfg, cmd.Flags()); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		config = cfg
		logger.Debug("config", "tempo", config.Tempo, "time_signature", config.TimeSignature, "track", config.Track, "monophony", config.Monophony)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", DEFAULT_CONFIG, "YAML configuration file")
	flags.BoolVar(&debug, "debug", false, "log every pipeline stage")
	flags.Float64("tempo", 0, "tempo in BPM (default: the file's, else 120)")
	flags.String("time-signature", DefaultTimeSignature, "time signature of the score")
	flags.Int("track", -1, "track to read (default: first track with notes)")
	flags.String("monophony", "cut", "what to do with chords: cut or ignore")
}

func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
