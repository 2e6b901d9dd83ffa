package main

import (
	"fmt"

	"github.com/JeanRibes/midi2sheet/music"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var playRaw bool

func init() {
	playCmd.Flags().String("port", "", "MIDI output port name (default: a virtual port)")
	playCmd.Flags().BoolVar(&playRaw, "raw", false, "play the take as recorded")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <take.mid>",
	Short: "Listen to the quantized take on a MIDI output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := charmlog.FromContext(ctx)

		p, err := process(ctx, args[0])
		if err != nil {
			return err
		}
		seq := p.Result.Recompose()
		if playRaw {
			seq = p.Take.Segments
		}

		defer midi.CloseDriver()
		var out drivers.Out
		if config.Port != "" {
			if out, err = midi.FindOutPort(config.Port); err != nil {
				logger.Warn("can't find output, opening a virtual one", "port", config.Port)
				out = nil
			}
		}
		if out == nil {
			drv, ok := drivers.Get().(*rtmididrv.Driver)
			if !ok {
				return fmt.Errorf("no MIDI output %q", config.Port)
			}
			if out, err = drv.OpenVirtualOut("midi2sheet"); err != nil {
				return err
			}
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return err
		}
		logger.Info("playing", "output", out.String(), "notes", len(seq), "raw", playRaw)
		return music.Play(ctx, seq, send)
	},
}
