package music

import (
	"context"
	"time"

	"github.com/JeanRibes/midi2sheet/quantize"
	charmlog "github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Play sends the take to send with its recorded timing. It returns early, with
// the sounding note released, when ctx is cancelled.
func Play(ctx context.Context, seq quantize.Sequence, send func(midi.Message) error) error {
	logger := charmlog.FromContext(ctx)
	at := 0.0
	for _, s := range seq {
		if !sleep(ctx, toDuration(s.Start-at)) {
			logger.Debug("play: cancelled")
			return nil
		}
		logger.Debug("note  on", "key", midi.Note(s.Pitch), "at", s.Start, "duration", s.Duration())
		if err := send(midi.NoteOn(0, s.Pitch, VELOCITY)); err != nil {
			return err
		}
		played := sleep(ctx, toDuration(s.Duration()))
		logger.Debug("note off", "key", midi.Note(s.Pitch), "at", s.End)
		if err := send(midi.NoteOff(0, s.Pitch)); err != nil {
			return err
		}
		if !played {
			logger.Debug("play: cancelled")
			return nil
		}
		at = s.End
	}
	return nil
}
