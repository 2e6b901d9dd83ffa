package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/JeanRibes/midi2sheet/music"
	"github.com/JeanRibes/midi2sheet/quantize"
	charmlog "github.com/charmbracelet/log"
)

// processed holds everything known about a take once quantized.
type processed struct {
	Take     *music.Take
	Tempo    float64
	Downbeat float64
	Key      music.Key
	Result   *quantize.Result
	State    *music.State
}

func process(ctx context.Context, path string) (*processed, error) {
	logger := charmlog.FromContext(ctx)

	monophony, err := music.ParseMonophony(config.Monophony)
	if err != nil {
		return nil, err
	}
	take, err := music.ReadTake(path, music.ReadOptions{Track: config.Track, Monophony: monophony})
	if err != nil {
		return nil, err
	}
	p := &processed{Take: take, Tempo: take.Tempo}
	if config.Tempo > 0 {
		p.Tempo = config.Tempo
	}
	logger.Info("read take", "file", path, "track", take.Track, "notes", len(take.Segments), "tempo", p.Tempo)

	if p.Downbeat, err = music.EstimateDownbeat(take.Segments, p.Tempo); err != nil {
		return nil, err
	}
	grid, err := quantize.GridFromDownbeat(p.Downbeat)
	if err != nil {
		return nil, err
	}
	logger.Debug("grid", "downbeat", p.Downbeat, "unit", grid.Unit)

	p.State = music.NewState(p.Tempo)
	p.Result, err = quantize.Run(ctx, take.Segments, quantize.Options{
		Tempo:    p.Tempo,
		Grid:     grid,
		Observer: p.State.Record,
	})
	if err != nil {
		return nil, err
	}
	p.Key = music.EstimateKey(p.Result.Cleaned)
	logger.Info("quantized", "notes", len(p.Result.Notes), "elements", len(p.Result.Elements), "key", p.Key)
	return p, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
