// ABOUTME: Simulated host audio pipeline
// ABOUTME: Owns C-layout records and drives sources, filters and sinks per tick
package host

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/Resonate-Protocol/obsaudio/internal/logger"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio/output"
	"github.com/Resonate-Protocol/obsaudio/pkg/filter"
)

const nsPerSecond = 1_000_000_000

// Host plays the part of the foreign audio pipeline. It owns one record and
// its planes, the way libobs owns obs_audio_data, and lends them out per tick.
type Host struct {
	ref    audio.AudioRef
	info   audio.Info
	frames int

	record audio.Record
	planes [][]float32

	source   filter.Source
	chain    *filter.Chain
	sink     output.Output
	realtime bool
	log      *logger.Logger

	clock uint64
	ticks int
}

// Config wires a Host together.
type Config struct {
	Output audio.Handle
	Frames int
	Source filter.Source
	Chain  *filter.Chain
	Sink   output.Output
	Log    *logger.Logger

	// Realtime paces ticks to the output's sample clock instead of running
	// as fast as the sink accepts audio.
	Realtime bool
}

// New allocates the host record for cfg.Output's current shape.
func New(cfg Config) (*Host, error) {
	if cfg.Output == nil || cfg.Source == nil || cfg.Sink == nil {
		return nil, errors.New("host needs an output, a source and a sink")
	}
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("invalid frames per tick: %d", cfg.Frames)
	}
	if cfg.Chain == nil {
		cfg.Chain = filter.NewChain()
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}

	ref := audio.NewAudioRef(cfg.Output)
	info := ref.Info()
	if info.Channels <= 0 || info.Channels > audio.MaxAVPlanes {
		return nil, fmt.Errorf("unsupported channel count %d (1-%d)", info.Channels, audio.MaxAVPlanes)
	}
	if info.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", info.SampleRate)
	}

	h := &Host{
		ref:      ref,
		info:     info,
		frames:   cfg.Frames,
		source:   cfg.Source,
		chain:    cfg.Chain,
		sink:     cfg.Sink,
		realtime: cfg.Realtime,
		log:      cfg.Log.Extend(cfg.Log.With().Str("source", cfg.Source.ID().String())),
	}

	h.planes = make([][]float32, info.Channels)
	for i := range h.planes {
		h.planes[i] = make([]float32, cfg.Frames)
		h.record.Data[i] = &h.planes[i][0]
	}
	h.record.Frames = uint32(cfg.Frames)

	return h, nil
}

// Info returns the shape the host was built for.
func (h *Host) Info() audio.Info { return h.info }

// Ticks returns the number of completed ticks.
func (h *Host) Ticks() int { return h.ticks }

// Tick runs one period: produce, hand off, filter, output.
func (h *Host) Tick() error {
	if h.ref.Info() != h.info {
		return fmt.Errorf("output shape changed from %+v to %+v", h.info, h.ref.Info())
	}

	produced := h.source.Produce(h.info, h.frames, h.clock)
	produced.Handoff(h.receive)

	var out *audio.Data
	audio.Borrow(unsafe.Pointer(&h.record), func(ctx *audio.DataContext) {
		h.chain.FilterAudio(ctx)
		out = filter.Fork(ctx)
	})

	if err := h.sink.Write(out); err != nil {
		return fmt.Errorf("failed to write tick %d: %w", h.ticks, err)
	}

	h.log.Debug().Int("tick", h.ticks).Uint64("ts", out.Timestamp).Msg("tick")

	h.ticks++
	h.clock += uint64(h.period())
	return nil
}

// period is the duration of one tick on the output's clock.
func (h *Host) period() time.Duration {
	return time.Duration(uint64(h.frames) * nsPerSecond / uint64(h.info.SampleRate))
}

// receive copies a handed-off record into host memory, as the host would
// when a source returns audio.
func (h *Host) receive(rec *audio.Record) {
	audio.Borrow(unsafe.Pointer(rec), func(src *audio.DataContext) {
		for i, dst := range h.planes {
			if samples, ok := src.Channel(i); ok {
				copy(dst, samples)
			} else {
				clear(dst)
			}
		}
		h.record.Timestamp = src.Timestamp()
	})
}

// Run opens the sink and ticks until ticks periods have run (0 means no
// limit) or ctx is done. The sink is closed on return.
func (h *Host) Run(ctx context.Context, ticks int) (err error) {
	if err := h.sink.Open(h.info); err != nil {
		return fmt.Errorf("failed to open sink: %w", err)
	}
	defer func() {
		if cerr := h.sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close sink: %w", cerr)
		}
	}()

	h.log.Info().
		Int("rate", h.info.SampleRate).
		Int("channels", h.info.Channels).
		Int("frames", h.frames).
		Int("filters", h.chain.Len()).
		Bool("realtime", h.realtime).
		Msg("host running")

	var pace <-chan time.Time
	if h.realtime && h.period() > 0 {
		ticker := time.NewTicker(h.period())
		defer ticker.Stop()
		pace = ticker.C
	}

	for ticks == 0 || h.ticks < ticks {
		select {
		case <-ctx.Done():
			h.log.Info().Int("ticks", h.ticks).Msg("host stopped")
			return nil
		default:
		}
		if err := h.Tick(); err != nil {
			return err
		}
		if pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
			}
		}
	}

	h.log.Info().Int("ticks", h.ticks).Msg("host finished")
	return nil
}
