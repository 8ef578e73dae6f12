// ABOUTME: WAV capture output
// ABOUTME: Writes planar buffers to a PCM WAV file through go-audio/wav
package output

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/obsaudio/internal/logger"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio/pcm"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAV writes everything it receives to w as integer PCM.
type WAV struct {
	w        io.WriteSeeker
	bitDepth int
	enc      *wav.Encoder
	info     audio.Info
	frames   int
	log      *logger.Logger
}

// NewWAV creates a WAV sink writing bitDepth PCM to w. The sink does not close w.
func NewWAV(w io.WriteSeeker, bitDepth int, log *logger.Logger) *WAV {
	if log == nil {
		log = logger.Nop()
	}
	return &WAV{w: w, bitDepth: bitDepth, log: log}
}

// Open writes nothing yet; the header is emitted with the first buffer.
func (o *WAV) Open(info audio.Info) error {
	if o.enc != nil {
		if o.info == info {
			return nil
		}
		return fmt.Errorf("format change %dHz/%dch -> %dHz/%dch not supported mid-file",
			o.info.SampleRate, o.info.Channels, info.SampleRate, info.Channels)
	}

	switch o.bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", o.bitDepth)
	}
	if info.Channels <= 0 || info.SampleRate <= 0 {
		return fmt.Errorf("invalid stream shape %dHz/%dch", info.SampleRate, info.Channels)
	}

	o.enc = wav.NewEncoder(o.w, info.SampleRate, o.bitDepth, info.Channels, wavFormatPCM)
	o.info = info
	return nil
}

// Write appends d to the file.
func (o *WAV) Write(d *audio.Data) error {
	if o.enc == nil {
		return fmt.Errorf("output not initialized")
	}

	ints, err := pcm.ToIntBuffer(pcm.Interleave(d, o.info), o.bitDepth)
	if err != nil {
		return err
	}
	if err := o.enc.Write(ints); err != nil {
		return fmt.Errorf("failed to write wav frames: %w", err)
	}

	o.frames += d.Frames()
	return nil
}

// Close finalises the WAV header.
func (o *WAV) Close() error {
	if o.enc == nil {
		return nil
	}
	if err := o.enc.Close(); err != nil {
		return fmt.Errorf("failed to finalise wav: %w", err)
	}
	o.log.Info().Int("frames", o.frames).Int("rate", o.info.SampleRate).Int("channels", o.info.Channels).Msg("WAV capture closed")
	o.enc = nil
	return nil
}

// Frames returns the number of frames written.
func (o *WAV) Frames() int {
	return o.frames
}
