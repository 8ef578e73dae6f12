// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays planar buffers as interleaved float32 with software volume
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Resonate-Protocol/obsaudio/internal/logger"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio/pcm"
	"github.com/ebitengine/oto/v3"
)

// device is the part of an oto context the output drives
type device interface {
	NewPlayer(r io.Reader) player
	Suspend() error
	Resume() error
}

type player interface {
	Play()
	Close() error
}

// otoDevice adapts *oto.Context to device
type otoDevice struct {
	*oto.Context
}

func (d otoDevice) NewPlayer(r io.Reader) player {
	return d.Context.NewPlayer(r)
}

func openOtoDevice(info audio.Info) (device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   info.SampleRate,
		ChannelCount: info.Channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	return otoDevice{ctx}, nil
}

// Oto output implementation using oto library
type Oto struct {
	dev        device
	openDevice func(audio.Info) (device, error)
	player     player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	info       audio.Info
	volume     int
	muted      bool
	ready      bool
	log        *logger.Logger
}

// NewOto creates a new Oto output
func NewOto(log *logger.Logger) *Oto {
	if log == nil {
		log = logger.Nop()
	}
	return &Oto{
		openDevice: openOtoDevice,
		volume:     100,
		log:        log,
	}
}

// Open initializes the output device. After Close the same format can be
// opened again; the suspended context is resumed.
func (o *Oto) Open(info audio.Info) error {
	// oto allows one context per process, so a format change cannot be honoured
	if o.dev != nil && o.info != info {
		return fmt.Errorf("format change %dHz/%dch -> %dHz/%dch not supported by oto",
			o.info.SampleRate, o.info.Channels, info.SampleRate, info.Channels)
	}

	if o.ready {
		o.log.Debug().Msg("Audio output already initialized with same format, reusing context")
		return nil
	}

	if o.dev == nil {
		dev, err := o.openDevice(info)
		if err != nil {
			return err
		}
		o.dev = dev
		o.info = info
	} else if err := o.dev.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}

	// Persistent player fed through a pipe
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.dev.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	o.log.Info().Int("rate", info.SampleRate).Int("channels", info.Channels).Msg("Audio output initialized")

	return nil
}

// Write plays d (blocks until the player has taken it)
func (o *Oto) Write(d *audio.Data) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	buf := pcm.Interleave(d, o.info)
	applyVolume(buf.Data, o.volume, o.muted)

	output := make([]byte, len(buf.Data)*4)
	for i, s := range buf.Data {
		binary.LittleEndian.PutUint32(output[i*4:], math.Float32bits(s))
	}

	if _, err := o.pipeWriter.Write(output); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.dev != nil && o.ready {
		if err := o.dev.Suspend(); err != nil {
			o.log.Warn().Err(err).Msg("oto suspend failed")
		}
	}
	o.ready = false
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.volume = clampVolume(volume)
	o.log.Debug().Int("volume", o.volume).Msg("Volume set")
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
	o.log.Debug().Bool("muted", muted).Msg("Mute set")
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	return o.muted
}
