// ABOUTME: Producers of owned audio buffers
// ABOUTME: Test tone generator and host-buffer forking
package filter

import (
	"math"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/google/uuid"
)

// Source produces new audio independent of any host buffer.
type Source interface {
	ID() uuid.UUID
	// Produce returns frames of audio shaped for info, stamped with timestamp
	Produce(info audio.Info, frames int, timestamp uint64) *audio.Data
}

// ToneSource generates a sine test tone on every channel
type ToneSource struct {
	id          uuid.UUID
	sampleIndex uint64
	frequency   float64
	amplitude   float64
}

// NewTone creates a tone generator. amplitude is linear, 0.5 leaves headroom.
func NewTone(frequency, amplitude float64) *ToneSource {
	if frequency <= 0 {
		frequency = 440.0 // A4 note
	}
	return &ToneSource{
		id:        uuid.New(),
		frequency: frequency,
		amplitude: amplitude,
	}
}

func (s *ToneSource) ID() uuid.UUID { return s.id }

func (s *ToneSource) Produce(info audio.Info, frames int, timestamp uint64) *audio.Data {
	d := audio.NewData(info.Channels, frames, timestamp)
	if info.SampleRate <= 0 || info.Channels == 0 {
		return d
	}

	first, _ := d.Channel(0)
	for i := range first {
		t := float64(s.sampleIndex+uint64(i)) / float64(info.SampleRate)
		first[i] = float32(math.Sin(2*math.Pi*s.frequency*t) * s.amplitude)
	}

	// Duplicate to all channels
	for ch := 1; ch < d.Channels(); ch++ {
		plane, _ := d.Channel(ch)
		copy(plane, first)
	}

	s.sampleIndex += uint64(frames)
	return d
}

// Fork copies the host buffer behind ctx into a new owned buffer so it can
// outlive the host call. Unlike audio.NewDataLike, the timestamp is carried
// over since the samples are the same audio.
func Fork(ctx *audio.DataContext) *audio.Data {
	d := audio.NewDataLike(ctx)
	d.CopyFrom(ctx)
	d.Timestamp = ctx.Timestamp()
	return d
}
