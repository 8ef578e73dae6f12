// ABOUTME: Interleaving between planar Data and go-audio buffers
// ABOUTME: Used by output sinks that expect interleaved PCM
package pcm

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	goaudio "github.com/go-audio/audio"
)

// ErrNoFormat is returned for buffers without a format.
var ErrNoFormat = errors.New("buffer has no format")

// Interleave copies the first info.Channels planes of d into a new
// interleaved float buffer. Planes d does not have are written as silence.
func Interleave(d *audio.Data, info audio.Info) *goaudio.Float32Buffer {
	channels, frames := info.Channels, d.Frames()

	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  info.SampleRate,
		},
		Data:           make([]float32, channels*frames),
		SourceBitDepth: 32,
	}

	for ch := 0; ch < channels; ch++ {
		plane, ok := d.Channel(ch)
		if !ok {
			continue
		}
		for i, s := range plane {
			buf.Data[i*channels+ch] = s
		}
	}

	return buf
}

// Deinterleave splits buf into a new planar buffer stamped with timestamp.
func Deinterleave(buf *goaudio.Float32Buffer, timestamp uint64) (*audio.Data, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNoFormat
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of %d channels", len(buf.Data), channels)
	}

	frames := len(buf.Data) / channels
	d := audio.NewData(channels, frames, timestamp)

	for ch := 0; ch < channels; ch++ {
		plane, _ := d.Channel(ch)
		for i := range plane {
			plane[i] = buf.Data[i*channels+ch]
		}
	}

	return d, nil
}

// ToIntBuffer converts a float buffer to fixed-point PCM at bitDepth.
func ToIntBuffer(buf *goaudio.Float32Buffer, bitDepth int) (*goaudio.IntBuffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNoFormat
	}

	var conv func(float32) int
	switch bitDepth {
	case 16:
		conv = func(s float32) int { return int(SampleToInt16(s)) }
	case 24:
		conv = func(s float32) int { return int(SampleToInt24(s)) }
	case 32:
		conv = func(s float32) int { return int(SampleToInt32(s)) }
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", bitDepth)
	}

	out := &goaudio.IntBuffer{
		Format:         buf.Format,
		Data:           make([]int, len(buf.Data)),
		SourceBitDepth: bitDepth,
	}
	for i, s := range buf.Data {
		out.Data[i] = conv(s)
	}

	return out, nil
}

// FromIntBuffer normalises fixed-point PCM back to float samples.
func FromIntBuffer(buf *goaudio.IntBuffer) (*goaudio.Float32Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNoFormat
	}

	var conv func(int) float32
	switch buf.SourceBitDepth {
	case 16:
		conv = func(s int) float32 { return SampleFromInt16(int16(s)) }
	case 24:
		conv = func(s int) float32 { return SampleFromInt24(int32(s)) }
	case 32:
		conv = func(s int) float32 { return SampleFromInt32(int32(s)) }
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", buf.SourceBitDepth)
	}

	out := &goaudio.Float32Buffer{
		Format:         buf.Format,
		Data:           make([]float32, len(buf.Data)),
		SourceBitDepth: 32,
	}
	for i, s := range buf.Data {
		out.Data[i] = conv(s)
	}

	return out, nil
}
