// ABOUTME: libobs library handle and audio output wrapper
// ABOUTME: Output implements audio.Handle over an audio_t pointer
package obs

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/obsaudio/internal/logger"
)

var (
	// ErrUnsupported is returned by Load on platforms without dlopen.
	ErrUnsupported = errors.New("libobs loading is not supported on this platform")

	// ErrNoAudio is returned when libobs has no audio subsystem running.
	ErrNoAudio = errors.New("libobs has no active audio output")
)

// Library is a loaded libobs.
type Library struct {
	handle uintptr
	log    *logger.Logger

	getSampleRate func(audio uintptr) uint32
	getChannels   func(audio uintptr) uintptr
	getAudio      func() uintptr
}

type symbol struct {
	name string
	fptr any
}

func (l *Library) symbols() []symbol {
	return []symbol{
		{"audio_output_get_sample_rate", &l.getSampleRate},
		{"audio_output_get_channels", &l.getChannels},
		{"obs_get_audio", &l.getAudio},
	}
}

// Audio returns the global libobs audio output.
func (l *Library) Audio() (*Output, error) {
	ptr := l.getAudio()
	if ptr == 0 {
		return nil, ErrNoAudio
	}
	l.log.Debug().Str("audio", fmt.Sprintf("%#x", ptr)).Msg("libobs audio output")
	return l.Output(ptr), nil
}

// Output wraps an audio_t pointer received from the host. The pointer is not
// validated; the host guarantees it for as long as the Output is used.
func (l *Library) Output(ptr uintptr) *Output {
	return &Output{lib: l, ptr: ptr}
}

// Output is a libobs audio_t. It implements audio.Handle.
type Output struct {
	lib *Library
	ptr uintptr
}

// SampleRate calls audio_output_get_sample_rate.
func (o *Output) SampleRate() uint32 {
	return o.lib.getSampleRate(o.ptr)
}

// Channels calls audio_output_get_channels.
func (o *Output) Channels() int {
	return int(o.lib.getChannels(o.ptr))
}

// Pointer returns the wrapped audio_t.
func (o *Output) Pointer() uintptr {
	return o.ptr
}
