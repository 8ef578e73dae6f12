// ABOUTME: Host audio output descriptor
// ABOUTME: Queries sample rate and channel count from a host output handle
package audio

// Handle is a host audio output. Implementations answer from current host
// state on every call; the host guarantees the handle is valid.
type Handle interface {
	SampleRate() uint32
	Channels() int
}

// AudioRef describes the stream behind a host audio output.
type AudioRef struct {
	handle Handle
}

// NewAudioRef wraps a host output handle.
func NewAudioRef(h Handle) AudioRef {
	return AudioRef{handle: h}
}

// SampleRate returns the output's current sample rate in Hz.
func (r AudioRef) SampleRate() int {
	return int(r.handle.SampleRate())
}

// Channels returns the output's current channel count.
func (r AudioRef) Channels() int {
	return r.handle.Channels()
}

// Info returns both values as a single snapshot.
func (r AudioRef) Info() Info {
	return Info{
		SampleRate: r.SampleRate(),
		Channels:   r.Channels(),
	}
}

// FixedOutput is a Handle with a constant shape, for hosts that already know
// what they are producing.
type FixedOutput struct {
	Rate  uint32
	Chans int
}

func (o FixedOutput) SampleRate() uint32 { return o.Rate }
func (o FixedOutput) Channels() int      { return o.Chans }
