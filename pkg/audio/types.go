// ABOUTME: Audio type definitions
// ABOUTME: Defines the host record layout, stream info and boundary errors
package audio

import "errors"

// MaxAVPlanes is the host ABI limit on planes per record (libobs MAX_AV_PLANES).
const MaxAVPlanes = 8

var (
	// ErrNilRecord is raised when a view is used over a nil or released record.
	ErrNilRecord = errors.New("audio data pointer was nil")

	// ErrTooManyPlanes is raised when an owned buffer has more channels than
	// a Record can carry.
	ErrTooManyPlanes = errors.New("too many audio planes")
)

// Record mirrors the host's obs_audio_data struct. Each non-nil entry in Data
// points at Frames contiguous float32 samples.
type Record struct {
	Data      [MaxAVPlanes]*float32
	Frames    uint32
	Timestamp uint64 // host clock, nanoseconds
}

// Info is a snapshot of a host audio output's shape.
type Info struct {
	SampleRate int
	Channels   int
}
