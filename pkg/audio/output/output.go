// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for planar audio sinks
package output

import (
	"sync/atomic"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
)

// Output represents an audio sink
type Output interface {
	// Open prepares the sink for the given stream shape
	Open(info audio.Info) error

	// Write consumes the first info.Channels planes of d
	Write(d *audio.Data) error

	// Close releases sink resources
	Close() error
}

// Discard drops everything it is given and counts frames.
type Discard struct {
	frames atomic.Int64
}

// NewDiscard creates a sink that drops audio
func NewDiscard() *Discard {
	return &Discard{}
}

func (d *Discard) Open(audio.Info) error { return nil }

func (d *Discard) Write(data *audio.Data) error {
	d.frames.Add(int64(data.Frames()))
	return nil
}

func (d *Discard) Close() error { return nil }

// Frames returns the number of frames written so far.
func (d *Discard) Frames() int64 {
	return d.frames.Load()
}
