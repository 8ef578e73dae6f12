// ABOUTME: Owned planar audio buffer
// ABOUTME: Allocates channel-major samples and marshals them into a host Record
package audio

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"
)

// Data is an owned, channel-major audio buffer. Every plane holds exactly
// Frames() samples. Data has a single owner and is not safe for concurrent use.
type Data struct {
	planes [][]float32
	frames int

	// Timestamp is the host clock position of the first frame. Producers
	// set it before handing the buffer to the host.
	Timestamp uint64
}

// NewData allocates channels zero-filled planes of frames samples each.
func NewData(channels, frames int, timestamp uint64) *Data {
	planes := make([][]float32, channels)
	for i := range planes {
		planes[i] = make([]float32, frames)
	}

	return &Data{
		planes:    planes,
		frames:    frames,
		Timestamp: timestamp,
	}
}

// NewDataLike allocates a zero-filled buffer with the same channel and frame
// count as ctx. The timestamp is left at zero, not copied: the new buffer is
// new audio whose position the producer has yet to decide.
func NewDataLike(ctx *DataContext) *Data {
	channels, frames := ctx.Shape()
	return NewData(channels, frames, 0)
}

// Channels returns the number of planes.
func (d *Data) Channels() int {
	return len(d.planes)
}

// Frames returns the number of samples per plane.
func (d *Data) Frames() int {
	return d.frames
}

// Channel returns plane i, or false if i is out of range.
func (d *Data) Channel(i int) ([]float32, bool) {
	if i < 0 || i >= len(d.planes) {
		return nil, false
	}
	return d.planes[i], true
}

// CopyFrom copies samples from the populated planes of ctx into d and
// returns the number of frames copied per plane. The timestamp is untouched.
func (d *Data) CopyFrom(ctx *DataContext) int {
	n := 0
	ctx.Each(func(i int, src []float32) {
		if i < len(d.planes) {
			n = copy(d.planes[i], src)
		}
	})
	return n
}

// CopyTo copies d's samples into the populated planes of ctx and returns the
// number of frames copied per plane. The timestamp is untouched.
func (d *Data) CopyTo(ctx *DataContext) int {
	n := 0
	ctx.Each(func(i int, dst []float32) {
		if i < len(d.planes) {
			n = copy(dst, d.planes[i])
		}
	})
	return n
}

// ToRaw builds the host Record for d. Slot i points at the first sample of
// plane i; slots past Channels() are nil. The record is only valid while d
// is alive. ToRaw panics with ErrTooManyPlanes when d has more than
// MaxAVPlanes channels.
func (d *Data) ToRaw() Record {
	if len(d.planes) > MaxAVPlanes {
		panic(fmt.Errorf("%w: %d channels, limit %d", ErrTooManyPlanes, len(d.planes), MaxAVPlanes))
	}
	if uint64(d.frames) > math.MaxUint32 {
		panic(fmt.Errorf("frame count %d does not fit a record", d.frames))
	}

	var rec Record
	for i, plane := range d.planes {
		rec.Data[i] = unsafe.SliceData(plane)
	}
	rec.Frames = uint32(d.frames)
	rec.Timestamp = d.Timestamp

	return rec
}

// Handoff passes d to the host as a Record. The planes stay pinned while fn
// runs so the record may be given to foreign code; fn must not keep the
// record after it returns.
func (d *Data) Handoff(fn func(rec *Record)) {
	rec := d.ToRaw()

	var pinner runtime.Pinner
	defer pinner.Unpin()
	for _, plane := range d.planes {
		if len(plane) > 0 {
			pinner.Pin(&plane[0])
		}
	}

	fn(&rec)
}
