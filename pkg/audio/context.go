// ABOUTME: Borrowed view over a host-owned audio record
// ABOUTME: Bounds-checked plane access plus frame count and timestamp
package audio

import "unsafe"

// DataContext is a borrowed view over a host Record. It never owns the
// memory behind it and must not be kept past the host call that supplied it.
// Copies of a DataContext share the borrow, so releasing one releases all.
// A DataContext is not safe for concurrent use.
type DataContext struct {
	b *borrow
}

type borrow struct {
	rec *Record
}

// FromRaw wraps a host pointer to a Record. The pointer is trusted: the host
// guarantees it is non-nil for the duration of the call. A nil pointer is
// only reported, fatally, on first access.
func FromRaw(ptr unsafe.Pointer) *DataContext {
	return &DataContext{b: &borrow{rec: (*Record)(ptr)}}
}

// NewDataContext wraps rec and rejects a nil record up front.
func NewDataContext(rec *Record) (*DataContext, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	return &DataContext{b: &borrow{rec: rec}}, nil
}

// Borrow runs fn with a view over ptr and releases the view when fn returns.
// A view that escapes fn panics on its next use.
func Borrow(ptr unsafe.Pointer, fn func(ctx *DataContext)) {
	ctx := FromRaw(ptr)
	defer ctx.release()
	fn(ctx)
}

func (c *DataContext) release() {
	c.b.rec = nil
}

// rec returns the backing record, or nil for a nil or released view.
func (c *DataContext) rec() *Record {
	if c == nil || c.b == nil {
		return nil
	}
	return c.b.rec
}

// record returns the backing record or panics: a nil record here means the
// host broke its contract or the view outlived its Borrow scope.
func (c *DataContext) record() *Record {
	rec := c.rec()
	if rec == nil {
		panic(ErrNilRecord)
	}
	return rec
}

// Frames returns the number of samples per plane.
func (c *DataContext) Frames() int {
	return int(c.record().Frames)
}

// Channels returns the number of plane slots in the record. This is the
// fixed plane capacity; unused slots are reported by Channel, not here.
func (c *DataContext) Channels() int {
	return len(c.record().Data)
}

// Timestamp returns the record's timestamp.
func (c *DataContext) Timestamp() uint64 {
	return c.record().Timestamp
}

// SetTimestamp writes the timestamp into host memory.
func (c *DataContext) SetTimestamp(ts uint64) {
	c.record().Timestamp = ts
}

// Channel returns the samples of plane i, aliasing host memory. It reports
// false when i is outside [0, Channels()), when the plane slot is nil, or
// when the view has no record. The slice must not be retained and must not
// overlap another live slice over the same plane.
func (c *DataContext) Channel(i int) ([]float32, bool) {
	rec := c.rec()
	if rec == nil {
		return nil, false
	}
	if i < 0 || i >= len(rec.Data) {
		return nil, false
	}
	plane := rec.Data[i]
	if plane == nil {
		return nil, false
	}
	return unsafe.Slice(plane, int(rec.Frames)), true
}

// Each calls fn for every populated plane in index order.
func (c *DataContext) Each(fn func(i int, samples []float32)) {
	for i := 0; i < c.Channels(); i++ {
		if samples, ok := c.Channel(i); ok {
			fn(i, samples)
		}
	}
}

// Shape returns Channels() and Frames() together.
func (c *DataContext) Shape() (channels, frames int) {
	rec := c.record()
	return len(rec.Data), int(rec.Frames)
}
