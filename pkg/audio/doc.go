// ABOUTME: Planar audio boundary package
// ABOUTME: Documents the host record, borrowed view and owned buffer types
// Package audio is the safety boundary around host-owned planar audio.
//
// The host (an OBS-style pipeline) hands over a pointer to a Record: a fixed
// array of per-channel sample pointers, a frame count and a timestamp. This
// package defines:
//   - Record: the C-compatible layout exchanged with the host
//   - DataContext: a borrowed, bounds-checked view over a host Record
//   - Data: an owned, channel-major buffer that can be handed back as a Record
//   - AudioRef / Info: the sample rate and channel count of a host audio output
//
// A DataContext only borrows host memory. Use Borrow so the view is dropped
// when the host call returns:
//
//	audio.Borrow(ptr, func(ctx *audio.DataContext) {
//	    if left, ok := ctx.Channel(0); ok {
//	        for i := range left {
//	            left[i] *= 0.5
//	        }
//	    }
//	})
//
// Owned buffers are shaped like the host buffer and passed back with Handoff,
// which keeps the planes pinned for the duration of the callback:
//
//	out := audio.NewDataLike(ctx)
//	out.Timestamp = ts
//	out.Handoff(func(rec *audio.Record) {
//	    host.Output(rec)
//	})
//
// Nothing in this package blocks, allocates on the read paths or logs; it is
// meant to be called from the host's audio thread.
package audio
