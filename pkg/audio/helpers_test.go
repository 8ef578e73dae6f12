// ABOUTME: Shared helpers for audio package tests
// ABOUTME: Builds host-style records and asserts fatal panics
package audio

import (
	"errors"
	"testing"
)

// hostRecord builds a Record the way a host would: planes allocated outside
// any Data, with the first n slots populated.
func hostRecord(n, frames int, ts uint64) (*Record, [][]float32) {
	rec := &Record{Frames: uint32(frames), Timestamp: ts}
	planes := make([][]float32, n)
	for i := range planes {
		planes[i] = make([]float32, frames+1) // one guard sample past the end
		for j := range planes[i] {
			planes[i][j] = float32(i*100 + j)
		}
		rec.Data[i] = &planes[i][0]
	}
	return rec, planes
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v, got none", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("expected panic with %v, got %v", target, r)
		}
	}()
	fn()
}
