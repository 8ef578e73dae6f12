// ABOUTME: Level metering filter
// ABOUTME: Reports per-plane peak levels without touching the samples
package filter

import (
	"math"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/google/uuid"
)

// Levels is one metering snapshot.
type Levels struct {
	Timestamp uint64
	// Peaks holds the absolute peak of each populated plane, in plane order
	Peaks []float64
}

// Meter measures each buffer it sees and hands the result to fn. fn runs on
// the host thread and must not block.
type Meter struct {
	id uuid.UUID
	fn func(Levels)
}

func NewMeter(fn func(Levels)) *Meter {
	return &Meter{id: uuid.New(), fn: fn}
}

func (m *Meter) ID() uuid.UUID { return m.id }

func (m *Meter) FilterAudio(ctx *audio.DataContext) {
	lv := Levels{Timestamp: ctx.Timestamp()}
	ctx.Each(func(_ int, samples []float32) {
		peak := 0.0
		for _, s := range samples {
			peak = math.Max(peak, math.Abs(float64(s)))
		}
		lv.Peaks = append(lv.Peaks, peak)
	})
	if m.fn != nil {
		m.fn(lv)
	}
}
