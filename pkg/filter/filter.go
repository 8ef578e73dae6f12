// ABOUTME: In-place audio filters
// ABOUTME: Gain, mute and ordered chains over borrowed host buffers
package filter

import (
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/google/uuid"
)

// Filter rewrites a host buffer in place. Implementations must not keep ctx
// or any plane slice past the call.
type Filter interface {
	ID() uuid.UUID
	FilterAudio(ctx *audio.DataContext)
}

// Gain scales every populated plane by a linear factor.
type Gain struct {
	id     uuid.UUID
	factor float32
}

func NewGain(factor float32) *Gain {
	return &Gain{id: uuid.New(), factor: factor}
}

func (g *Gain) ID() uuid.UUID { return g.id }

func (g *Gain) Factor() float32 { return g.factor }

func (g *Gain) SetFactor(factor float32) { g.factor = factor }

func (g *Gain) FilterAudio(ctx *audio.DataContext) {
	if g.factor == 1 {
		return
	}
	ctx.Each(func(_ int, samples []float32) {
		for i := range samples {
			samples[i] *= g.factor
		}
	})
}

// Mute silences the buffer while enabled.
type Mute struct {
	id      uuid.UUID
	enabled bool
}

func NewMute(enabled bool) *Mute {
	return &Mute{id: uuid.New(), enabled: enabled}
}

func (m *Mute) ID() uuid.UUID { return m.id }

func (m *Mute) SetEnabled(enabled bool) { m.enabled = enabled }

func (m *Mute) Enabled() bool { return m.enabled }

func (m *Mute) FilterAudio(ctx *audio.DataContext) {
	if !m.enabled {
		return
	}
	ctx.Each(func(_ int, samples []float32) {
		clear(samples)
	})
}

// Chain runs filters in order.
type Chain struct {
	id      uuid.UUID
	filters []Filter
}

func NewChain(filters ...Filter) *Chain {
	return &Chain{id: uuid.New(), filters: filters}
}

func (c *Chain) ID() uuid.UUID { return c.id }

// Add appends f to the end of the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters.
func (c *Chain) Len() int { return len(c.filters) }

func (c *Chain) FilterAudio(ctx *audio.DataContext) {
	for _, f := range c.filters {
		f.FilterAudio(ctx)
	}
}
