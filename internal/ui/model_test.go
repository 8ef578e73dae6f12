// ABOUTME: Tests for the monitor TUI model
// ABOUTME: Tests status updates, key handling and control delivery
package ui

import (
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/filter"
	tea "github.com/charmbracelet/bubbletea"
)

var stereo = audio.Info{SampleRate: 48000, Channels: 2}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModel(t *testing.T) {
	model := NewModel(stereo, 1024, 1, false, nil)

	if model.gain != 1 {
		t.Errorf("expected gain 1, got %v", model.gain)
	}
	if model.muted {
		t.Error("expected muted to be false initially")
	}
	if model.ticks != 0 {
		t.Errorf("expected 0 ticks, got %d", model.ticks)
	}
}

func TestStatusMsg(t *testing.T) {
	model := NewModel(stereo, 1024, 1, false, nil)

	next, _ := model.Update(StatusMsg{Ticks: 5, Timestamp: 1_000_000, Peaks: []float64{0.5, 0.25}})
	model = next.(Model)

	if model.ticks != 5 {
		t.Errorf("expected 5 ticks, got %d", model.ticks)
	}
	if len(model.peaks) != 2 || model.peaks[1] != 0.25 {
		t.Errorf("unexpected peaks %v", model.peaks)
	}

	view := model.View()
	if !strings.Contains(view, "ch1") || !strings.Contains(view, "48000Hz Stereo") {
		t.Errorf("view missing stream details:\n%s", view)
	}
}

func TestGainKeys(t *testing.T) {
	model := NewModel(stereo, 1024, 1, false, nil)

	model = press(model, "up")
	if math.Abs(model.gain-1.1) > 1e-9 {
		t.Errorf("expected gain 1.1, got %v", model.gain)
	}

	for i := 0; i < 30; i++ {
		model = press(model, "up")
	}
	if model.gain != maxGain {
		t.Errorf("expected gain clamped to %v, got %v", maxGain, model.gain)
	}

	for i := 0; i < 30; i++ {
		model = press(model, "down")
	}
	if model.gain != 0 {
		t.Errorf("expected gain clamped to 0, got %v", model.gain)
	}
}

func TestMuteToggle(t *testing.T) {
	model := NewModel(stereo, 1024, 1, false, nil)

	model = press(model, "m")
	if !model.muted {
		t.Error("expected muted after 'm'")
	}
	model = press(model, "m")
	if model.muted {
		t.Error("expected unmuted after second 'm'")
	}
}

func TestQuitSignalsHost(t *testing.T) {
	controls := NewControls(filter.NewGain(1), filter.NewMute(false))
	model := NewModel(stereo, 1024, 1, false, controls)

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).quitting {
		t.Error("expected model to be quitting")
	}

	select {
	case <-controls.Quit():
	default:
		t.Error("expected quit signal")
	}
}

func TestControlsApplyOnHostThread(t *testing.T) {
	gain := filter.NewGain(1)
	mute := filter.NewMute(false)
	controls := NewControls(gain, mute)
	model := NewModel(stereo, 4, 1, false, controls)

	model = press(model, "down")
	press(model, "m")

	// nothing changes until the host runs the filter
	if gain.Factor() != 1 || mute.Enabled() {
		t.Fatal("expected changes to wait for the host thread")
	}

	plane := []float32{0.5, 0.5, 0.5, 0.5}
	rec := &audio.Record{Frames: 4}
	rec.Data[0] = &plane[0]
	audio.Borrow(unsafe.Pointer(rec), controls.FilterAudio)

	if math.Abs(float64(gain.Factor())-0.9) > 1e-6 {
		t.Errorf("expected gain 0.9, got %v", gain.Factor())
	}
	if !mute.Enabled() {
		t.Error("expected mute enabled")
	}
	if plane[0] != 0.5 {
		t.Errorf("controls changed samples: %v", plane[0])
	}
}

func TestDBFS(t *testing.T) {
	tests := []struct {
		name     string
		peak     float64
		expected float64
	}{
		{"full scale", 1, 0},
		{"half", 0.5, -6.0206},
		{"silence", 0, -99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dbfs(tt.peak); math.Abs(got-tt.expected) > 1e-3 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(0.5, 10); got != "█████░░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := renderBar(2, 4); got != "████" {
		t.Errorf("expected clamped bar, got %q", got)
	}
}
