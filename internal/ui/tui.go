// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and carries key presses back to the host
package ui

import (
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/filter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ControlMsg is a gain/mute change requested from the TUI
type ControlMsg struct {
	Gain  float64
	Muted bool
}

// Controls applies TUI changes to the host's filters. It is itself a filter
// so the changes land on the host thread between buffers.
type Controls struct {
	id      uuid.UUID
	gain    *filter.Gain
	mute    *filter.Mute
	changes chan ControlMsg
	quit    chan struct{}
}

// NewControls creates a control handler for gain and mute
func NewControls(gain *filter.Gain, mute *filter.Mute) *Controls {
	return &Controls{
		id:      uuid.New(),
		gain:    gain,
		mute:    mute,
		changes: make(chan ControlMsg, 10),
		quit:    make(chan struct{}, 1),
	}
}

func (c *Controls) ID() uuid.UUID { return c.id }

// FilterAudio applies pending changes; samples are left alone
func (c *Controls) FilterAudio(*audio.DataContext) {
	for {
		select {
		case msg := <-c.changes:
			c.gain.SetFactor(float32(msg.Gain))
			c.mute.SetEnabled(msg.Muted)
		default:
			return
		}
	}
}

// Quit is signalled when the user asks the TUI to stop
func (c *Controls) Quit() <-chan struct{} {
	return c.quit
}

func (c *Controls) send(msg ControlMsg) {
	if c == nil {
		return
	}
	select {
	case c.changes <- msg:
	default:
		// Don't block the UI if the host is behind
	}
}

func (c *Controls) requestQuit() {
	if c == nil {
		return
	}
	select {
	case c.quit <- struct{}{}:
	default:
	}
}

// Monitor runs the TUI program
type Monitor struct {
	program *tea.Program
	updates chan StatusMsg
	done    chan struct{}
}

// NewMonitor creates the TUI for model
func NewMonitor(model Model, opts ...tea.ProgramOption) *Monitor {
	return &Monitor{
		program: tea.NewProgram(model, opts...),
		updates: make(chan StatusMsg, 10),
		done:    make(chan struct{}),
	}
}

// Run blocks until the TUI exits
func (m *Monitor) Run() error {
	go func() {
		for {
			select {
			case status := <-m.updates:
				m.program.Send(status)
			case <-m.done:
				return
			}
		}
	}()

	_, err := m.program.Run()
	close(m.done)
	return err
}

// Update sends a status update to the TUI
func (m *Monitor) Update(status StatusMsg) {
	select {
	case m.updates <- status:
	default:
		// Don't block the host thread if the UI is behind
	}
}

// Stop quits the TUI
func (m *Monitor) Stop() {
	m.program.Quit()
}
