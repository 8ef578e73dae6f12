// ABOUTME: Bubbletea model for the host monitor TUI
// ABOUTME: Shows stream shape, tick progress and per-channel levels
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	meterWidth = 30
	gainStep   = 0.1
	maxGain    = 2.0
)

// Model represents the TUI state
type Model struct {
	// Stream
	info   audio.Info
	frames int

	// Progress
	ticks     int
	timestamp uint64
	peaks     []float64

	// Controls
	gain  float64
	muted bool

	controls *Controls
	quitting bool

	// Dimensions
	width  int
	height int
}

// StatusMsg carries one metering update from the host
type StatusMsg struct {
	Ticks     int
	Timestamp uint64
	Peaks     []float64
}

// NewModel creates a monitor for a host of the given shape
func NewModel(info audio.Info, frames int, gain float64, muted bool, controls *Controls) Model {
	return Model{
		info:     info,
		frames:   frames,
		gain:     gain,
		muted:    muted,
		controls: controls,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.ticks = msg.Ticks
		m.timestamp = msg.Timestamp
		m.peaks = msg.Peaks
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.controls.requestQuit()
		return m, tea.Quit
	case "up":
		m.gain = min(m.gain+gainStep, maxGain)
		m.controls.send(ControlMsg{Gain: m.gain, Muted: m.muted})
	case "down":
		m.gain = max(m.gain-gainStep, 0)
		m.controls.send(ControlMsg{Gain: m.gain, Muted: m.muted})
	case "m":
		m.muted = !m.muted
		m.controls.send(ControlMsg{Gain: m.gain, Muted: m.muted})
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Stopping host...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("obsaudio host"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Format: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%dHz %s, %d frames/tick",
		m.info.SampleRate, channelName(m.info.Channels), m.frames)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Clock:  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("tick %d, %v",
		m.ticks, time.Duration(m.timestamp).Round(time.Millisecond))))
	b.WriteString("\n")

	muteText := ""
	if m.muted {
		muteText = " (muted)"
	}
	b.WriteString(headerStyle.Render("Gain:   "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1fx%s", m.gain, muteText)))
	b.WriteString("\n\n")

	for i, peak := range m.peaks {
		b.WriteString(fmt.Sprintf("  ch%d [%s] %5.1f dBFS\n", i, renderBar(peak, meterWidth), dbfs(peak)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("↑/↓:Gain  m:Mute  q:Quit"))

	return b.String()
}

// renderBar draws a linear meter for a peak in [0, 1]
func renderBar(value float64, width int) string {
	filled := int(value * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// dbfs converts a linear peak to decibels full scale, floored at -99
func dbfs(peak float64) float64 {
	if peak <= 0 {
		return -99
	}
	return max(20*math.Log10(peak), -99)
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
