// ABOUTME: Host simulator configuration
// ABOUTME: Loads defaults, an optional YAML file and OBSAUDIO_ environment overrides
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const EnvPrefix = "OBSAUDIO"

// Host configures the simulated audio pipeline.
type Host struct {
	// Shape used when no libobs output is available.
	SampleRate int `fig:"sample_rate" default:"48000"`
	Channels   int `fig:"channels" default:"2"`
	Frames     int `fig:"frames" default:"1024"`
	// Number of host ticks to run, 0 runs until interrupted.
	Ticks int `fig:"ticks" default:"200"`

	Tone struct {
		Frequency float64 `fig:"frequency" default:"440"`
		Amplitude float64 `fig:"amplitude" default:"0.5"`
	} `fig:"tone"`

	Gain float64 `fig:"gain" default:"1"`
	Mute bool    `fig:"mute"`

	// Sink is one of wav, oto, discard.
	Sink     string `fig:"sink" default:"wav"`
	Out      string `fig:"out" default:"obsaudio.wav"`
	BitDepth int    `fig:"bit_depth" default:"16"`

	// Path to libobs; empty skips the FFI lookup.
	Libobs string `fig:"libobs"`

	// Realtime paces ticks to the sample clock. TUI implies it.
	Realtime bool `fig:"realtime"`
	TUI      bool `fig:"tui"`

	Debug   bool `fig:"debug"`
	NoColor bool `fig:"no_color"`
}

// Load reads config.yaml from path (or the default search dirs) and the
// environment. A missing file is not an error: defaults and env apply.
func Load(path string) (*Host, error) {
	var conf Host

	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.obsaudio")
		}
	}

	err := fig.Load(&conf, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		conf = Host{}
		err = fig.Load(&conf, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// AddFlags binds command line overrides onto c.
func (c *Host) AddFlags(fs *pflag.FlagSet) *Host {
	fs.IntVarP(&c.Ticks, "ticks", "n", c.Ticks, "Number of host ticks to run (0 runs until interrupted)")
	fs.IntVarP(&c.Frames, "frames", "f", c.Frames, "Frames per host tick")
	fs.Float64VarP(&c.Gain, "gain", "g", c.Gain, "Linear gain applied by the filter chain")
	fs.BoolVarP(&c.Mute, "mute", "m", c.Mute, "Silence the filter chain output")
	fs.StringVarP(&c.Sink, "sink", "s", c.Sink, "Output sink: wav, oto or discard")
	fs.StringVarP(&c.Out, "out", "o", c.Out, "WAV file written by the wav sink")
	fs.IntVarP(&c.BitDepth, "bit-depth", "", c.BitDepth, "WAV bit depth (16, 24 or 32)")
	fs.StringVarP(&c.Libobs, "libobs", "", c.Libobs, "Path to libobs for output shape lookup")
	fs.Float64VarP(&c.Tone.Frequency, "tone", "t", c.Tone.Frequency, "Test tone frequency in Hz")
	fs.BoolVarP(&c.Realtime, "realtime", "r", c.Realtime, "Pace ticks to the sample clock")
	fs.BoolVarP(&c.TUI, "tui", "", c.TUI, "Show the level monitor (implies --realtime)")
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "Enable debug logging")
	return c
}

// Validate checks values the host cannot run with.
func (c *Host) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("invalid frames per tick: %d", c.Frames)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("invalid tick count: %d", c.Ticks)
	}
	switch c.Sink {
	case "wav", "oto", "discard":
	default:
		return fmt.Errorf("unknown sink: %s", c.Sink)
	}
	switch c.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", c.BitDepth)
	}
	return nil
}
