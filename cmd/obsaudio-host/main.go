// ABOUTME: Entry point for the obsaudio host simulator
// ABOUTME: Loads config, resolves the output shape and runs the pipeline
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/obsaudio/internal/config"
	"github.com/Resonate-Protocol/obsaudio/internal/host"
	"github.com/Resonate-Protocol/obsaudio/internal/logger"
	"github.com/Resonate-Protocol/obsaudio/internal/ui"
	"github.com/Resonate-Protocol/obsaudio/internal/version"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio"
	"github.com/Resonate-Protocol/obsaudio/pkg/audio/output"
	"github.com/Resonate-Protocol/obsaudio/pkg/filter"
	"github.com/Resonate-Protocol/obsaudio/pkg/obs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	// The config path has to be known before defaults are loaded.
	pre := pflag.NewFlagSet("pre", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	configPath := pre.StringP("config", "c", "", "Directory containing config.yaml")
	_ = pre.Parse(os.Args[1:])

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pflag.StringP("config", "c", *configPath, "Directory containing config.yaml")
	showVersion := pflag.BoolP("version", "v", false, "Print version and exit")
	conf.AddFlags(pflag.CommandLine)
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewConsole(conf.Debug, "host", conf.NoColor)
	if conf.TUI {
		// the alt screen owns the terminal
		log = logger.Nop()
	}
	log.Info().Str("version", version.Version).Msg("Starting " + version.Product)

	if err := run(conf, log); err != nil {
		log.Fatal().Err(err).Msg("host failed")
	}
}

func run(conf *config.Host, log *logger.Logger) error {
	handle, closeOutput := resolveOutput(conf, log)
	defer closeOutput()

	sink, closeSink, err := openSink(conf, log)
	if err != nil {
		return err
	}
	defer closeSink()

	gain := filter.NewGain(float32(conf.Gain))
	mute := filter.NewMute(conf.Mute)
	chain := filter.NewChain()

	var controls *ui.Controls
	if conf.TUI {
		controls = ui.NewControls(gain, mute)
		chain.Add(controls)
	}
	chain.Add(gain)
	chain.Add(mute)

	h, err := host.New(host.Config{
		Output:   handle,
		Frames:   conf.Frames,
		Source:   filter.NewTone(conf.Tone.Frequency, conf.Tone.Amplitude),
		Chain:    chain,
		Sink:     sink,
		Log:      log,
		Realtime: conf.Realtime || conf.TUI,
	})
	if err != nil {
		return fmt.Errorf("failed to create host: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !conf.TUI {
		return h.Run(ctx, conf.Ticks)
	}

	model := ui.NewModel(h.Info(), conf.Frames, conf.Gain, conf.Mute, controls)
	monitor := ui.NewMonitor(model, tea.WithAltScreen())
	ticks := 0
	chain.Add(filter.NewMeter(func(lv filter.Levels) {
		ticks++
		monitor.Update(ui.StatusMsg{Ticks: ticks, Timestamp: lv.Timestamp, Peaks: lv.Peaks})
	}))

	go func() {
		select {
		case <-controls.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- h.Run(ctx, conf.Ticks)
		monitor.Stop()
	}()

	if err := monitor.Run(); err != nil {
		cancel()
		<-errc
		return fmt.Errorf("tui failed: %w", err)
	}
	cancel()
	return <-errc
}

// libobs is the part of a loaded libobs the host simulator needs
type libobs interface {
	Audio() (audio.Handle, error)
	Close() error
}

type obsLibrary struct {
	*obs.Library
}

func (l obsLibrary) Audio() (audio.Handle, error) {
	out, err := l.Library.Audio()
	if err != nil {
		return nil, err
	}
	return out, nil
}

var openLibobs = func(path string, log *logger.Logger) (libobs, error) {
	lib, err := obs.Load(path, log)
	if err != nil {
		return nil, err
	}
	return obsLibrary{lib}, nil
}

// resolveOutput asks libobs for the output shape when a path is configured
// and falls back to the configured shape otherwise. The returned func
// unloads libobs once the handle is no longer used.
func resolveOutput(conf *config.Host, log *logger.Logger) (audio.Handle, func()) {
	fallback := audio.FixedOutput{Rate: uint32(conf.SampleRate), Chans: conf.Channels}
	if conf.Libobs == "" {
		return fallback, func() {}
	}

	lib, err := openLibobs(conf.Libobs, log)
	if err != nil {
		log.Warn().Err(err).Msg("libobs unavailable, using configured shape")
		return fallback, func() {}
	}

	closeLib := func() {
		if err := lib.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to unload libobs")
		}
	}

	out, err := lib.Audio()
	if err != nil {
		log.Warn().Err(err).Msg("libobs has no audio output, using configured shape")
		closeLib()
		return fallback, func() {}
	}

	info := audio.NewAudioRef(out).Info()
	if info.SampleRate == 0 || info.Channels == 0 {
		log.Warn().Msg("libobs audio output not configured, using configured shape")
		closeLib()
		return fallback, func() {}
	}

	log.Info().Int("rate", info.SampleRate).Int("channels", info.Channels).Msg("Using libobs output shape")
	return out, closeLib
}

func openSink(conf *config.Host, log *logger.Logger) (output.Output, func(), error) {
	switch conf.Sink {
	case "oto":
		return output.NewOto(log), func() {}, nil
	case "discard":
		return output.NewDiscard(), func() {}, nil
	}

	f, err := os.Create(conf.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", conf.Out, err)
	}
	log.Info().Str("path", conf.Out).Int("bit_depth", conf.BitDepth).Msg("Capturing to WAV")

	return output.NewWAV(f, conf.BitDepth, log), func() { _ = f.Close() }, nil
}
