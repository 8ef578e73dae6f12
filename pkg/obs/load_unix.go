//go:build darwin || freebsd || linux

// ABOUTME: dlopen-based libobs loader
// ABOUTME: Binds libobs symbols with purego so no cgo toolchain is needed
package obs

import (
	"fmt"
	"runtime"

	"github.com/Resonate-Protocol/obsaudio/internal/logger"
	"github.com/ebitengine/purego"
)

// DefaultPath returns the platform's usual libobs name.
func DefaultPath() string {
	switch runtime.GOOS {
	case "darwin":
		return "libobs.framework/Versions/A/libobs"
	default:
		return "libobs.so.0"
	}
}

// Load opens libobs at path (DefaultPath when empty) and binds the audio
// output queries.
func Load(path string, log *logger.Logger) (*Library, error) {
	if path == "" {
		path = DefaultPath()
	}
	if log == nil {
		log = logger.Nop()
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	lib := &Library{handle: handle, log: log}
	for _, s := range lib.symbols() {
		sym, err := purego.Dlsym(handle, s.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("failed to resolve %s: %w", s.name, err)
		}
		purego.RegisterFunc(s.fptr, sym)
	}

	log.Info().Str("path", path).Msg("libobs loaded")
	return lib, nil
}

// Close unloads the library. Outputs obtained from it must not be used afterwards.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	if err := purego.Dlclose(l.handle); err != nil {
		return fmt.Errorf("failed to close libobs: %w", err)
	}
	l.handle = 0
	return nil
}
