//go:build !(darwin || freebsd || linux)

// ABOUTME: libobs loader stub for platforms without dlopen
// ABOUTME: Load always fails with ErrUnsupported
package obs

import "github.com/Resonate-Protocol/obsaudio/internal/logger"

// DefaultPath returns the platform's usual libobs name.
func DefaultPath() string { return "obs.dll" }

// Load is not supported on this platform.
func Load(path string, log *logger.Logger) (*Library, error) {
	return nil, ErrUnsupported
}

// Close is a no-op.
func (l *Library) Close() error { return nil }
