// ABOUTME: Tests for the logging wrapper
// ABOUTME: Checks that extended loggers carry their fields
package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestExtendCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	child := log.Extend(log.With().Str("filter", "gain"))
	child.Info().Int("frames", 480).Msg("processed")

	out := buf.String()
	for _, want := range []string{`"filter":"gain"`, `"frames":480`, `"message":"processed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestNopDropsEverything(t *testing.T) {
	// Must not panic or write anywhere
	Nop().Error().Msg("ignored")
}
