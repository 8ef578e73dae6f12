// ABOUTME: Audio output package for planar buffers
// ABOUTME: Provides the Output interface plus oto, WAV and discard sinks
// Package output provides sinks for owned planar audio.
//
// Sinks stand in for the host's own output when buffers are exercised
// outside a host: oto plays them, WAV captures them, Discard counts them.
//
// Example:
//
//	out := output.NewWAV(f, 16, log)
//	err := out.Open(audio.Info{SampleRate: 48000, Channels: 2})
//	err = out.Write(data)
//	err = out.Close()
package output
