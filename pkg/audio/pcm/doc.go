// ABOUTME: PCM conversion package for planar float audio
// ABOUTME: Bridges owned planar buffers and go-audio interleaved buffers
// Package pcm converts between planar float32 audio and interleaved PCM.
//
// Host planes are float32 in [-1, 1]. This package provides:
//   - Interleave / Deinterleave between *audio.Data and go-audio Float32Buffer
//   - ToIntBuffer / FromIntBuffer for fixed-point PCM (16, 24, 32-bit)
//   - Per-sample conversions with clipping
//
// Example:
//
//	buf := pcm.Interleave(data, audio.Info{SampleRate: 48000, Channels: 2})
//	ints, err := pcm.ToIntBuffer(buf, 16)
package pcm
