// ABOUTME: libobs binding package
// ABOUTME: Resolves audio output queries from libobs without cgo
// Package obs loads libobs at runtime and exposes its audio outputs as
// audio.Handle values.
//
// Only the two output queries and obs_get_audio are bound; everything else in
// libobs is the host's business.
//
// Example:
//
//	lib, err := obs.Load("", log)
//	out, err := lib.Audio()
//	info := audio.NewAudioRef(out).Info()
package obs
