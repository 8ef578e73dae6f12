// ABOUTME: Audio filters and sources over the planar boundary
// ABOUTME: In-place filters on host buffers and producers of owned buffers
// Package filter holds the two sides of a host audio plugin: filters that
// rewrite a host buffer in place through an audio.DataContext, and sources
// that produce owned audio.Data for the host to take.
//
// Filters and sources run on the host audio thread and are not safe for
// concurrent use.
//
// Example:
//
//	chain := filter.NewChain(filter.NewGain(0.5))
//	audio.Borrow(ptr, chain.FilterAudio)
package filter
