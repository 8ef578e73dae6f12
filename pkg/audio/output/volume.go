// ABOUTME: Software volume for float sinks
// ABOUTME: Applies volume and mute with clipping protection
package output

import "github.com/Resonate-Protocol/obsaudio/pkg/audio/pcm"

// applyVolume scales samples in place with clipping protection
func applyVolume(samples []float32, volume int, muted bool) {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1 {
		return
	}

	for i, s := range samples {
		samples[i] = pcm.Clip(s * multiplier)
	}
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float32 {
	if muted {
		return 0
	}
	return float32(volume) / 100
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
