// ABOUTME: Sample conversion helpers
// ABOUTME: Converts float32 samples to and from 16/24/32-bit integers
package pcm

import "math"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	scale16 = 32768.0
	scale24 = 8388608.0
	scale32 = 2147483648.0
)

// Clip limits a sample to [-1, 1]. NaN becomes silence.
func Clip(s float32) float32 {
	if math.IsNaN(float64(s)) {
		return 0
	}
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// SampleToInt16 converts a float sample to 16-bit PCM, clipping out-of-range input.
func SampleToInt16(s float32) int16 {
	v := int32(float64(Clip(s)) * scale16)
	if v > 32767 {
		v = 32767
	}
	return int16(v)
}

// SampleFromInt16 converts 16-bit PCM to a float sample
func SampleFromInt16(s int16) float32 {
	return float32(float64(s) / scale16)
}

// SampleToInt24 converts a float sample to 24-bit PCM held in an int32.
func SampleToInt24(s float32) int32 {
	v := int32(float64(Clip(s)) * scale24)
	if v > Max24Bit {
		v = Max24Bit
	}
	return v
}

// SampleFromInt24 converts 24-bit PCM to a float sample
func SampleFromInt24(s int32) float32 {
	return float32(float64(s) / scale24)
}

// SampleToInt32 converts a float sample to full-range 32-bit PCM.
func SampleToInt32(s float32) int32 {
	v := int64(float64(Clip(s)) * scale32)
	if v > 2147483647 {
		v = 2147483647
	}
	return int32(v)
}

// SampleFromInt32 converts 32-bit PCM to a float sample
func SampleFromInt32(s int32) float32 {
	return float32(float64(s) / scale32)
}

// SampleTo24Bit packs a 24-bit value into little-endian bytes.
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit unpacks little-endian 24-bit bytes into an int32
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
