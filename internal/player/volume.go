package player

import "math"

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale with base 2: 0 is unity gain, -1 is half,
// -2 a quarter. Levels at or below zero map to -10 and the caller also sets
// Silent.
func levelToVolume(level float64) float64 {
	if level <= 0 || math.IsNaN(level) {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// clampLevel bounds a volume level to [0, 1].
func clampLevel(level float64) float64 {
	if math.IsNaN(level) {
		return 0
	}
	return max(0, min(1, level))
}
