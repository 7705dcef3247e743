package scenario

import "math"

// Clamp01 limits x to the unit interval.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Smoothstep is a cosine ease: 0 at x <= 0, 1 at x >= 1, zero slope at
// both ends. It drives the VNI recruitment ramp and the rupture gate.
func Smoothstep(x float64) float64 {
	x = Clamp01(x)
	return 0.5 - 0.5*math.Cos(math.Pi*x)
}

// BreathWave maps a cycle position in [0,1) to lung inflation in [0,1]:
// empty at the start of inspiration, full at mid-cycle.
func BreathWave(cycle float64) float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*cycle)
}
