// Package utils holds small numeric helpers shared across navkit packages.
package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapAngleRad normalizes an angle to (-pi, pi].
func WrapAngleRad(ang float64) float64 {
	ang = math.Mod(ang, 2*math.Pi)
	switch {
	case ang > math.Pi:
		ang -= 2 * math.Pi
	case ang <= -math.Pi:
		ang += 2 * math.Pi
	}
	return ang
}

// AngleDiffRad returns the smallest absolute difference between two angles.
func AngleDiffRad(a1, a2 float64) float64 {
	return math.Abs(WrapAngleRad(a1 - a2))
}
