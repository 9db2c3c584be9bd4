package dive

import "math"

// Bioenergetic cost coefficients: duration, depth (pressure/transport), and
// activity terms, combined and scaled by a per-behaviour multiplier.
const (
	costDurationCoeff = 0.1
	costDepthDivisor  = 100.0
	costDepthExponent = 1.5
	costActivityCoeff = 2.0
)

var energyMultipliers = map[Behavior]float64{
	DeepForaging:       1.5,
	ShallowForaging:    1.2,
	DeepTravel:         1.3,
	DeepExploration:    1.4,
	ShallowExploration: 1.1,
	ShallowTravel:      1.0,
	SocialSurface:      0.8,
	Resting:            0.5,
}

// EnergyCost estimates the energetic cost of one dive from its duration,
// maximum depth, mean dynamic body acceleration, and behaviour label.
func EnergyCost(duration, maxDepth, meanDBA float64, b Behavior) float64 {
	base := costDurationCoeff*duration +
		math.Pow(maxDepth/costDepthDivisor, costDepthExponent) +
		costActivityCoeff*meanDBA
	return base * energyMultipliers[b]
}

// Efficiency returns foraging success per unit energy cost, or 0 for a
// zero-cost dive.
func Efficiency(successProbability, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return successProbability / cost
}
