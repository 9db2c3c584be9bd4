package dive

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// Foraging indicator parameters. The normalisation divisors map each raw
// indicator onto [0,1] before combination; values past the divisor clip.
const (
	clickRateScale = 100.0 // acoustic duty cycle → clicks/second proxy

	rapidManeuverDelta = 2.0 // g change between consecutive samples

	clickRateNorm      = 20.0
	buzzEventsNorm     = 3.0
	rapidManeuversNorm = 10.0
	depthVariationNorm = 5.0
)

// DetectForaging derives the prey-capture proxies for one dive window and
// combines them into a bounded success-probability estimate.
func DetectForaging(frame *telemetry.SensorFrame, w Window) ForagingIndicators {
	n := w.Samples()

	acousticCount := 0
	for i := w.Start; i < w.End; i++ {
		if frame.Acoustic[i] {
			acousticCount++
		}
	}
	clickRate := float64(acousticCount) / float64(n) * clickRateScale

	buzzEvents := countBuzzEvents(frame.Acoustic[w.Start:w.End])

	rapidManeuvers := 0
	prevMag := accelMagnitude(frame, w.Start)
	for i := w.Start + 1; i < w.End; i++ {
		mag := accelMagnitude(frame, i)
		if math.Abs(mag-prevMag) > rapidManeuverDelta {
			rapidManeuvers++
		}
		prevMag = mag
	}

	depthVariation := 0.0
	if n > 2 {
		diffs := make([]float64, n-1)
		for i := 0; i < n-1; i++ {
			diffs[i] = frame.Depth[w.Start+i+1] - frame.Depth[w.Start+i]
		}
		depthVariation = stat.StdDev(diffs, nil)
	}

	clickNorm := clamp01(clickRate / clickRateNorm)
	buzzNorm := clamp01(float64(buzzEvents) / buzzEventsNorm)
	maneuverNorm := clamp01(float64(rapidManeuvers) / rapidManeuversNorm)
	depthNorm := clamp01(depthVariation / depthVariationNorm)

	return ForagingIndicators{
		ClickRate:          clickRate,
		BuzzEvents:         buzzEvents,
		RapidManeuvers:     rapidManeuvers,
		DepthVariation:     depthVariation,
		SuccessProbability: (clickNorm + buzzNorm + maneuverNorm + depthNorm) / 4.0,
		ForagingIntensity:  (clickNorm + buzzNorm + maneuverNorm) / 3.0,
	}
}

// countBuzzEvents counts maximal contiguous runs of acoustic activity.
// The boolean channel stands in for acoustic intensity (0/1), so any run
// of true samples exceeds the 0.8 buzz intensity threshold.
func countBuzzEvents(acoustic []bool) int {
	events := 0
	prev := false
	for _, a := range acoustic {
		if a && !prev {
			events++
		}
		prev = a
	}
	return events
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
