package dive

import (
	"math"

	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// rateEpsilon floors descent/ascent phase durations so a depth peak at the
// first or last sample of a window cannot divide by zero.
const rateEpsilon = 1e-6

// bottomPhaseFraction defines "bottom time": samples deeper than this
// fraction of the dive's maximum depth.
const bottomPhaseFraction = 0.8

// AnalyzeWindow computes the kinematic metrics for one dive window.
func AnalyzeWindow(frame *telemetry.SensorFrame, w Window) Kinematics {
	depth := frame.Depth[w.Start:w.End]

	maxDepth := depth[0]
	peakIdx := 0
	for i, d := range depth {
		if d > maxDepth {
			maxDepth = d
			peakIdx = i
		}
	}

	duration := w.Duration(frame.SampleRate)
	descentTime := float64(peakIdx) / frame.SampleRate
	ascentTime := duration - descentTime

	descentRate := maxDepth / math.Max(descentTime, rateEpsilon)
	ascentRate := maxDepth / math.Max(ascentTime, rateEpsilon)

	bottomSamples := 0
	bottomLimit := bottomPhaseFraction * maxDepth
	for _, d := range depth {
		if d > bottomLimit {
			bottomSamples++
		}
	}
	bottomTime := float64(bottomSamples) / frame.SampleRate

	var dbaSum float64
	for i := w.Start; i < w.End; i++ {
		dbaSum += accelMagnitude(frame, i)
	}
	meanDBA := dbaSum / float64(w.Samples())

	acousticCount := 0
	for i := w.Start; i < w.End; i++ {
		if frame.Acoustic[i] {
			acousticCount++
		}
	}
	acousticProportion := float64(acousticCount) / float64(w.Samples())

	return Kinematics{
		MaxDepth:           maxDepth,
		DescentRate:        descentRate,
		AscentRate:         ascentRate,
		BottomTime:         bottomTime,
		MeanDBA:            meanDBA,
		AcousticProportion: acousticProportion,
	}
}

// accelMagnitude returns the Euclidean norm of the tri-axial acceleration
// at sample i.
func accelMagnitude(frame *telemetry.SensorFrame, i int) float64 {
	x, y, z := frame.AccX[i], frame.AccY[i], frame.AccZ[i]
	return math.Sqrt(x*x + y*y + z*z)
}
