package dive

import (
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// AnalyzeSurface finds the maximal contiguous intervals where depth is below
// surfaceThreshold and summarises surfacing behaviour over the recording.
// Runs touching the start or end of the recording count as surface periods.
func AnalyzeSurface(frame *telemetry.SensorFrame, surfaceThreshold float64) SurfaceSummary {
	n := frame.Len()

	periods := 0
	shallowSamples := 0
	var activitySum float64
	prev := false
	for i := 0; i < n; i++ {
		shallow := frame.Depth[i] < surfaceThreshold
		if shallow {
			shallowSamples++
			mag := accelMagnitude(frame, i)
			activitySum += mag * mag
			if !prev {
				periods++
			}
		}
		prev = shallow
	}

	totalSurfaceTime := float64(shallowSamples) / frame.SampleRate

	meanPeriod := 0.0
	if periods > 0 {
		meanPeriod = totalSurfaceTime / float64(periods)
	}

	breathingRate := 0.0
	if recordingHours := frame.Duration() / 3600.0; recordingHours > 0 {
		breathingRate = float64(periods) / recordingHours
	}

	activityLevel := 0.0
	if shallowSamples > 0 {
		activityLevel = activitySum / float64(shallowSamples)
	}

	return SurfaceSummary{
		TotalSurfaceTime:   totalSurfaceTime,
		SurfacePeriods:     periods,
		MeanPeriodDuration: meanPeriod,
		BreathingRate:      breathingRate,
		ActivityLevel:      activityLevel,
	}
}
