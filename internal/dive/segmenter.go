package dive

import (
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// Segment scans the depth channel for intervals where depth exceeds
// depthThreshold and returns the ordered, non-overlapping windows that last
// at least minDuration seconds.
//
// Boundary policy: a recording that begins mid-dive contributes a falling
// edge before any rising edge; that partial dive is discarded. Likewise a
// recording that ends mid-dive leaves a trailing unmatched rising edge,
// which is discarded. Zero crossings produce an empty slice, not an error.
func Segment(frame *telemetry.SensorFrame, depthThreshold, minDuration float64) []Window {
	submerged := make([]bool, frame.Len())
	for i, d := range frame.Depth {
		submerged[i] = d > depthThreshold
	}

	var starts, ends []int
	prev := false
	for i, s := range submerged {
		if s && !prev {
			starts = append(starts, i)
		}
		if !s && prev {
			ends = append(ends, i)
		}
		prev = s
	}

	// Recording began mid-dive: the opening run is a partial dive whose
	// descent predates the recording, so its start (and its falling edge)
	// must not count.
	if len(starts) > 0 && submerged[0] {
		starts = starts[1:]
	}
	if len(ends) > 0 && (len(starts) == 0 || ends[0] <= starts[0]) {
		ends = ends[1:]
	}
	// Recording ended mid-dive: drop the trailing unmatched start.
	if len(starts) > len(ends) {
		starts = starts[:len(ends)]
	}

	var windows []Window
	for i := range starts {
		w := Window{Start: starts[i], End: ends[i]}
		if w.Duration(frame.SampleRate) >= minDuration {
			windows = append(windows, w)
		}
	}
	return windows
}
