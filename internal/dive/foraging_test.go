package dive

import (
	"math"
	"testing"
)

func TestDetectForaging_QuietDive(t *testing.T) {
	// Constant depth, level acceleration, no acoustics: every indicator is
	// zero and so is the combined estimate.
	depth := make([]float64, 60)
	for i := range depth {
		depth[i] = 30
	}
	frame := newTestFrame(depth, 1.0)

	f := DetectForaging(frame, Window{Start: 0, End: 60})

	if f.ClickRate != 0 || f.BuzzEvents != 0 || f.RapidManeuvers != 0 || f.DepthVariation != 0 {
		t.Errorf("expected all-zero indicators, got %+v", f)
	}
	if f.SuccessProbability != 0 {
		t.Errorf("SuccessProbability = %v, want 0", f.SuccessProbability)
	}
	if f.ForagingIntensity != 0 {
		t.Errorf("ForagingIntensity = %v, want 0", f.ForagingIntensity)
	}
}

func TestDetectForaging_BuzzEvents(t *testing.T) {
	depth := make([]float64, 8)
	frame := newTestFrame(depth, 1.0)
	// Three maximal runs of activity: [0,1], [3], [6,7].
	for _, i := range []int{0, 1, 3, 6, 7} {
		frame.Acoustic[i] = true
	}

	f := DetectForaging(frame, Window{Start: 0, End: 8})
	if f.BuzzEvents != 3 {
		t.Errorf("BuzzEvents = %d, want 3", f.BuzzEvents)
	}
	// 5 of 8 samples active.
	if got, want := f.ClickRate, 62.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("ClickRate = %v, want %v", got, want)
	}
}

func TestDetectForaging_RapidManeuvers(t *testing.T) {
	depth := make([]float64, 5)
	frame := newTestFrame(depth, 1.0)
	// Magnitudes 1, 4, 1, 4, 1: every consecutive change is 3 g.
	frame.AccZ = []float64{1, 4, 1, 4, 1}

	f := DetectForaging(frame, Window{Start: 0, End: 5})
	if f.RapidManeuvers != 4 {
		t.Errorf("RapidManeuvers = %d, want 4", f.RapidManeuvers)
	}
}

func TestDetectForaging_ShortWindowHasNoDepthVariation(t *testing.T) {
	frame := newTestFrame([]float64{10, 40}, 1.0)

	f := DetectForaging(frame, Window{Start: 0, End: 2})
	if f.DepthVariation != 0 {
		t.Errorf("DepthVariation = %v, want 0 for a 2-sample window", f.DepthVariation)
	}
}

func TestDetectForaging_Bounded(t *testing.T) {
	// Saturate every indicator; the combined estimates must stay in [0,1].
	n := 100
	depth := make([]float64, n)
	frame := newTestFrame(depth, 1.0)
	for i := 0; i < n; i++ {
		depth[i] = float64((i % 2) * 50)
		frame.Acoustic[i] = i%2 == 0
		frame.AccZ[i] = float64((i % 2) * 10)
	}

	f := DetectForaging(frame, Window{Start: 0, End: n})

	if f.SuccessProbability < 0 || f.SuccessProbability > 1 {
		t.Errorf("SuccessProbability = %v, want in [0,1]", f.SuccessProbability)
	}
	if f.ForagingIntensity < 0 || f.ForagingIntensity > 1 {
		t.Errorf("ForagingIntensity = %v, want in [0,1]", f.ForagingIntensity)
	}
	if f.SuccessProbability != 1 {
		t.Errorf("SuccessProbability = %v, want 1 when every indicator saturates", f.SuccessProbability)
	}
}
