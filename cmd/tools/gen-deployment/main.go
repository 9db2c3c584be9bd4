// Command gen-deployment generates synthetic tag recordings for testing
// the analysis pipeline without real tag data. Output is deterministic for
// a given seed.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

var (
	output   = flag.String("o", "deployment.json", "output path")
	tagID    = flag.String("tag", "sim-000", "tag identifier")
	dives    = flag.Int("dives", 12, "number of dives to synthesise")
	rate     = flag.Float64("rate", 1.0, "sampling rate (Hz)")
	maxDepth = flag.Float64("depth", 120.0, "maximum dive depth (m)")
	seed     = flag.Int64("seed", 42, "random seed")
)

func main() {
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	rec := synthesize(rng, *tagID, *dives, *rate, *maxDepth)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal recording: %v", err)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("failed to write recording: %v", err)
	}
	log.Printf("✓ Created: %s (%d samples, %d dives)", *output, len(rec.Depth), *dives)
}

// synthesize builds a recording of alternating surface intervals and
// parabolic dive profiles with plausible acceleration and acoustics.
func synthesize(rng *rand.Rand, tag string, diveCount int, rateHz, depthCeil float64) *telemetry.DeploymentRecord {
	rec := &telemetry.DeploymentRecord{
		TagID:          tag,
		SamplingRateHz: rateHz,
	}

	appendSample := func(depth, activity float64, acoustic bool) {
		i := len(rec.Depth)
		rec.Timestamps = append(rec.Timestamps, float64(i)/rateHz)
		rec.Depth = append(rec.Depth, depth)
		rec.AccelerationX = append(rec.AccelerationX, rng.NormFloat64()*activity)
		rec.AccelerationY = append(rec.AccelerationY, rng.NormFloat64()*activity)
		rec.AccelerationZ = append(rec.AccelerationZ, 1.0+rng.NormFloat64()*activity)
		rec.AcousticActivity = append(rec.AcousticActivity, acoustic)
	}

	surfaceSamples := func() int { return int((30 + rng.Float64()*90) * rateHz) }

	for d := 0; d < diveCount; d++ {
		for i, n := 0, surfaceSamples(); i < n; i++ {
			appendSample(rng.Float64()*1.5, 0.1, rng.Float64() < 0.05)
		}

		target := 10 + rng.Float64()*(depthCeil-10)
		duration := 60 + rng.Float64()*240 // seconds
		n := int(duration * rateHz)
		foraging := rng.Float64() < 0.5
		for i := 0; i < n; i++ {
			// Parabolic profile: surface → target depth → surface.
			phase := float64(i) / float64(n-1)
			depth := target * 4 * phase * (1 - phase)
			atBottom := depth > 0.75*target

			activity := 0.15
			acoustic := rng.Float64() < 0.05
			if foraging && atBottom {
				activity = 0.9
				acoustic = rng.Float64() < 0.6
			}
			appendSample(depth, activity, acoustic)
		}
	}
	for i, n := 0, surfaceSamples(); i < n; i++ {
		appendSample(rng.Float64()*1.5, 0.1, false)
	}

	return rec
}
