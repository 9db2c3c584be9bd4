package dive

import (
	"context"
	"sort"
	"sync"

	"github.com/GilRaitses/wake-sub000/internal/config"
	"github.com/GilRaitses/wake-sub000/internal/telemetry"
)

// Pipeline runs the full dive analysis for one deployment: segmentation,
// per-dive analysis across a bounded worker pool, surface analysis, and
// aggregation. A Pipeline is safe for concurrent use across deployments;
// it holds only the immutable configuration.
type Pipeline struct {
	cfg *config.AnalysisConfig
}

// NewPipeline validates the configuration and returns a Pipeline.
func NewPipeline(cfg *config.AnalysisConfig) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg}, nil
}

// Run analyses one sensor frame and returns the deployment report.
// Per-dive work has no cross-dive dependency, so dives are fanned out over
// GetDiveWorkers goroutines; records land in their window's slot so the
// final list is already chronological. Cancellation via ctx discards the
// in-flight computation; there is no partial-result contract.
func (p *Pipeline) Run(ctx context.Context, tagID string, frame *telemetry.SensorFrame) (*Report, error) {
	windows := Segment(frame, p.cfg.GetDepthThresholdM(), p.cfg.GetMinDiveDurationS())

	// Surface analysis is independent of per-dive analysis; run it
	// alongside the dive workers.
	var surface SurfaceSummary
	surfaceDone := make(chan struct{})
	go func() {
		defer close(surfaceDone)
		surface = AnalyzeSurface(frame, p.cfg.GetSurfaceThresholdM())
	}()

	records := make([]Record, len(windows))
	jobs := make(chan int)

	workers := p.cfg.GetDiveWorkers()
	if workers > len(windows) && len(windows) > 0 {
		workers = len(windows)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				records[idx] = p.analyzeDive(frame, windows[idx], idx)
			}
		}()
	}

dispatch:
	for i := range windows {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	<-surfaceDone

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Slot assignment already preserves window order, but downstream
	// consumers depend on chronology, so enforce it.
	sort.Slice(records, func(i, j int) bool { return records[i].StartTime < records[j].StartTime })

	model := Aggregate(records, surface)

	return &Report{
		TagID:    tagID,
		Dives:    records,
		Surface:  surface,
		Model:    model,
		Insights: Insights(model, records, surface),
	}, nil
}

// analyzeDive builds the full record for one dive window.
func (p *Pipeline) analyzeDive(frame *telemetry.SensorFrame, w Window, idx int) Record {
	k := AnalyzeWindow(frame, w)
	behavior := Classify(k)
	foraging := DetectForaging(frame, w)
	duration := w.Duration(frame.SampleRate)
	cost := EnergyCost(duration, k.MaxDepth, k.MeanDBA, behavior)

	return Record{
		DiveID:         idx + 1,
		StartTime:      frame.Timestamps[w.Start],
		EndTime:        frame.Timestamps[w.End-1],
		Duration:       duration,
		Kinematics:     k,
		Behavior:       behavior,
		Context:        DeriveContext(behavior, foraging.SuccessProbability, k.AcousticProportion),
		Foraging:       foraging,
		EnergyCost:     cost,
		DiveEfficiency: Efficiency(foraging.SuccessProbability, cost),
	}
}
