package dive

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// optimalForagingProb is the success probability above which a dive
// contributes to the optimal foraging depth/duration estimate.
const optimalForagingProb = 0.5

// Aggregate folds the chronological dive record list and the surface
// summary into a deployment-level energetic model. Empty inputs yield zero
// defaults and an empty budget, never an error.
func Aggregate(records []Record, surface SurfaceSummary) EnergeticModel {
	model := EnergeticModel{
		BehavioralBudget: make(map[string]float64),
	}

	if len(records) == 0 {
		// No dives: the animal spent the whole recording at the surface.
		if surface.TotalSurfaceTime > 0 {
			model.SurfaceTimeFraction = 1.0
		}
		return model
	}

	var totalCost, totalSuccess, totalDiveTime float64
	counts := make(map[Behavior]int)
	depths := make([]float64, 0, len(records))

	var optDepthSum, optDurationSum float64
	optCount := 0

	for _, r := range records {
		totalCost += r.EnergyCost
		totalSuccess += r.Foraging.SuccessProbability
		totalDiveTime += r.Duration
		counts[r.Behavior]++
		depths = append(depths, r.MaxDepth)

		if r.Behavior == DeepForaging || r.Behavior == ShallowForaging {
			model.ForagingDives++
			if r.Foraging.SuccessProbability > optimalForagingProb {
				model.SuccessfulForagingDives++
			}
		}
		if r.Foraging.SuccessProbability > optimalForagingProb {
			optDepthSum += r.MaxDepth
			optDurationSum += r.Duration
			optCount++
		}
	}

	n := float64(len(records))
	model.TotalEnergyCost = totalCost
	model.MeanCostPerDive = totalCost / n
	model.ForagingSuccessRate = totalSuccess / n
	if totalCost > 0 {
		model.EnergyEfficiency = totalSuccess / totalCost
	}

	for b, c := range counts {
		model.BehavioralBudget[b.String()] = float64(c) / n
	}

	if total := totalDiveTime + surface.TotalSurfaceTime; total > 0 {
		model.DiveTimeFraction = totalDiveTime / total
		model.SurfaceTimeFraction = surface.TotalSurfaceTime / total
	}

	if optCount > 0 {
		model.OptimalForagingDepth = optDepthSum / float64(optCount)
		model.OptimalForagingDuration = optDurationSum / float64(optCount)
	}

	sort.Float64s(depths)
	model.P50Depth = stat.Quantile(0.50, stat.Empirical, depths, nil)
	model.P85Depth = stat.Quantile(0.85, stat.Empirical, depths, nil)
	model.P98Depth = stat.Quantile(0.98, stat.Empirical, depths, nil)

	return model
}
