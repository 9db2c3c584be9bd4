package dive

import (
	"fmt"
	"sort"
)

// Insights renders a short human-readable summary of a deployment from its
// aggregate model and dive list. Order is stable for a given report.
func Insights(model EnergeticModel, records []Record, surface SurfaceSummary) []string {
	var out []string

	if len(records) == 0 {
		out = append(out, "No dives detected; the animal remained at the surface for the whole recording.")
		if surface.SurfacePeriods > 0 {
			out = append(out, fmt.Sprintf("Surface activity: %d surface periods totalling %.0f s.",
				surface.SurfacePeriods, surface.TotalSurfaceTime))
		}
		return out
	}

	out = append(out, fmt.Sprintf("Recorded %d dives; deepest P98 depth %.1f m, median %.1f m.",
		len(records), model.P98Depth, model.P50Depth))

	if label, fraction := dominantBehavior(model.BehavioralBudget); label != "" {
		out = append(out, fmt.Sprintf("Dominant behaviour: %s (%.0f%% of dives).", label, fraction*100))
	}

	if model.ForagingDives > 0 {
		out = append(out, fmt.Sprintf("Foraging: %d foraging dives, %d judged successful (success rate %.2f).",
			model.ForagingDives, model.SuccessfulForagingDives, model.ForagingSuccessRate))
		if model.OptimalForagingDepth > 0 {
			out = append(out, fmt.Sprintf("Optimal foraging around %.0f m for %.0f s per dive.",
				model.OptimalForagingDepth, model.OptimalForagingDuration))
		}
	} else {
		out = append(out, "No foraging dives observed in this deployment.")
	}

	out = append(out, fmt.Sprintf("Energy: total cost %.1f units, %.2f per dive, efficiency %.3f.",
		model.TotalEnergyCost, model.MeanCostPerDive, model.EnergyEfficiency))

	out = append(out, fmt.Sprintf("Time budget: %.0f%% diving, %.0f%% at surface; breathing rate %.1f surfacings/hour.",
		model.DiveTimeFraction*100, model.SurfaceTimeFraction*100, surface.BreathingRate))

	return out
}

// dominantBehavior returns the budget entry with the largest fraction.
// Ties break alphabetically so output is deterministic.
func dominantBehavior(budget map[string]float64) (string, float64) {
	labels := make([]string, 0, len(budget))
	for label := range budget {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best := ""
	bestFraction := 0.0
	for _, label := range labels {
		if budget[label] > bestFraction {
			best = label
			bestFraction = budget[label]
		}
	}
	return best, bestFraction
}
