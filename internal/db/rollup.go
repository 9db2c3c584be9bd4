package db

import (
	"context"
	"fmt"
)

// BehaviorStats is one row of the per-behaviour rollup for a deployment.
type BehaviorStats struct {
	Behavior           string  `json:"behavior"`
	Dives              int64   `json:"dives"`
	MeanDepth          float64 `json:"mean_depth_m"`
	MaxDepth           float64 `json:"max_depth_m"`
	MeanDuration       float64 `json:"mean_duration_s"`
	MeanEnergyCost     float64 `json:"mean_energy_cost"`
	MeanSuccessProb    float64 `json:"mean_success_probability"`
}

// BehaviorRollup aggregates a deployment's dive records per behaviour
// label, ordered by dive count descending.
func (db *DB) BehaviorRollup(ctx context.Context, deploymentID string) ([]BehaviorStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			behavior,
			COUNT(*) AS dives,
			AVG(max_depth_m) AS mean_depth,
			MAX(max_depth_m) AS max_depth,
			AVG(duration_s) AS mean_duration,
			AVG(energy_cost) AS mean_cost,
			AVG(success_probability) AS mean_success
		FROM dive_records
		WHERE deployment_id = ?
		GROUP BY behavior
		ORDER BY dives DESC, behavior`, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute behaviour rollup: %w", err)
	}
	defer rows.Close()

	var stats []BehaviorStats
	for rows.Next() {
		var s BehaviorStats
		if err := rows.Scan(&s.Behavior, &s.Dives, &s.MeanDepth, &s.MaxDepth,
			&s.MeanDuration, &s.MeanEnergyCost, &s.MeanSuccessProb); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
