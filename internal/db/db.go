// Package db persists analysed deployments to sqlite: the deployment
// catalogue, per-dive records, surface summaries, and energetic models.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GilRaitses/wake-sub000/internal/dive"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if necessary) the sqlite database at path and
// ensures the base schema exists. Schema evolution beyond the base tables
// is handled by the migrations under migrations/ (see migrate.go).
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS deployments (
			deployment_id     TEXT PRIMARY KEY,
			tag_id            TEXT,
			source_file       TEXT,
			sampling_rate_hz  DOUBLE,
			sample_count      BIGINT,
			duration_s        DOUBLE,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS dive_records (
			deployment_id       TEXT,
			dive_id             BIGINT,
			start_time_s        DOUBLE,
			end_time_s          DOUBLE,
			duration_s          DOUBLE,
			max_depth_m         DOUBLE,
			descent_rate_mps    DOUBLE,
			ascent_rate_mps     DOUBLE,
			bottom_time_s       DOUBLE,
			mean_dba_g          DOUBLE,
			acoustic_proportion DOUBLE,
			behavior            TEXT,
			behavioral_context  TEXT,
			click_rate          DOUBLE,
			buzz_events         BIGINT,
			rapid_maneuvers     BIGINT,
			depth_variation_m   DOUBLE,
			success_probability DOUBLE,
			foraging_intensity  DOUBLE,
			energy_cost         DOUBLE,
			dive_efficiency     DOUBLE,
			PRIMARY KEY (deployment_id, dive_id)
		);
		CREATE TABLE IF NOT EXISTS surface_summaries (
			deployment_id           TEXT PRIMARY KEY,
			total_surface_time_s    DOUBLE,
			surface_periods         BIGINT,
			mean_period_duration_s  DOUBLE,
			breathing_rate_per_hour DOUBLE,
			surface_activity_level  DOUBLE
		);
		CREATE TABLE IF NOT EXISTS energetic_models (
			deployment_id               TEXT PRIMARY KEY,
			total_energy_cost           DOUBLE,
			mean_cost_per_dive          DOUBLE,
			foraging_success_rate       DOUBLE,
			energy_efficiency           DOUBLE,
			dive_time_fraction          DOUBLE,
			surface_time_fraction       DOUBLE,
			optimal_foraging_depth_m    DOUBLE,
			optimal_foraging_duration_s DOUBLE,
			foraging_dives              BIGINT,
			successful_foraging_dives   BIGINT,
			p50_depth_m                 DOUBLE,
			p85_depth_m                 DOUBLE,
			p98_depth_m                 DOUBLE,
			behavioral_budget           TEXT,
			insights                    TEXT
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Deployment is one catalogued tag deployment.
type Deployment struct {
	ID             string    `json:"deployment_id"`
	TagID          string    `json:"tag_id"`
	SourceFile     string    `json:"source_file"`
	SamplingRateHz float64   `json:"sampling_rate_hz"`
	SampleCount    int64     `json:"sample_count"`
	DurationS      float64   `json:"duration_s"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveReport stores a deployment and its full analysis in one transaction.
// Re-saving the same deployment ID replaces the previous analysis.
func (db *DB) SaveReport(ctx context.Context, dep Deployment, report *dive.Report) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO deployments (
			deployment_id, tag_id, source_file, sampling_rate_hz, sample_count, duration_s
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(deployment_id) DO UPDATE SET
			tag_id = excluded.tag_id,
			source_file = excluded.source_file,
			sampling_rate_hz = excluded.sampling_rate_hz,
			sample_count = excluded.sample_count,
			duration_s = excluded.duration_s`,
		dep.ID, dep.TagID, dep.SourceFile, dep.SamplingRateHz, dep.SampleCount, dep.DurationS,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert deployment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dive_records WHERE deployment_id = ?`, dep.ID); err != nil {
		return fmt.Errorf("failed to clear previous dive records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dive_records (
			deployment_id, dive_id, start_time_s, end_time_s, duration_s,
			max_depth_m, descent_rate_mps, ascent_rate_mps, bottom_time_s,
			mean_dba_g, acoustic_proportion, behavior, behavioral_context,
			click_rate, buzz_events, rapid_maneuvers, depth_variation_m,
			success_probability, foraging_intensity, energy_cost, dive_efficiency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare dive insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range report.Dives {
		_, err := stmt.ExecContext(ctx,
			dep.ID, r.DiveID, r.StartTime, r.EndTime, r.Duration,
			r.MaxDepth, r.DescentRate, r.AscentRate, r.BottomTime,
			r.MeanDBA, r.AcousticProportion, r.Behavior.String(), r.Context.String(),
			r.Foraging.ClickRate, r.Foraging.BuzzEvents, r.Foraging.RapidManeuvers,
			r.Foraging.DepthVariation, r.Foraging.SuccessProbability,
			r.Foraging.ForagingIntensity, r.EnergyCost, r.DiveEfficiency,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dive %d: %w", r.DiveID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO surface_summaries (
			deployment_id, total_surface_time_s, surface_periods,
			mean_period_duration_s, breathing_rate_per_hour, surface_activity_level
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(deployment_id) DO UPDATE SET
			total_surface_time_s = excluded.total_surface_time_s,
			surface_periods = excluded.surface_periods,
			mean_period_duration_s = excluded.mean_period_duration_s,
			breathing_rate_per_hour = excluded.breathing_rate_per_hour,
			surface_activity_level = excluded.surface_activity_level`,
		dep.ID, report.Surface.TotalSurfaceTime, report.Surface.SurfacePeriods,
		report.Surface.MeanPeriodDuration, report.Surface.BreathingRate,
		report.Surface.ActivityLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert surface summary: %w", err)
	}

	budgetJSON, err := json.Marshal(report.Model.BehavioralBudget)
	if err != nil {
		return fmt.Errorf("failed to marshal behavioural budget: %w", err)
	}
	insightsJSON, err := json.Marshal(report.Insights)
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}

	m := report.Model
	_, err = tx.ExecContext(ctx, `
		INSERT INTO energetic_models (
			deployment_id, total_energy_cost, mean_cost_per_dive,
			foraging_success_rate, energy_efficiency,
			dive_time_fraction, surface_time_fraction,
			optimal_foraging_depth_m, optimal_foraging_duration_s,
			foraging_dives, successful_foraging_dives,
			p50_depth_m, p85_depth_m, p98_depth_m,
			behavioral_budget, insights
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(deployment_id) DO UPDATE SET
			total_energy_cost = excluded.total_energy_cost,
			mean_cost_per_dive = excluded.mean_cost_per_dive,
			foraging_success_rate = excluded.foraging_success_rate,
			energy_efficiency = excluded.energy_efficiency,
			dive_time_fraction = excluded.dive_time_fraction,
			surface_time_fraction = excluded.surface_time_fraction,
			optimal_foraging_depth_m = excluded.optimal_foraging_depth_m,
			optimal_foraging_duration_s = excluded.optimal_foraging_duration_s,
			foraging_dives = excluded.foraging_dives,
			successful_foraging_dives = excluded.successful_foraging_dives,
			p50_depth_m = excluded.p50_depth_m,
			p85_depth_m = excluded.p85_depth_m,
			p98_depth_m = excluded.p98_depth_m,
			behavioral_budget = excluded.behavioral_budget,
			insights = excluded.insights`,
		dep.ID, m.TotalEnergyCost, m.MeanCostPerDive,
		m.ForagingSuccessRate, m.EnergyEfficiency,
		m.DiveTimeFraction, m.SurfaceTimeFraction,
		m.OptimalForagingDepth, m.OptimalForagingDuration,
		m.ForagingDives, m.SuccessfulForagingDives,
		m.P50Depth, m.P85Depth, m.P98Depth,
		string(budgetJSON), string(insightsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert energetic model: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// ListDeployments returns the deployment catalogue, newest first.
func (db *DB) ListDeployments(ctx context.Context) ([]Deployment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT deployment_id, tag_id, source_file, sampling_rate_hz,
		       sample_count, duration_s, created_at
		FROM deployments
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	defer rows.Close()

	var deps []Deployment
	for rows.Next() {
		var d Deployment
		if err := rows.Scan(&d.ID, &d.TagID, &d.SourceFile, &d.SamplingRateHz,
			&d.SampleCount, &d.DurationS, &d.CreatedAt); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

// GetDeployment retrieves one deployment by ID.
func (db *DB) GetDeployment(ctx context.Context, id string) (*Deployment, error) {
	var d Deployment
	err := db.QueryRowContext(ctx, `
		SELECT deployment_id, tag_id, source_file, sampling_rate_hz,
		       sample_count, duration_s, created_at
		FROM deployments
		WHERE deployment_id = ?`, id).Scan(
		&d.ID, &d.TagID, &d.SourceFile, &d.SamplingRateHz,
		&d.SampleCount, &d.DurationS, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("deployment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DiveRecords returns all dive records for a deployment in chronological
// order.
func (db *DB) DiveRecords(ctx context.Context, deploymentID string) ([]dive.Record, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT dive_id, start_time_s, end_time_s, duration_s,
		       max_depth_m, descent_rate_mps, ascent_rate_mps, bottom_time_s,
		       mean_dba_g, acoustic_proportion, behavior, behavioral_context,
		       click_rate, buzz_events, rapid_maneuvers, depth_variation_m,
		       success_probability, foraging_intensity, energy_cost, dive_efficiency
		FROM dive_records
		WHERE deployment_id = ?
		ORDER BY start_time_s`, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dive records: %w", err)
	}
	defer rows.Close()

	var records []dive.Record
	for rows.Next() {
		var r dive.Record
		var behavior, context string
		if err := rows.Scan(&r.DiveID, &r.StartTime, &r.EndTime, &r.Duration,
			&r.MaxDepth, &r.DescentRate, &r.AscentRate, &r.BottomTime,
			&r.MeanDBA, &r.AcousticProportion, &behavior, &context,
			&r.Foraging.ClickRate, &r.Foraging.BuzzEvents, &r.Foraging.RapidManeuvers,
			&r.Foraging.DepthVariation, &r.Foraging.SuccessProbability,
			&r.Foraging.ForagingIntensity, &r.EnergyCost, &r.DiveEfficiency); err != nil {
			return nil, err
		}
		if r.Behavior, err = dive.ParseBehavior(behavior); err != nil {
			return nil, fmt.Errorf("dive %d: %w", r.DiveID, err)
		}
		if r.Context, err = dive.ParseContext(context); err != nil {
			return nil, fmt.Errorf("dive %d: %w", r.DiveID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetModel retrieves the stored energetic model and insights for a
// deployment.
func (db *DB) GetModel(ctx context.Context, deploymentID string) (*dive.EnergeticModel, []string, error) {
	var m dive.EnergeticModel
	var budgetJSON, insightsJSON string
	err := db.QueryRowContext(ctx, `
		SELECT total_energy_cost, mean_cost_per_dive,
		       foraging_success_rate, energy_efficiency,
		       dive_time_fraction, surface_time_fraction,
		       optimal_foraging_depth_m, optimal_foraging_duration_s,
		       foraging_dives, successful_foraging_dives,
		       p50_depth_m, p85_depth_m, p98_depth_m,
		       behavioral_budget, insights
		FROM energetic_models
		WHERE deployment_id = ?`, deploymentID).Scan(
		&m.TotalEnergyCost, &m.MeanCostPerDive,
		&m.ForagingSuccessRate, &m.EnergyEfficiency,
		&m.DiveTimeFraction, &m.SurfaceTimeFraction,
		&m.OptimalForagingDepth, &m.OptimalForagingDuration,
		&m.ForagingDives, &m.SuccessfulForagingDives,
		&m.P50Depth, &m.P85Depth, &m.P98Depth,
		&budgetJSON, &insightsJSON)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("no energetic model for deployment %s", deploymentID)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal([]byte(budgetJSON), &m.BehavioralBudget); err != nil {
		return nil, nil, fmt.Errorf("failed to parse behavioural budget: %w", err)
	}
	var insights []string
	if err := json.Unmarshal([]byte(insightsJSON), &insights); err != nil {
		return nil, nil, fmt.Errorf("failed to parse insights: %w", err)
	}
	return &m, insights, nil
}

// GetSurfaceSummary retrieves the stored surface summary for a deployment.
func (db *DB) GetSurfaceSummary(ctx context.Context, deploymentID string) (*dive.SurfaceSummary, error) {
	var s dive.SurfaceSummary
	err := db.QueryRowContext(ctx, `
		SELECT total_surface_time_s, surface_periods, mean_period_duration_s,
		       breathing_rate_per_hour, surface_activity_level
		FROM surface_summaries
		WHERE deployment_id = ?`, deploymentID).Scan(
		&s.TotalSurfaceTime, &s.SurfacePeriods, &s.MeanPeriodDuration,
		&s.BreathingRate, &s.ActivityLevel)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no surface summary for deployment %s", deploymentID)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
