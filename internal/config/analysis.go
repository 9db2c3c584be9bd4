package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
// This is the single source of truth for all default analysis thresholds.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig holds the tunable thresholds for dive segmentation and
// behavioural analysis. Fields are pointers so a partial JSON file can
// override only some values; the Get* accessors supply defaults for the
// rest. An AnalysisConfig is immutable once validated: the pipeline takes
// it by value at invocation time and never mutates it, so one process can
// analyse many deployments concurrently with different settings.
type AnalysisConfig struct {
	// Segmentation params
	DepthThresholdM   *float64 `json:"depth_threshold_m,omitempty"`
	SurfaceThresholdM *float64 `json:"surface_threshold_m,omitempty"`
	MinDiveDurationS  *float64 `json:"min_dive_duration_s,omitempty"`

	// Pipeline params
	DiveWorkers *int `json:"dive_workers,omitempty"`

	// Reporting params
	DepthUnits *string `json:"depth_units,omitempty"` // "m" or "ft"
}

// EmptyAnalysisConfig returns an AnalysisConfig with all fields set to nil.
// Use LoadAnalysisConfig to load actual values from a defaults file.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid and mutually
// consistent. Threshold errors surface here, at construction, never during
// analysis.
func (c *AnalysisConfig) Validate() error {
	if c.DepthThresholdM != nil && *c.DepthThresholdM <= 0 {
		return fmt.Errorf("depth_threshold_m must be positive, got %f", *c.DepthThresholdM)
	}
	if c.SurfaceThresholdM != nil && *c.SurfaceThresholdM < 0 {
		return fmt.Errorf("surface_threshold_m must be non-negative, got %f", *c.SurfaceThresholdM)
	}
	if c.GetSurfaceThresholdM() >= c.GetDepthThresholdM() {
		return fmt.Errorf("surface_threshold_m (%f) must be less than depth_threshold_m (%f)",
			c.GetSurfaceThresholdM(), c.GetDepthThresholdM())
	}
	if c.MinDiveDurationS != nil && *c.MinDiveDurationS <= 0 {
		return fmt.Errorf("min_dive_duration_s must be positive, got %f", *c.MinDiveDurationS)
	}
	if c.DiveWorkers != nil && *c.DiveWorkers < 1 {
		return fmt.Errorf("dive_workers must be at least 1, got %d", *c.DiveWorkers)
	}
	if c.DepthUnits != nil && *c.DepthUnits != "m" && *c.DepthUnits != "ft" {
		return fmt.Errorf("depth_units must be \"m\" or \"ft\", got %q", *c.DepthUnits)
	}
	return nil
}

// GetDepthThresholdM returns the dive detection depth threshold or the default.
func (c *AnalysisConfig) GetDepthThresholdM() float64 {
	if c.DepthThresholdM == nil {
		return 5.0
	}
	return *c.DepthThresholdM
}

// GetSurfaceThresholdM returns the surfacing depth threshold or the default.
func (c *AnalysisConfig) GetSurfaceThresholdM() float64 {
	if c.SurfaceThresholdM == nil {
		return 2.0
	}
	return *c.SurfaceThresholdM
}

// GetMinDiveDurationS returns the minimum dive duration or the default.
func (c *AnalysisConfig) GetMinDiveDurationS() float64 {
	if c.MinDiveDurationS == nil {
		return 30.0
	}
	return *c.MinDiveDurationS
}

// GetDiveWorkers returns the per-dive analysis worker count or the default.
func (c *AnalysisConfig) GetDiveWorkers() int {
	if c.DiveWorkers == nil {
		return 4
	}
	return *c.DiveWorkers
}

// GetDepthUnits returns the reporting depth units or the default.
func (c *AnalysisConfig) GetDepthUnits() string {
	if c.DepthUnits == nil {
		return "m"
	}
	return *c.DepthUnits
}
