package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DeploymentRecord is the raw input contract consumed from an acquisition
// or simulation collaborator. Channels are optional at this boundary; the
// normaliser decides, per caller policy, whether an absent channel is an
// error or an explicit zero-fill.
type DeploymentRecord struct {
	TagID            string    `json:"tag_id"`
	Timestamps       []float64 `json:"timestamps,omitempty"`
	Depth            []float64 `json:"depth"`
	AccelerationX    []float64 `json:"acceleration_x,omitempty"`
	AccelerationY    []float64 `json:"acceleration_y,omitempty"`
	AccelerationZ    []float64 `json:"acceleration_z,omitempty"`
	AcousticActivity []bool    `json:"acoustic_activity,omitempty"`
	SamplingRateHz   float64   `json:"sampling_rate_hz"`
}

// LoadDeploymentRecord reads a JSON deployment recording from disk.
// The file must have a .json extension.
func LoadDeploymentRecord(path string) (*DeploymentRecord, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("deployment file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	var rec DeploymentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse deployment JSON: %w", err)
	}

	return &rec, nil
}
