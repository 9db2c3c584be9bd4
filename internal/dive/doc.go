// Package dive turns a validated tag recording into a structured dive
// analysis: threshold-based segmentation of the depth channel, per-dive
// kinematics, behaviour classification, foraging-success estimation,
// energetic cost, surface behaviour, and a deployment-level energetic
// model.
//
// The whole pipeline is a pure function of an immutable
// telemetry.SensorFrame and a validated config.AnalysisConfig; running it
// twice over the same inputs yields identical reports. Numeric edge cases
// (empty subsets, zero-length phases) resolve to documented defaults
// rather than errors; only configuration and input-shape problems are
// surfaced, and those fail before any analysis runs.
package dive
