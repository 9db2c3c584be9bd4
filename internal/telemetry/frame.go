// Package telemetry defines the validated sensor frame consumed by the dive
// analysis pipeline and the normalisation layer that produces it from raw
// tag recordings.
package telemetry

import (
	"errors"
	"fmt"
)

// SensorFrame is a channel-aligned view of one tag deployment: equal-length
// sample sequences plus the sampling rate. A frame is constructed once by
// the normaliser and treated as immutable afterwards; nothing in the
// pipeline writes to its slices.
type SensorFrame struct {
	Timestamps []float64 // seconds since deployment start
	Depth      []float64 // metres, positive down
	AccX       []float64 // body-frame acceleration, g
	AccY       []float64
	AccZ       []float64
	Acoustic   []bool // acoustic-activity flag per sample

	SampleRate float64 // Hz
}

// Len returns the number of samples in the frame.
func (f *SensorFrame) Len() int { return len(f.Depth) }

// Duration returns the total recording duration in seconds.
func (f *SensorFrame) Duration() float64 {
	if f.SampleRate <= 0 {
		return 0
	}
	return float64(len(f.Depth)) / f.SampleRate
}

// ShapeError reports a channel whose length disagrees with the rest of the
// recording. It is returned before any segmentation runs.
type ShapeError struct {
	Channel string
	Got     int
	Want    int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("channel %s has %d samples, want %d", e.Channel, e.Got, e.Want)
}

// MissingChannelError reports a required channel absent from the input
// under a Reject policy.
type MissingChannelError struct {
	Channel string
}

func (e *MissingChannelError) Error() string {
	return fmt.Sprintf("required channel %s is missing", e.Channel)
}

// ErrBadSampleRate is returned when the recording declares a non-positive
// sampling rate.
var ErrBadSampleRate = errors.New("sampling rate must be positive")

// ErrEmptyRecording is returned when the recording contains no samples.
var ErrEmptyRecording = errors.New("recording contains no samples")

// MissingChannelPolicy states what the normaliser does when an optional
// channel is absent from a recording. Callers must pick a policy; nothing
// is ever silently fabricated.
type MissingChannelPolicy int

const (
	// Reject fails normalisation with a MissingChannelError.
	Reject MissingChannelPolicy = iota
	// ZeroFill substitutes an all-zero (or all-false) channel. Use only
	// when downstream consumers understand the channel carries no signal.
	ZeroFill
)

// String returns the policy name.
func (p MissingChannelPolicy) String() string {
	switch p {
	case Reject:
		return "reject"
	case ZeroFill:
		return "zero_fill"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// NormalizeOptions controls per-channel fallback behaviour. Depth and
// timestamps are always required; acceleration and acoustics may be
// zero-filled if the caller opts in.
type NormalizeOptions struct {
	AccelerationPolicy MissingChannelPolicy
	AcousticPolicy     MissingChannelPolicy
}

// Normalize validates a raw DeploymentRecord and produces a SensorFrame.
// All channel-length mismatches are detected here, before any analysis
// runs, and reported with the offending channel name.
func Normalize(rec *DeploymentRecord, opts NormalizeOptions) (*SensorFrame, error) {
	if rec.SamplingRateHz <= 0 {
		return nil, fmt.Errorf("deployment %s: %w (got %f)", rec.TagID, ErrBadSampleRate, rec.SamplingRateHz)
	}
	if len(rec.Depth) == 0 {
		return nil, fmt.Errorf("deployment %s: %w", rec.TagID, ErrEmptyRecording)
	}

	n := len(rec.Depth)

	timestamps := rec.Timestamps
	if timestamps == nil {
		// Timestamps are derivable from the sampling rate, so an absent
		// channel is reconstructed rather than rejected.
		timestamps = make([]float64, n)
		for i := range timestamps {
			timestamps[i] = float64(i) / rec.SamplingRateHz
		}
	} else if len(timestamps) != n {
		return nil, &ShapeError{Channel: "timestamps", Got: len(timestamps), Want: n}
	}

	accX, err := normalizeFloatChannel("acceleration_x", rec.AccelerationX, n, opts.AccelerationPolicy)
	if err != nil {
		return nil, err
	}
	accY, err := normalizeFloatChannel("acceleration_y", rec.AccelerationY, n, opts.AccelerationPolicy)
	if err != nil {
		return nil, err
	}
	accZ, err := normalizeFloatChannel("acceleration_z", rec.AccelerationZ, n, opts.AccelerationPolicy)
	if err != nil {
		return nil, err
	}

	acoustic := rec.AcousticActivity
	if acoustic == nil {
		if opts.AcousticPolicy == Reject {
			return nil, &MissingChannelError{Channel: "acoustic_activity"}
		}
		acoustic = make([]bool, n)
	} else if len(acoustic) != n {
		return nil, &ShapeError{Channel: "acoustic_activity", Got: len(acoustic), Want: n}
	}

	return &SensorFrame{
		Timestamps: timestamps,
		Depth:      rec.Depth,
		AccX:       accX,
		AccY:       accY,
		AccZ:       accZ,
		Acoustic:   acoustic,
		SampleRate: rec.SamplingRateHz,
	}, nil
}

func normalizeFloatChannel(name string, ch []float64, n int, policy MissingChannelPolicy) ([]float64, error) {
	if ch == nil {
		if policy == Reject {
			return nil, &MissingChannelError{Channel: name}
		}
		return make([]float64, n), nil
	}
	if len(ch) != n {
		return nil, &ShapeError{Channel: name, Got: len(ch), Want: n}
	}
	return ch, nil
}
