package telemetry

import (
	"errors"
	"testing"
)

func validRecord() *DeploymentRecord {
	return &DeploymentRecord{
		TagID:            "test-tag",
		Timestamps:       []float64{0, 1, 2, 3},
		Depth:            []float64{0, 10, 10, 0},
		AccelerationX:    []float64{0, 0.1, 0.2, 0},
		AccelerationY:    []float64{0, 0.1, 0.2, 0},
		AccelerationZ:    []float64{1, 1, 1, 1},
		AcousticActivity: []bool{false, true, true, false},
		SamplingRateHz:   1.0,
	}
}

func TestNormalize_ValidRecord(t *testing.T) {
	frame, err := Normalize(validRecord(), NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if frame.Len() != 4 {
		t.Errorf("Len() = %d, want 4", frame.Len())
	}
	if frame.Duration() != 4.0 {
		t.Errorf("Duration() = %v, want 4.0", frame.Duration())
	}
}

func TestNormalize_BadSampleRate(t *testing.T) {
	rec := validRecord()
	rec.SamplingRateHz = 0

	_, err := Normalize(rec, NormalizeOptions{})
	if !errors.Is(err, ErrBadSampleRate) {
		t.Errorf("expected ErrBadSampleRate, got %v", err)
	}
}

func TestNormalize_EmptyRecording(t *testing.T) {
	rec := validRecord()
	rec.Depth = nil

	_, err := Normalize(rec, NormalizeOptions{})
	if !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("expected ErrEmptyRecording, got %v", err)
	}
}

func TestNormalize_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DeploymentRecord)
		channel string
	}{
		{"timestamps", func(r *DeploymentRecord) { r.Timestamps = r.Timestamps[:2] }, "timestamps"},
		{"acceleration_x", func(r *DeploymentRecord) { r.AccelerationX = append(r.AccelerationX, 0) }, "acceleration_x"},
		{"acoustic", func(r *DeploymentRecord) { r.AcousticActivity = r.AcousticActivity[:1] }, "acoustic_activity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			_, err := Normalize(rec, NormalizeOptions{})
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected ShapeError, got %v", err)
			}
			if shapeErr.Channel != tt.channel {
				t.Errorf("Channel = %q, want %q", shapeErr.Channel, tt.channel)
			}
		})
	}
}

func TestNormalize_MissingChannelReject(t *testing.T) {
	rec := validRecord()
	rec.AcousticActivity = nil

	_, err := Normalize(rec, NormalizeOptions{AcousticPolicy: Reject})
	var missing *MissingChannelError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingChannelError, got %v", err)
	}
	if missing.Channel != "acoustic_activity" {
		t.Errorf("Channel = %q, want acoustic_activity", missing.Channel)
	}
}

func TestNormalize_MissingChannelZeroFill(t *testing.T) {
	rec := validRecord()
	rec.AcousticActivity = nil
	rec.AccelerationX = nil
	rec.AccelerationY = nil
	rec.AccelerationZ = nil

	frame, err := Normalize(rec, NormalizeOptions{
		AccelerationPolicy: ZeroFill,
		AcousticPolicy:     ZeroFill,
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	for i := 0; i < frame.Len(); i++ {
		if frame.AccX[i] != 0 || frame.AccY[i] != 0 || frame.AccZ[i] != 0 {
			t.Fatalf("sample %d: expected zero-filled acceleration", i)
		}
		if frame.Acoustic[i] {
			t.Fatalf("sample %d: expected all-false acoustics", i)
		}
	}
}

func TestNormalize_ReconstructsTimestamps(t *testing.T) {
	rec := validRecord()
	rec.Timestamps = nil
	rec.SamplingRateHz = 2.0

	frame, err := Normalize(rec, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []float64{0, 0.5, 1.0, 1.5}
	for i, ts := range frame.Timestamps {
		if ts != want[i] {
			t.Errorf("Timestamps[%d] = %v, want %v", i, ts, want[i])
		}
	}
}
