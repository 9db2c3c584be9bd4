package dive

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		k    Kinematics
		want Behavior
	}{
		{"surface social", Kinematics{MaxDepth: 5, AcousticProportion: 0.7, MeanDBA: 0.3}, SocialSurface},
		{"surface resting", Kinematics{MaxDepth: 5, AcousticProportion: 0.1, MeanDBA: 0.3}, Resting},
		{"surface travel", Kinematics{MaxDepth: 5, AcousticProportion: 0.1, MeanDBA: 0.8}, ShallowTravel},

		{"mid foraging", Kinematics{MaxDepth: 20, BottomTime: 40, AcousticProportion: 0.5}, ShallowForaging},
		{"mid travel", Kinematics{MaxDepth: 20, BottomTime: 10, AcousticProportion: 0.1, MeanDBA: 1.5}, ShallowTravel},
		{"mid exploration", Kinematics{MaxDepth: 20, BottomTime: 10, AcousticProportion: 0.1, MeanDBA: 0.5}, ShallowExploration},

		{"deep foraging", Kinematics{MaxDepth: 50, BottomTime: 70, AcousticProportion: 0.4}, DeepForaging},
		{"deep travel", Kinematics{MaxDepth: 50, BottomTime: 10, AcousticProportion: 0.1, MeanDBA: 1.0}, DeepTravel},
		{"deep exploration", Kinematics{MaxDepth: 50, BottomTime: 10, AcousticProportion: 0.1, MeanDBA: 0.2}, DeepExploration},

		{"very deep foraging", Kinematics{MaxDepth: 100, BottomTime: 130}, DeepForaging},
		{"very deep exploration", Kinematics{MaxDepth: 100, BottomTime: 60}, DeepExploration},

		// Band boundaries are inclusive on the lower edge: a 10 m dive is in
		// the mid band, not the surface band.
		{"boundary at 10m", Kinematics{MaxDepth: 10, MeanDBA: 0.3}, ShallowExploration},
		{"boundary at 30m", Kinematics{MaxDepth: 30, MeanDBA: 0.2}, DeepExploration},
		{"boundary at 80m", Kinematics{MaxDepth: 80, BottomTime: 60}, DeepExploration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.k); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Within a band the first matching row wins, so a dive satisfying both the
// foraging and travel conditions classifies as foraging.
func TestClassify_FirstMatchWins(t *testing.T) {
	k := Kinematics{MaxDepth: 50, BottomTime: 70, AcousticProportion: 0.4, MeanDBA: 1.5}
	if got := Classify(k); got != DeepForaging {
		t.Errorf("Classify() = %v, want deep_foraging", got)
	}
}

func TestDeriveContext(t *testing.T) {
	tests := []struct {
		name     string
		behavior Behavior
		success  float64
		acoustic float64
		want     Context
	}{
		{"successful foraging", DeepForaging, 0.6, 0.4, SuccessfulForaging},
		{"active foraging", ShallowForaging, 0.3, 0.4, ActiveForaging},
		{"foraging search", DeepForaging, 0.1, 0.4, ForagingSearch},
		{"success exactly at band edge", DeepForaging, 0.5, 0.4, ActiveForaging},
		{"coordinated travel", DeepTravel, 0, 0.4, CoordinatedTravel},
		{"individual travel", ShallowTravel, 0, 0.1, IndividualTravel},
		{"social interaction", SocialSurface, 0, 0.7, SocialInteraction},
		{"resting", Resting, 0, 0, RestingBehavior},
		{"exploratory", DeepExploration, 0, 0, ExploratoryBehavior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveContext(tt.behavior, tt.success, tt.acoustic); got != tt.want {
				t.Errorf("DeriveContext() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBehaviorRoundTrip(t *testing.T) {
	for _, b := range Behaviors {
		parsed, err := ParseBehavior(b.String())
		if err != nil {
			t.Fatalf("ParseBehavior(%q) failed: %v", b.String(), err)
		}
		if parsed != b {
			t.Errorf("ParseBehavior(%q) = %v, want %v", b.String(), parsed, b)
		}
	}

	if _, err := ParseBehavior("flying"); err == nil {
		t.Error("expected error for unknown behavior label")
	}
}
