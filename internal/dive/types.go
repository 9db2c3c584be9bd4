package dive

import (
	"encoding/json"
	"fmt"
)

// Behavior is the closed set of per-dive behaviour labels assigned by the
// classifier decision table.
type Behavior int

const (
	ShallowTravel Behavior = iota
	DeepTravel
	ShallowForaging
	DeepForaging
	ShallowExploration
	DeepExploration
	SocialSurface
	Resting
)

var behaviorNames = map[Behavior]string{
	ShallowTravel:      "shallow_travel",
	DeepTravel:         "deep_travel",
	ShallowForaging:    "shallow_foraging",
	DeepForaging:       "deep_foraging",
	ShallowExploration: "shallow_exploration",
	DeepExploration:    "deep_exploration",
	SocialSurface:      "social_surface",
	Resting:            "resting",
}

// Behaviors lists every behaviour label, in declaration order. Useful for
// exhaustive iteration when building budgets or rollups.
var Behaviors = []Behavior{
	ShallowTravel, DeepTravel, ShallowForaging, DeepForaging,
	ShallowExploration, DeepExploration, SocialSurface, Resting,
}

// String returns the wire name of the behaviour label.
func (b Behavior) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("behavior(%d)", int(b))
}

// MarshalJSON encodes the behaviour as its wire name.
func (b Behavior) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a behaviour from its wire name.
func (b *Behavior) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBehavior(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBehavior maps a wire name back to a Behavior.
func ParseBehavior(s string) (Behavior, error) {
	for b, name := range behaviorNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior label %q", s)
}

// Context is the behavioural-context label derived from a dive's behaviour
// and its foraging-success estimate.
type Context int

const (
	SuccessfulForaging Context = iota
	ActiveForaging
	ForagingSearch
	CoordinatedTravel
	IndividualTravel
	SocialInteraction
	RestingBehavior
	ExploratoryBehavior
)

var contextNames = map[Context]string{
	SuccessfulForaging:  "successful_foraging",
	ActiveForaging:      "active_foraging",
	ForagingSearch:      "foraging_search",
	CoordinatedTravel:   "coordinated_travel",
	IndividualTravel:    "individual_travel",
	SocialInteraction:   "social_interaction",
	RestingBehavior:     "resting_behavior",
	ExploratoryBehavior: "exploratory_behavior",
}

// String returns the wire name of the context label.
func (c Context) String() string {
	if name, ok := contextNames[c]; ok {
		return name
	}
	return fmt.Sprintf("context(%d)", int(c))
}

// MarshalJSON encodes the context as its wire name.
func (c Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a context from its wire name.
func (c *Context) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseContext(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseContext maps a wire name back to a Context.
func ParseContext(s string) (Context, error) {
	for ctx, name := range contextNames {
		if name == s {
			return ctx, nil
		}
	}
	return 0, fmt.Errorf("unknown context label %q", s)
}

// Window is a half-open sample index range [Start, End) into a SensorFrame
// where the animal was below the dive threshold. Windows produced by the
// segmenter are ordered by Start and non-overlapping.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Samples returns the number of samples covered by the window.
func (w Window) Samples() int { return w.End - w.Start }

// Duration returns the window length in seconds at the given sampling rate.
func (w Window) Duration(sampleRate float64) float64 {
	return float64(w.End-w.Start) / sampleRate
}

// Kinematics holds the per-dive metrics computed from the raw channels.
type Kinematics struct {
	MaxDepth           float64 `json:"max_depth_m"`
	DescentRate        float64 `json:"descent_rate_mps"`
	AscentRate         float64 `json:"ascent_rate_mps"`
	BottomTime         float64 `json:"bottom_time_s"`
	MeanDBA            float64 `json:"mean_dba_g"`
	AcousticProportion float64 `json:"acoustic_proportion"`
}

// ForagingIndicators are the prey-capture proxies derived from one dive
// window, plus their combination into a bounded success estimate.
type ForagingIndicators struct {
	ClickRate          float64 `json:"click_rate"`
	BuzzEvents         int     `json:"buzz_events"`
	RapidManeuvers     int     `json:"rapid_maneuvers"`
	DepthVariation     float64 `json:"depth_variation_m"`
	SuccessProbability float64 `json:"success_probability"` // in [0,1]
	ForagingIntensity  float64 `json:"foraging_intensity"`  // in [0,1]
}

// Record is one fully analysed dive. Records are built once by the
// pipeline and never mutated afterwards.
type Record struct {
	DiveID    int     `json:"dive_id"`
	StartTime float64 `json:"start_time_s"`
	EndTime   float64 `json:"end_time_s"`
	Duration  float64 `json:"duration_s"`

	Kinematics

	Behavior Behavior `json:"behavior"`
	Context  Context  `json:"behavioral_context"`

	Foraging ForagingIndicators `json:"foraging"`

	EnergyCost     float64 `json:"energy_cost"`
	DiveEfficiency float64 `json:"dive_efficiency"` // success probability per unit cost
}

// SurfaceSummary describes the time the animal spent above the surface
// threshold over one deployment.
type SurfaceSummary struct {
	TotalSurfaceTime   float64 `json:"total_surface_time_s"`
	SurfacePeriods     int     `json:"surface_periods"`
	MeanPeriodDuration float64 `json:"mean_period_duration_s"`
	BreathingRate      float64 `json:"breathing_rate_per_hour"`
	ActivityLevel      float64 `json:"surface_activity_level"` // mean squared acceleration magnitude while shallow
}

// EnergeticModel is the deployment-level fold of all dive records and the
// surface summary.
type EnergeticModel struct {
	TotalEnergyCost     float64 `json:"total_energy_cost"`
	MeanCostPerDive     float64 `json:"mean_cost_per_dive"`
	ForagingSuccessRate float64 `json:"foraging_success_rate"`
	EnergyEfficiency    float64 `json:"energy_efficiency"`

	// BehavioralBudget maps each observed behaviour to its fraction of
	// total dives; fractions sum to 1 when any dives were observed.
	BehavioralBudget map[string]float64 `json:"behavioral_budget"`

	DiveTimeFraction    float64 `json:"dive_time_fraction"`
	SurfaceTimeFraction float64 `json:"surface_time_fraction"`

	// Optimal foraging depth/duration are means over dives with success
	// probability above 0.5; zero when no such dive exists.
	OptimalForagingDepth    float64 `json:"optimal_foraging_depth_m"`
	OptimalForagingDuration float64 `json:"optimal_foraging_duration_s"`

	ForagingDives           int `json:"foraging_dives"`
	SuccessfulForagingDives int `json:"successful_foraging_dives"`

	// Depth distribution percentiles over all dives (display metric).
	P50Depth float64 `json:"p50_depth_m"`
	P85Depth float64 `json:"p85_depth_m"`
	P98Depth float64 `json:"p98_depth_m"`
}

// Report is the full output of one pipeline invocation: the chronological
// dive record list, the surface summary, the energetic model, and the
// generated insight strings.
type Report struct {
	TagID    string          `json:"tag_id"`
	Dives    []Record        `json:"dives"`
	Surface  SurfaceSummary  `json:"surface"`
	Model    EnergeticModel  `json:"energetic_model"`
	Insights []string        `json:"insights"`
}
