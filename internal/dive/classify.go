package dive

// Depth bands for the behaviour decision table. Band boundaries are
// inclusive on the lower edge.
const (
	surfaceBandMaxDepth = 10.0
	midBandMaxDepth     = 30.0
	deepBandMaxDepth    = 80.0
)

// Classify maps one dive's kinematics to a behaviour label via a fixed
// decision table. Rows are evaluated in order within each depth band and
// the first match wins, so ties resolve deterministically.
func Classify(k Kinematics) Behavior {
	switch {
	case k.MaxDepth < surfaceBandMaxDepth:
		switch {
		case k.AcousticProportion > 0.6:
			return SocialSurface
		case k.MeanDBA < 0.5:
			return Resting
		default:
			return ShallowTravel
		}
	case k.MaxDepth < midBandMaxDepth:
		switch {
		case k.BottomTime > 30 && k.AcousticProportion > 0.4:
			return ShallowForaging
		case k.MeanDBA > 1.0:
			return ShallowTravel
		default:
			return ShallowExploration
		}
	case k.MaxDepth < deepBandMaxDepth:
		switch {
		case k.BottomTime > 60 && k.AcousticProportion > 0.3:
			return DeepForaging
		case k.MeanDBA > 0.8:
			return DeepTravel
		default:
			return DeepExploration
		}
	default:
		if k.BottomTime > 120 {
			return DeepForaging
		}
		return DeepExploration
	}
}

// Success-probability bands dividing foraging dives into behavioural
// contexts.
const (
	successfulForagingProb = 0.5
	activeForagingProb     = 0.25
)

// coordinatedTravelAcoustic is the acoustic proportion above which a travel
// dive is taken as coordinated (group) rather than individual movement.
const coordinatedTravelAcoustic = 0.3

// DeriveContext maps a behaviour label plus the dive's foraging-success
// estimate and acoustic proportion to a behavioural-context label.
func DeriveContext(b Behavior, successProbability, acousticProportion float64) Context {
	switch b {
	case DeepForaging, ShallowForaging:
		switch {
		case successProbability > successfulForagingProb:
			return SuccessfulForaging
		case successProbability > activeForagingProb:
			return ActiveForaging
		default:
			return ForagingSearch
		}
	case DeepTravel, ShallowTravel:
		if acousticProportion > coordinatedTravelAcoustic {
			return CoordinatedTravel
		}
		return IndividualTravel
	case SocialSurface:
		return SocialInteraction
	case Resting:
		return RestingBehavior
	default:
		return ExploratoryBehavior
	}
}
