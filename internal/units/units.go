// Package units provides shared constants and validation for depth units.
package units

// Unit constants
const (
	Metres = "m"
	Feet   = "ft"
)

// ValidUnits contains all valid depth unit values
var ValidUnits = []string{Metres, Feet}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, ft"
}

// ConvertDepth converts a depth from metres to the target units.
// Analysis and storage always run in metres; conversion is display-only.
func ConvertDepth(depthM float64, targetUnits string) float64 {
	switch targetUnits {
	case Feet:
		return depthM * 3.28084 // m to ft
	case Metres:
		return depthM // no conversion needed
	default:
		return depthM // default to metres if unknown unit
	}
}

// ConvertRate converts a vertical rate from m/s to the target units (ft/s
// when targetUnits is ft).
func ConvertRate(rateMPS float64, targetUnits string) float64 {
	return ConvertDepth(rateMPS, targetUnits)
}
