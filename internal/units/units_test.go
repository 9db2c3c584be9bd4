package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, unit := range ValidUnits {
		if !IsValid(unit) {
			t.Errorf("IsValid(%q) = false, want true", unit)
		}
	}
	if IsValid("fathoms") {
		t.Error("IsValid(fathoms) = true, want false")
	}
	if IsValid("") {
		t.Error("IsValid(\"\") = true, want false")
	}
}

func TestConvertDepth(t *testing.T) {
	if got := ConvertDepth(100, Metres); got != 100 {
		t.Errorf("ConvertDepth(100, m) = %v, want 100", got)
	}
	if got, want := ConvertDepth(100, Feet), 328.084; math.Abs(got-want) > 1e-9 {
		t.Errorf("ConvertDepth(100, ft) = %v, want %v", got, want)
	}
	// Unknown units pass through unchanged.
	if got := ConvertDepth(100, "cubits"); got != 100 {
		t.Errorf("ConvertDepth(100, cubits) = %v, want 100", got)
	}
}

func TestConvertRate(t *testing.T) {
	if got, want := ConvertRate(2.0, Feet), 6.56168; math.Abs(got-want) > 1e-9 {
		t.Errorf("ConvertRate(2.0, ft) = %v, want %v", got, want)
	}
}
