package utils

import "math"

// SafeFloat coerces a possibly-absent nutrient value to something summable.
// nil and NaN become 0 so consumers never observe null or NaN.
func SafeFloat(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0.0
	}
	return *v
}
