package utils

import "math"

// FloatOrZero dereferences a float pointer, returning 0 if nil or NaN
func FloatOrZero(f *float64) float64 {
	if f == nil || math.IsNaN(*f) {
		return 0
	}
	return *f
}

// IsTruthy reports whether a float pointer holds a non-zero, non-NaN value
func IsTruthy(f *float64) bool {
	return f != nil && *f != 0 && !math.IsNaN(*f)
}
