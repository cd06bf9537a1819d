package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckScalar returns a NumericalInstabilityWarning when value is NaN or Inf.
// The warning is returned, not raised; callers decide whether to pass it to Warn.
func CheckScalar(operation string, value float64, epoch, class int) *NumericalInstabilityWarning {
	if IsFinite(value) {
		return nil
	}
	return &NumericalInstabilityWarning{
		Operation: operation,
		Epoch:     epoch,
		Class:     class,
		Value:     value,
	}
}

// CheckValues returns the index of the first non-finite value, or -1.
func CheckValues(values []float64) int {
	for i, v := range values {
		if !IsFinite(v) {
			return i
		}
	}
	return -1
}
