// Package stats implements the descriptive and bivariate statistics used by
// dslr over feature columns that may contain missing values.
//
// NaN is the missing-value sentinel. Every function skips NaN entries and none
// of them returns an error: degenerate input (an empty or all-missing column,
// a zero standard deviation) yields NaN or ±Inf, which callers check for
// explicitly.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// NonMissing returns the non-NaN values of xs in order. xs is not modified.
func NonMissing(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of non-NaN values in xs.
func Count(xs []float64) int {
	n := 0
	for _, v := range xs {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// Mean returns the sum of the non-NaN values divided by their count.
// It is NaN when xs is empty or all values are missing.
func Mean(xs []float64) float64 {
	return stat.Mean(NonMissing(xs), nil)
}

// StandardDeviation returns the population standard deviation (divisor N) of
// the non-NaN values of xs.
func StandardDeviation(xs []float64) float64 {
	vals := NonMissing(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	_, std := stat.PopMeanStdDev(vals, nil)
	return std
}

// Min returns the smallest non-NaN value, or NaN if there is none.
func Min(xs []float64) float64 {
	vals := NonMissing(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	return floats.Min(vals)
}

// Max returns the largest non-NaN value, or NaN if there is none.
func Max(xs []float64) float64 {
	vals := NonMissing(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	return floats.Max(vals)
}

// Quantile returns the p-th percentile (0 <= p <= 100) of the non-NaN values.
//
// With the values sorted ascending, r = p/100*(n-1), lo = floor(r) and
// frac = r-lo, the result is
//
//	(sorted[lo]*frac + sorted[lo+1]*(1-frac)) / 2
//
// The weighting and the halving do not follow the usual linear-interpolation
// percentile; dslr reports quartiles with exactly this formula. lo+1 is
// clamped to n-1, so Quantile(xs, 100) == Max(xs)/2. Empty input yields NaN.
func Quantile(xs []float64, p float64) float64 {
	sorted := NonMissing(xs)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	r := p / 100 * float64(n-1)
	lo := int(math.Floor(r))
	if lo < 0 {
		lo = 0
	}
	if lo > n-1 {
		lo = n - 1
	}
	hi := lo + 1
	if hi > n-1 {
		hi = n - 1
	}
	frac := r - float64(lo)
	return (sorted[lo]*frac + sorted[hi]*(1-frac)) / 2
}

// Covariance returns the population covariance of xs and ys.
//
// The means are taken over each sequence on its own. The cross products are
// summed over index-aligned pairs in which neither value is missing and divided
// by the number of such pairs. Pairs range over the shorter sequence.
func Covariance(xs, ys []float64) float64 {
	mx, my := Mean(xs), Mean(ys)
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	var sum float64
	pairs := 0
	for i := 0; i < n; i++ {
		if IsMissing(xs[i]) || IsMissing(ys[i]) {
			continue
		}
		sum += (xs[i] - mx) * (ys[i] - my)
		pairs++
	}
	return sum / float64(pairs)
}

// PearsonCorrelation returns Covariance(xs, ys) / (StandardDeviation(xs) * StandardDeviation(ys)).
// A constant sequence makes the denominator zero and the result NaN or ±Inf.
func PearsonCorrelation(xs, ys []float64) float64 {
	return Covariance(xs, ys) / (StandardDeviation(xs) * StandardDeviation(ys))
}
