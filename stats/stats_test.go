package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var nan = math.NaN()

func TestMeanAndStandardDeviation(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.Equal(t, 5.0, Mean(xs))
	assert.Equal(t, 2.0, StandardDeviation(xs))
}

func TestMissingValuesAreIgnored(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, nan, 3}))
	assert.Equal(t, Mean([]float64{1, 3}), Mean([]float64{1, nan, 3}))
	assert.Equal(t, StandardDeviation([]float64{1, 3}), StandardDeviation([]float64{nan, 1, nan, 3}))
	assert.Equal(t, 2, Count([]float64{nan, 1, 3, nan}))
	assert.Equal(t, []float64{1, 3}, NonMissing([]float64{nan, 1, 3, nan}))
}

func TestDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
	}{
		{"empty", []float64{}},
		{"all missing", []float64{nan, nan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(Mean(tt.xs)))
			assert.True(t, math.IsNaN(StandardDeviation(tt.xs)))
			assert.True(t, math.IsNaN(Min(tt.xs)))
			assert.True(t, math.IsNaN(Max(tt.xs)))
			assert.True(t, math.IsNaN(Quantile(tt.xs, 50)))
			assert.Equal(t, 0, Count(tt.xs))
		})
	}
}

func TestMinMaxSkipLeadingMissing(t *testing.T) {
	xs := []float64{nan, 3, -1, 8, nan}

	assert.Equal(t, -1.0, Min(xs))
	assert.Equal(t, 8.0, Max(xs))
}

func TestQuantile(t *testing.T) {
	xs := []float64{5, nan, 1, 4, 2, 3}

	t.Run("closed form at bounds", func(t *testing.T) {
		// sorted: 1 2 3 4 5
		assert.Equal(t, 2.0/2, Quantile(xs, 0))
		assert.Equal(t, Max(xs)/2, Quantile(xs, 100))
	})

	t.Run("interior", func(t *testing.T) {
		// r = 0.25*4 = 1, lo = 1, frac = 0
		assert.Equal(t, 3.0/2, Quantile(xs, 25))
		// r = 0.5*4 = 2, lo = 2, frac = 0
		assert.Equal(t, 4.0/2, Quantile(xs, 50))
		// r = 0.3*4 = 1.2, lo = 1, frac = 0.2
		want := (2*0.2 + 3*0.8) / 2
		assert.InDelta(t, want, Quantile(xs, 30), 1e-12)
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, 3.5, Quantile([]float64{7}, 50))
	})

	t.Run("input not reordered", func(t *testing.T) {
		before := append([]float64(nil), xs...)
		Quantile(xs, 75)
		assert.Equal(t, before[0], xs[0])
		assert.Equal(t, before[5], xs[5])
	})
}

func TestCovarianceAndCorrelation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	normal := distuv.Normal{Mu: 10, Sigma: 3, Src: rng}

	xs := make([]float64, 200)
	ys := make([]float64, 200)
	for i := range xs {
		xs[i] = normal.Rand()
		ys[i] = 0.5*xs[i] + normal.Rand()
	}

	t.Run("self covariance is variance", func(t *testing.T) {
		sd := StandardDeviation(xs)
		assert.InDelta(t, sd*sd, Covariance(xs, xs), 1e-9)
	})

	t.Run("self correlation is one", func(t *testing.T) {
		assert.InDelta(t, 1.0, PearsonCorrelation(xs, xs), 1e-12)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, PearsonCorrelation(xs, ys), PearsonCorrelation(ys, xs))
	})

	t.Run("matches gonum", func(t *testing.T) {
		assert.InDelta(t, stat.Correlation(xs, ys, nil), PearsonCorrelation(xs, ys), 1e-9)
	})
}

func TestCovarianceSkipsMissingPairs(t *testing.T) {
	xs := []float64{1, 2, nan, 4}
	ys := []float64{2, nan, 6, 8}

	mx := Mean(xs) // 7/3
	my := Mean(ys) // 16/3
	want := ((1-mx)*(2-my) + (4-mx)*(8-my)) / 2

	require.False(t, math.IsNaN(want))
	assert.InDelta(t, want, Covariance(xs, ys), 1e-12)
}

func TestPearsonCorrelationConstant(t *testing.T) {
	r := PearsonCorrelation([]float64{1, 1, 1}, []float64{1, 2, 3})
	assert.True(t, math.IsNaN(r) || math.IsInf(r, 0))
}
