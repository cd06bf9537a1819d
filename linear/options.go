package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/pkg/log"
)

// Option is a function that configures OneVsAll
type Option func(*OneVsAll)

// WithEpochs sets the number of full passes over the training data
func WithEpochs(epochs int) Option {
	return func(m *OneVsAll) {
		m.epochs = epochs
	}
}

// WithLearningRate sets the gradient descent step size
func WithLearningRate(lr float64) Option {
	return func(m *OneVsAll) {
		m.learningRate = lr
	}
}

// WithRandomState seeds the uniform weight initialization
func WithRandomState(seed uint64) Option {
	return func(m *OneVsAll) {
		m.randomState = seed
		m.seeded = true
	}
}

// WithInitialWeights starts training from a copy of W (K×F) instead of random weights
func WithInitialWeights(W mat.Matrix) Option {
	return func(m *OneVsAll) {
		if W != nil {
			m.initial = mat.DenseCopyOf(W)
		}
	}
}

// WithCallbacks registers callbacks run after every epoch
func WithCallbacks(callbacks ...Callback) Option {
	return func(m *OneVsAll) {
		m.callbacks = append(m.callbacks, callbacks...)
	}
}

// WithLogger sets the logger used for training progress
func WithLogger(logger log.Logger) Option {
	return func(m *OneVsAll) {
		m.baseLogger = logger
	}
}

// WithParallelClasses runs the per-class gradient steps of an epoch concurrently
func WithParallelClasses(parallel bool) Option {
	return func(m *OneVsAll) {
		m.parallel = parallel
	}
}
