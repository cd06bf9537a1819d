// Standard attribute keys. Keys follow a hierarchical naming convention
// ("model.name", "data.samples") so log output can be filtered by prefix.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "OneVsAll", "Normalizer"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"

	// ClassKey is the class name or index a record refers to.
	ClassKey = "ml.class"
)

// Data Shape and Characteristics
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	TargetsKey  = "data.targets"

	// PathKey is the file a dataset or model was read from or written to.
	PathKey = "data.path"

	// MissingKey counts missing (NaN) cells.
	MissingKey = "data.missing"
)

// Performance Metrics
const (
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy as a percentage in [0, 100].
	AccuracyKey = "metrics.accuracy"

	LossKey  = "metrics.loss"
	EpochKey = "training.epoch"
)

// Prediction and Output Context
const (
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	ErrorCodeKey = "error.code"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically by ZerologLogger.Error.
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters and Configuration
const (
	LearningRateKey = "hyperparams.learning_rate"
	EpochsKey       = "hyperparams.epochs"
	RandomSeedKey   = "config.random_seed"
	ConfigFileKey   = "config.file"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationLoad         = "load"
	OperationSave         = "save"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
	PhaseAnalysis      = "analysis"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
