// Package dslr is a small data science toolkit for labeled tabular data:
// descriptive statistics, class-wise feature exploration, and multi-class
// classification with one-vs-all logistic regression trained by batch
// gradient descent.
//
// The dslr command wraps the library. The library is usable on its own.
//
// # Features
//
//   - NaN-aware statistics: count, mean, standard deviation, quartiles
//   - Class-wise heterogeneity and Pearson correlation to pick features
//   - Histograms, scatter plots and pair plots rendered with gonum/plot
//   - Z-score normalization whose parameters travel with the model
//   - One-vs-all logistic regression with per-epoch callbacks
//   - A plain text model file and a JSON export
//
// # Quick Start
//
// Train on a CSV file and predict another one:
//
//	res, err := pipeline.Train(pipeline.TrainConfig{
//	    DataPath:    "dataset_train.csv",
//	    ModelPath:   "weights.save",
//	    LabelColumn: "Hogwarts House",
//	    Classes:     []string{"Slytherin", "Ravenclaw", "Gryffindor", "Hufflepuff"},
//	    Features:    []int{3, 4, 7},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("training accuracy %.2f%%\n", res.Accuracy)
//
//	preds, err := pipeline.Predict(pipeline.PredictConfig{
//	    DataPath:  "dataset_test.csv",
//	    ModelPath: "weights.save",
//	    Classes:   []string{"Slytherin", "Ravenclaw", "Gryffindor", "Hufflepuff"},
//	    Features:  []int{3, 4, 7},
//	})
//
// From the command line:
//
//	dslr describe dataset_train.csv
//	dslr train dataset_train.csv
//	dslr predict dataset_test.csv --output houses.csv --header "Hogwarts House"
//
// # Packages
//
//   - stats: statistics over float slices that skip NaN
//   - dataset: CSV loader, observations and class label index
//   - preprocessing: mean imputation and the z-score Normalizer
//   - linear: OneVsAll classifier, options and training callbacks
//   - metrics: accuracy helpers
//   - analysis: describe, heterogeneity and correlation tables
//   - plotting: charts built on gonum/plot
//   - pipeline: the train and predict entry points
//   - core/model: estimator state, the model file and JSON export
//   - core/parallel: worker helpers for per-class updates
//   - pkg/errors, pkg/log: error types, warnings and structured logging
package dslr
