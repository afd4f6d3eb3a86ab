// Package model defines the estimator interfaces shared by every learner
// and transformer in the library, and the embedded fitted-state base type.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from data.
type Estimator interface {
	// Fit trains the model on X (samples x features) and y (samples x 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that predict labels.
type Predictor interface {
	// Predict returns predicted labels as a samples x 1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that compute a scalar quality score.
// For classifiers the score is mean accuracy in [0, 1].
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer is the interface for fitted data transformations
// (scaling, dimensionality reduction).
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and returns the transformed X.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the interface every classification model in the library
// satisfies. Cross-validation and grid search operate on this interface
// only, so any fit-and-score capability can be plugged in.
type Classifier interface {
	Estimator
	Predictor
	Scorer

	// PredictProba returns per-class probability estimates
	// (samples x classes, columns ordered as Classes()).
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the sorted unique class labels seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
