// Package linearmodel provides linear classifiers with an inverse
// regularization strength hyperparameter.
package linearmodel

import (
	"math"
	"sort"

	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/metrics"
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LogisticRegression implements multinomial logistic regression with an L2
// penalty, trained by batch gradient descent. Fitting is deterministic:
// weights start at zero and no randomness enters the solver, so repeated
// fits on identical data give identical models.
type LogisticRegression struct {
	model.BaseEstimator

	// Hyperparameters
	c            float64 // Inverse regularization strength
	maxIter      int     // Maximum gradient descent iterations
	tol          float64 // Stop when the largest gradient entry is below tol
	learningRate float64 // Gradient descent step size
	fitIntercept bool    // Whether to fit intercept terms

	// Model parameters
	coef      *mat.Dense // nClasses x nFeatures
	intercept []float64  // nClasses
	classes   []int      // Sorted unique class labels
	nFeatures int
}

// LogisticRegressionOption is a functional option for LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a LogisticRegression classifier.
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		c:            1.0,
		maxIter:      500,
		tol:          1e-5,
		learningRate: 0.1,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// WithC sets the inverse regularization strength.
func WithC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithMaxIter sets the maximum number of iterations.
func WithMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the gradient tolerance for early stopping.
func WithTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(eta float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.learningRate = eta
	}
}

// WithFitIntercept sets whether intercept terms are fitted.
func WithFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// Fit trains the model on X (samples x features) and y (samples x 1).
// A training set with fewer than two classes is a FitError.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewValueError("LogisticRegression.Fit", "empty matrix")
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	if lr.c <= 0 {
		return errors.NewValidationError("C", "must be positive", lr.c)
	}

	lr.classes = extractClasses(y)
	if len(lr.classes) < 2 {
		return errors.NewFitError("LogisticRegression",
			"training data contains fewer than 2 classes", nil)
	}
	lr.nFeatures = nFeatures

	nClasses := len(lr.classes)
	classIdx := make(map[int]int, nClasses)
	for i, c := range lr.classes {
		classIdx[c] = i
	}

	lr.coef = mat.NewDense(nClasses, nFeatures, nil)
	lr.intercept = make([]float64, nClasses)

	// One-hot target matrix.
	target := make([][]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		target[i] = make([]float64, nClasses)
		target[i][classIdx[int(y.At(i, 0))]] = 1
	}

	probs := make([]float64, nClasses)
	gradW := mat.NewDense(nClasses, nFeatures, nil)
	gradB := make([]float64, nClasses)
	invN := 1 / float64(nSamples)
	lambda := 1 / (lr.c * float64(nSamples))

	for iter := 0; iter < lr.maxIter; iter++ {
		gradW.Zero()
		for k := range gradB {
			gradB[k] = 0
		}

		for i := 0; i < nSamples; i++ {
			lr.softmaxRow(X, i, probs)
			for k := 0; k < nClasses; k++ {
				diff := (probs[k] - target[i][k]) * invN
				for j := 0; j < nFeatures; j++ {
					gradW.Set(k, j, gradW.At(k, j)+diff*X.At(i, j))
				}
				gradB[k] += diff
			}
		}

		maxGrad := 0.0
		for k := 0; k < nClasses; k++ {
			for j := 0; j < nFeatures; j++ {
				g := gradW.At(k, j) + lambda*lr.coef.At(k, j)
				lr.coef.Set(k, j, lr.coef.At(k, j)-lr.learningRate*g)
				if a := math.Abs(g); a > maxGrad {
					maxGrad = a
				}
			}
			if lr.fitIntercept {
				lr.intercept[k] -= lr.learningRate * gradB[k]
				if a := math.Abs(gradB[k]); a > maxGrad {
					maxGrad = a
				}
			}
		}

		if maxGrad < lr.tol {
			break
		}
	}

	lr.SetFitted()
	return nil
}

// softmaxRow fills probs with the class probabilities of row i of X using
// the current parameters.
func (lr *LogisticRegression) softmaxRow(X mat.Matrix, i int, probs []float64) {
	nClasses := len(lr.classes)
	maxLogit := math.Inf(-1)
	for k := 0; k < nClasses; k++ {
		z := lr.intercept[k]
		for j := 0; j < lr.nFeatures; j++ {
			z += lr.coef.At(k, j) * X.At(i, j)
		}
		probs[k] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	var sum float64
	for k := 0; k < nClasses; k++ {
		probs[k] = math.Exp(probs[k] - maxLogit)
		sum += probs[k]
	}
	for k := 0; k < nClasses; k++ {
		probs[k] /= sum
	}
}

// Predict returns the most probable class label for each row of X.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := proba.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		best := 0
		for k := 1; k < len(lr.classes); k++ {
			if proba.At(i, k) > proba.At(i, best) {
				best = k
			}
		}
		out.Set(i, 0, float64(lr.classes[best]))
	}
	return out, nil
}

// PredictProba returns per-class probability estimates for each row of X,
// columns ordered as Classes().
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures, c, 1)
	}

	nClasses := len(lr.classes)
	out := mat.NewDense(r, nClasses, nil)
	probs := make([]float64, nClasses)
	for i := 0; i < r; i++ {
		lr.softmaxRow(X, i, probs)
		for k := 0; k < nClasses; k++ {
			out.Set(i, k, probs[k])
		}
	}
	return out, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LogisticRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, errors.NewScoreError("LogisticRegression", "prediction failed", err)
	}

	acc, err := metrics.Accuracy(y, yPred)
	if err != nil {
		return 0, errors.NewScoreError("LogisticRegression", "accuracy computation failed", err)
	}
	return acc, nil
}

// Classes returns the sorted unique class labels seen during fitting.
func (lr *LogisticRegression) Classes() []int {
	out := make([]int, len(lr.classes))
	copy(out, lr.classes)
	return out
}

// GetParams returns the model's hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"C":             lr.c,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
		"learning_rate": lr.learningRate,
		"fit_intercept": lr.fitIntercept,
	}
}

// extractClasses returns the sorted unique labels of a column vector.
func extractClasses(y mat.Matrix) []int {
	rows, _ := y.Dims()
	seen := make(map[int]bool)
	for i := 0; i < rows; i++ {
		seen[int(y.At(i, 0))] = true
	}

	classes := make([]int, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	return classes
}
