// Package svm provides linear support vector classification.
package svm

import (
	"math"
	"sort"

	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/metrics"
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearSVC is a linear margin classifier trained with L2-regularized
// hinge loss, one binary machine per class (one-vs-rest). The cost
// parameter C trades margin width against training error. The solver is
// deterministic batch subgradient descent from a zero start.
type LinearSVC struct {
	model.BaseEstimator

	// Hyperparameters
	c            float64
	maxIter      int
	tol          float64
	learningRate float64
	fitIntercept bool

	// Model parameters
	coef      *mat.Dense // nClasses x nFeatures (one row per OVR machine)
	intercept []float64
	classes   []int
	nFeatures int
}

// LinearSVCOption is a functional option for LinearSVC.
type LinearSVCOption func(*LinearSVC)

// NewLinearSVC creates a LinearSVC classifier.
func NewLinearSVC(opts ...LinearSVCOption) *LinearSVC {
	svc := &LinearSVC{
		c:            1.0,
		maxIter:      1000,
		tol:          1e-5,
		learningRate: 0.05,
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithC sets the cost parameter.
func WithC(c float64) LinearSVCOption {
	return func(svc *LinearSVC) {
		svc.c = c
	}
}

// WithMaxIter sets the maximum number of iterations.
func WithMaxIter(maxIter int) LinearSVCOption {
	return func(svc *LinearSVC) {
		svc.maxIter = maxIter
	}
}

// WithTol sets the subgradient tolerance for early stopping.
func WithTol(tol float64) LinearSVCOption {
	return func(svc *LinearSVC) {
		svc.tol = tol
	}
}

// WithLearningRate sets the subgradient descent step size.
func WithLearningRate(eta float64) LinearSVCOption {
	return func(svc *LinearSVC) {
		svc.learningRate = eta
	}
}

// WithFitIntercept sets whether intercept terms are fitted.
func WithFitIntercept(fit bool) LinearSVCOption {
	return func(svc *LinearSVC) {
		svc.fitIntercept = fit
	}
}

// Fit trains one hinge-loss machine per class on X and y.
// A training set with fewer than two classes is a FitError.
func (svc *LinearSVC) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewValueError("LinearSVC.Fit", "empty matrix")
	}
	if yRows != nSamples {
		return errors.NewDimensionError("LinearSVC.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LinearSVC.Fit", "y must be a column vector")
	}
	if svc.c <= 0 {
		return errors.NewValidationError("C", "must be positive", svc.c)
	}

	svc.classes = extractClasses(y)
	if len(svc.classes) < 2 {
		return errors.NewFitError("LinearSVC",
			"training data contains fewer than 2 classes", nil)
	}
	svc.nFeatures = nFeatures

	nClasses := len(svc.classes)
	svc.coef = mat.NewDense(nClasses, nFeatures, nil)
	svc.intercept = make([]float64, nClasses)

	// signs[k][i] is +1 when sample i belongs to class k, -1 otherwise.
	signs := make([][]float64, nClasses)
	for k, class := range svc.classes {
		signs[k] = make([]float64, nSamples)
		for i := 0; i < nSamples; i++ {
			if int(y.At(i, 0)) == class {
				signs[k][i] = 1
			} else {
				signs[k][i] = -1
			}
		}
	}

	grad := make([]float64, nFeatures)
	invN := 1 / float64(nSamples)
	lambda := 1 / (svc.c * float64(nSamples))

	for k := 0; k < nClasses; k++ {
		for iter := 0; iter < svc.maxIter; iter++ {
			for j := range grad {
				grad[j] = lambda * svc.coef.At(k, j)
			}
			gradB := 0.0

			for i := 0; i < nSamples; i++ {
				margin := svc.intercept[k]
				for j := 0; j < nFeatures; j++ {
					margin += svc.coef.At(k, j) * X.At(i, j)
				}
				// Hinge subgradient: active only inside the margin.
				if signs[k][i]*margin < 1 {
					for j := 0; j < nFeatures; j++ {
						grad[j] -= signs[k][i] * X.At(i, j) * invN
					}
					gradB -= signs[k][i] * invN
				}
			}

			maxGrad := 0.0
			for j := 0; j < nFeatures; j++ {
				svc.coef.Set(k, j, svc.coef.At(k, j)-svc.learningRate*grad[j])
				if a := math.Abs(grad[j]); a > maxGrad {
					maxGrad = a
				}
			}
			if svc.fitIntercept {
				svc.intercept[k] -= svc.learningRate * gradB
				if a := math.Abs(gradB); a > maxGrad {
					maxGrad = a
				}
			}

			if maxGrad < svc.tol {
				break
			}
		}
	}

	svc.SetFitted()
	return nil
}

// DecisionFunction returns the signed margin of each sample for each class
// machine (samples x classes).
func (svc *LinearSVC) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if !svc.IsFitted() {
		return nil, errors.NewNotFittedError("LinearSVC", "DecisionFunction")
	}

	r, c := X.Dims()
	if c != svc.nFeatures {
		return nil, errors.NewDimensionError("LinearSVC.DecisionFunction", svc.nFeatures, c, 1)
	}

	nClasses := len(svc.classes)
	out := mat.NewDense(r, nClasses, nil)
	for i := 0; i < r; i++ {
		for k := 0; k < nClasses; k++ {
			margin := svc.intercept[k]
			for j := 0; j < svc.nFeatures; j++ {
				margin += svc.coef.At(k, j) * X.At(i, j)
			}
			out.Set(i, k, margin)
		}
	}
	return out, nil
}

// Predict returns the class whose machine reports the largest margin.
func (svc *LinearSVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	scores, err := svc.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := scores.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		best := 0
		for k := 1; k < len(svc.classes); k++ {
			if scores.At(i, k) > scores.At(i, best) {
				best = k
			}
		}
		out.Set(i, 0, float64(svc.classes[best]))
	}
	return out, nil
}

// PredictProba returns softmax-normalized margins. LinearSVC is not a
// probabilistic model; these are pseudo-probabilities provided so the type
// satisfies model.Classifier.
func (svc *LinearSVC) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := svc.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, c := scores.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		maxScore := math.Inf(-1)
		for k := 0; k < c; k++ {
			if s := scores.At(i, k); s > maxScore {
				maxScore = s
			}
		}
		var sum float64
		for k := 0; k < c; k++ {
			e := math.Exp(scores.At(i, k) - maxScore)
			out.Set(i, k, e)
			sum += e
		}
		for k := 0; k < c; k++ {
			out.Set(i, k, out.At(i, k)/sum)
		}
	}
	return out, nil
}

// Score returns the mean accuracy of Predict(X) against y.
func (svc *LinearSVC) Score(X, y mat.Matrix) (float64, error) {
	if !svc.IsFitted() {
		return 0, errors.NewNotFittedError("LinearSVC", "Score")
	}

	yPred, err := svc.Predict(X)
	if err != nil {
		return 0, errors.NewScoreError("LinearSVC", "prediction failed", err)
	}

	acc, err := metrics.Accuracy(y, yPred)
	if err != nil {
		return 0, errors.NewScoreError("LinearSVC", "accuracy computation failed", err)
	}
	return acc, nil
}

// Classes returns the sorted unique class labels seen during fitting.
func (svc *LinearSVC) Classes() []int {
	out := make([]int, len(svc.classes))
	copy(out, svc.classes)
	return out
}

// GetParams returns the model's hyperparameters.
func (svc *LinearSVC) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"C":             svc.c,
		"max_iter":      svc.maxIter,
		"tol":           svc.tol,
		"learning_rate": svc.learningRate,
		"fit_intercept": svc.fitIntercept,
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
