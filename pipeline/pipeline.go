// Package pipeline chains transformers with a final classifier so the
// composite can be cross-validated as a single estimator. Fitting the
// transformers inside each fold (rather than once on the full data) is
// what keeps held-out information out of the preprocessing.
package pipeline

import (
	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Step is a named transformer stage.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline applies its steps in order and hands the result to the final
// classifier. It satisfies model.Classifier, so it can be used anywhere a
// plain classifier can, including inside GridSearchCV and NestedCV.
type Pipeline struct {
	model.BaseEstimator

	Steps     []Step
	Estimator model.Classifier
}

// New creates a Pipeline from transformer steps and a final classifier.
func New(estimator model.Classifier, steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps, Estimator: estimator}
}

// Fit runs FitTransform through every step, then fits the classifier on
// the transformed data.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	if p.Estimator == nil {
		return errors.NewValidationError("estimator", "pipeline requires a final classifier", nil)
	}

	current := X
	for _, step := range p.Steps {
		if step.Transformer == nil {
			return errors.NewValidationError("steps", "nil transformer in step "+step.Name, nil)
		}
		transformed, err := step.Transformer.FitTransform(current)
		if err != nil {
			return errors.Wrapf(err, "pipeline step %q", step.Name)
		}
		current = transformed
	}

	if err := p.Estimator.Fit(current, y); err != nil {
		return err
	}

	p.SetFitted()
	return nil
}

// transform applies the fitted steps in order.
func (p *Pipeline) transform(X mat.Matrix) (mat.Matrix, error) {
	current := X
	for _, step := range p.Steps {
		transformed, err := step.Transformer.Transform(current)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline step %q", step.Name)
		}
		current = transformed
	}
	return current, nil
}

// Predict transforms X through the fitted steps and delegates to the
// classifier.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	transformed, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.Estimator.Predict(transformed)
}

// PredictProba transforms X and delegates to the classifier.
func (p *Pipeline) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictProba")
	}
	transformed, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.Estimator.PredictProba(transformed)
}

// Score transforms X and returns the classifier's accuracy on it.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("Pipeline", "Score")
	}
	transformed, err := p.transform(X)
	if err != nil {
		return 0, errors.NewScoreError("Pipeline", "transform failed", err)
	}
	return p.Estimator.Score(transformed, y)
}

// Classes returns the class labels of the final classifier.
func (p *Pipeline) Classes() []int {
	return p.Estimator.Classes()
}
