package model

// EstimatorState represents the training state of an estimator.
type EstimatorState int

const (
	// NotFitted means the estimator has not been trained yet.
	NotFitted EstimatorState = iota
	// Fitted means the estimator has been trained.
	Fitted
)

// BaseEstimator is the embedded base for every estimator in the library.
// It tracks fitted state so Predict/Transform/Score can reject calls on an
// untrained model.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to its untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
