// Package preprocessing provides feature scaling for decoding pipelines.
package preprocessing

import (
	"math"

	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/core/parallel"
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Row count above which scaling loops run on all cores.
const parallelThreshold = 1000

// StandardScaler standardizes features to zero mean and unit variance.
// Zero-variance features are centered but left unscaled.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-feature mean learned by Fit.
	Mean []float64

	// Scale holds the per-feature standard deviation learned by Fit.
	// Entries for zero-variance features are set to 1.
	Scale []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit learns the per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("StandardScaler.Fit", "empty matrix")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(r)

		var sq float64
		for i := 0; i < r; i++ {
			d := X.At(i, j) - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(r))
		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Scale[j] = std
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
			}
		}
	})

	return out, nil
}

// FitTransform fits the scaler on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// ScaleWithinGroups z-scores each feature independently within each group
// of rows (e.g. within each scanner run of a block design), removing
// between-run baseline and gain differences before decoding. groups must
// have one entry per row of X. The input is not modified.
func ScaleWithinGroups(X mat.Matrix, groups []int) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("ScaleWithinGroups", "empty matrix")
	}
	if len(groups) != r {
		return nil, errors.NewDimensionError("ScaleWithinGroups", r, len(groups), 0)
	}

	rowsByGroup := make(map[int][]int)
	for i, g := range groups {
		rowsByGroup[g] = append(rowsByGroup[g], i)
	}

	out := mat.NewDense(r, c, nil)
	for _, rows := range rowsByGroup {
		n := float64(len(rows))
		for j := 0; j < c; j++ {
			var sum float64
			for _, i := range rows {
				sum += X.At(i, j)
			}
			mean := sum / n

			var sq float64
			for _, i := range rows {
				d := X.At(i, j) - mean
				sq += d * d
			}
			std := math.Sqrt(sq / n)
			if std == 0 {
				std = 1
			}

			for _, i := range rows {
				out.Set(i, j, (X.At(i, j)-mean)/std)
			}
		}
	}

	return out, nil
}
