// Package decomposition provides dimensionality reduction transformers.
package decomposition

import (
	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/core/parallel"
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Row count above which centering loops run on all cores.
const parallelThreshold = 1000

// PCA projects data onto its leading principal components. Voxel counts in
// block-design data are far larger than sample counts, so a PCA step ahead
// of the classifier is the standard composite.
type PCA struct {
	model.BaseEstimator

	// NComponents is the number of components to keep. Must be at least 1
	// and at most min(samples, features) of the fitted data.
	NComponents int

	// Mean holds the per-feature mean of the fitted data.
	Mean []float64

	// Components is the features x NComponents projection matrix
	// (columns are principal axes, ordered by decreasing variance).
	Components *mat.Dense

	// ExplainedVariance holds the variance carried by each kept component.
	ExplainedVariance []float64

	nFeatures int
}

// NewPCA creates a PCA keeping nComponents components.
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

// Fit learns the principal axes of X via singular value decomposition of
// the column-centered data.
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("PCA.Fit", "empty matrix")
	}

	maxComponents := r
	if c < r {
		maxComponents = c
	}
	if p.NComponents < 1 || p.NComponents > maxComponents {
		return errors.NewValidationError("n_components",
			"must be in [1, min(samples, features)]", p.NComponents)
	}

	p.nFeatures = c
	p.Mean = make([]float64, c)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.Mean[j] = sum / float64(r)
	}

	centered := p.center(X, r, c)

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return errors.NewFitError("PCA", "SVD factorization failed", errors.ErrSingularMatrix)
	}

	var v mat.Dense
	svd.VTo(&v)
	values := svd.Values(nil)

	p.Components = mat.NewDense(c, p.NComponents, nil)
	p.ExplainedVariance = make([]float64, p.NComponents)
	denom := float64(r - 1)
	if r == 1 {
		denom = 1
	}
	for k := 0; k < p.NComponents; k++ {
		for j := 0; j < c; j++ {
			p.Components.Set(j, k, v.At(j, k))
		}
		p.ExplainedVariance[k] = values[k] * values[k] / denom
	}

	p.SetFitted()
	return nil
}

// Transform projects X onto the fitted principal axes.
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}

	r, c := X.Dims()
	if c != p.nFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.nFeatures, c, 1)
	}

	centered := p.center(X, r, c)

	out := mat.NewDense(r, p.NComponents, nil)
	out.Mul(centered, p.Components)
	return out, nil
}

// center subtracts the fitted per-feature means from X.
func (p *PCA) center(X mat.Matrix, r, c int) *mat.Dense {
	centered := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				centered.Set(i, j, X.At(i, j)-p.Mean[j])
			}
		}
	})
	return centered
}

// FitTransform fits on X and returns the projected X.
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}
