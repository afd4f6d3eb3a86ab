// Package dataset provides synthetic block-design data and label
// permutation utilities for decoding experiments.
package dataset

import (
	"math/rand/v2"

	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// BlockDesign generates a synthetic block-design dataset: nGroups scanner
// runs of samplesPerGroup observations each, nFeatures channels, labels
// cycling through nClasses within every run (balanced when samplesPerGroup
// is a multiple of nClasses). Each class shifts a distinct subset of
// features by sep; unit Gaussian noise is added on top, drawn from a PCG
// stream seeded with seed, so identical seeds give identical data.
//
// Returns the observation matrix, the label vector (samples x 1) and the
// group vector (one run id per observation).
func BlockDesign(nGroups, samplesPerGroup, nFeatures, nClasses int, sep float64, seed uint64) (*mat.Dense, *mat.Dense, []int, error) {
	if nGroups < 1 {
		return nil, nil, nil, errors.NewValidationError("n_groups", "must be at least 1", nGroups)
	}
	if samplesPerGroup < 1 {
		return nil, nil, nil, errors.NewValidationError("samples_per_group", "must be at least 1", samplesPerGroup)
	}
	if nFeatures < 1 {
		return nil, nil, nil, errors.NewValidationError("n_features", "must be at least 1", nFeatures)
	}
	if nClasses < 2 {
		return nil, nil, nil, errors.NewValidationError("n_classes", "must be at least 2", nClasses)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	nSamples := nGroups * samplesPerGroup

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewDense(nSamples, 1, nil)
	groups := make([]int, nSamples)

	row := 0
	for g := 0; g < nGroups; g++ {
		for s := 0; s < samplesPerGroup; s++ {
			class := s % nClasses
			for j := 0; j < nFeatures; j++ {
				v := rng.NormFloat64()
				if j%nClasses == class {
					v += sep
				}
				X.Set(row, j, v)
			}
			y.Set(row, 0, float64(class))
			groups[row] = g
			row++
		}
	}

	return X, y, groups, nil
}

// PermuteLabels returns a random permutation of the label vector y. The
// random source is an explicit parameter, never ambient state, so callers
// control reproducibility. y is not modified.
func PermuteLabels(y mat.Matrix, rng *rand.Rand) (*mat.Dense, error) {
	if rng == nil {
		return nil, errors.NewValidationError("rng", "random source must not be nil", nil)
	}

	r, c := y.Dims()
	if r == 0 {
		return nil, errors.NewValueError("PermuteLabels", "empty label vector")
	}
	if c != 1 {
		return nil, errors.NewValueError("PermuteLabels", "y must be a column vector")
	}

	perm := rng.Perm(r)
	out := mat.NewDense(r, 1, nil)
	for i, p := range perm {
		out.Set(i, 0, y.At(p, 0))
	}
	return out, nil
}
