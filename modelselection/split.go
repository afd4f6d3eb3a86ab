// Package modelselection provides leave-one-group-out splitting, grid
// search, and nested cross-validation for hyperparameter evaluation
// without information leakage between model selection and scoring.
package modelselection

import (
	"sort"

	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Fold is one train/test partition. Indices refer to rows of the data the
// splitter was called with; Train and Test are disjoint.
type Fold struct {
	Train []int
	Test  []int

	// TestGroup is the group id held out in this fold.
	TestGroup int
}

// LeaveOneGroupOut produces one fold per distinct group id: the fold's
// test set is every index of that group, the train set everything else.
// Folds are ordered by ascending group id. The splitter keeps no state, so
// Split can be called any number of times over any group vector (the outer
// loop and each inner loop get independent fold sequences).
type LeaveOneGroupOut struct{}

// NumFolds returns the number of folds Split would produce for groups.
func (LeaveOneGroupOut) NumFolds(groups []int) (int, error) {
	distinct, err := distinctGroups(groups)
	if err != nil {
		return 0, err
	}
	return len(distinct), nil
}

// Split partitions the index range [0, len(groups)) into folds. It fails
// with a validation error before producing any fold when groups is empty
// or contains fewer than 2 distinct values.
func (LeaveOneGroupOut) Split(groups []int) ([]Fold, error) {
	distinct, err := distinctGroups(groups)
	if err != nil {
		return nil, err
	}

	folds := make([]Fold, len(distinct))
	for fi, g := range distinct {
		fold := Fold{TestGroup: g}
		for i, gi := range groups {
			if gi == g {
				fold.Test = append(fold.Test, i)
			} else {
				fold.Train = append(fold.Train, i)
			}
		}
		folds[fi] = fold
	}
	return folds, nil
}

// distinctGroups returns the sorted distinct group ids, validating that
// cross-validation is possible at all.
func distinctGroups(groups []int) ([]int, error) {
	if len(groups) == 0 {
		return nil, errors.NewValidationError("groups", "group vector must not be empty", len(groups))
	}

	seen := make(map[int]bool)
	for _, g := range groups {
		seen[g] = true
	}
	if len(seen) < 2 {
		return nil, errors.NewValidationError("groups",
			"cross-validation requires at least 2 distinct groups", len(seen))
	}

	distinct := make([]int, 0, len(seen))
	for g := range seen {
		distinct = append(distinct, g)
	}
	sort.Ints(distinct)
	return distinct, nil
}

// subsetRows copies the given rows of X into a new matrix. The caller's
// data is never aliased.
func subsetRows(X mat.Matrix, rows []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, r := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(r, j))
		}
	}
	return out
}

// subsetInts copies the given positions of v into a new slice.
func subsetInts(v []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, p := range idx {
		out[i] = v[p]
	}
	return out
}
