package modelselection

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	coremodel "github.com/neurogo/mvpa/core/model"
	mvpaerrors "github.com/neurogo/mvpa/pkg/errors"
)

// stubClassifier is a deterministic fake whose score depends only on its
// configured value. It counts fits so tests can assert how many models a
// search trains.
type stubClassifier struct {
	coremodel.BaseEstimator
	score  float64
	fitErr error
	fits   *int32
}

func (s *stubClassifier) Fit(X, y mat.Matrix) error {
	if s.fits != nil {
		atomic.AddInt32(s.fits, 1)
	}
	if s.fitErr != nil {
		return s.fitErr
	}
	s.SetFitted()
	return nil
}

func (s *stubClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	return mat.NewDense(r, 1, nil), nil
}

func (s *stubClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	return mat.NewDense(r, 2, nil), nil
}

func (s *stubClassifier) Score(X, y mat.Matrix) (float64, error) {
	return s.score, nil
}

func (s *stubClassifier) Classes() []int {
	return []int{0, 1}
}

// stubConstructor scores each candidate by looking its C value up in the
// given table.
func stubConstructor(scores map[float64]float64, fits *int32) Constructor {
	return func(params ParamSet) (coremodel.Classifier, error) {
		c, err := params.Float("C")
		if err != nil {
			return nil, err
		}
		return &stubClassifier{score: scores[c], fits: fits}, nil
	}
}

// twoGroupData returns a tiny dataset with 2 groups of 3 samples.
func twoGroupData() (*mat.Dense, *mat.Dense, []int) {
	X := mat.NewDense(6, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	y := mat.NewDense(6, 1, []float64{0, 1, 0, 1, 0, 1})
	groups := []int{0, 0, 0, 1, 1, 1}
	return X, y, groups
}

func TestGridSearchCVSelectsBestMean(t *testing.T) {
	X, y, groups := twoGroupData()
	var fits int32

	search := NewGridSearchCV(
		stubConstructor(map[float64]float64{0.1: 0.5, 1.0: 0.9, 10.0: 0.7}, &fits),
		ParamGrid{"C": {0.1, 1.0, 10.0}},
	)
	require.NoError(t, search.Fit(X, y, groups))

	assert.Equal(t, ParamSet{"C": 1.0}, search.BestParams())
	assert.InDelta(t, 0.9, search.BestScore(), 1e-12)

	// 3 candidates x 2 validation folds, plus one refit.
	assert.Equal(t, int32(7), atomic.LoadInt32(&fits))

	results := search.Results()
	require.Len(t, results, 3)
	assert.Equal(t, ParamSet{"C": 0.1}, results[0].Params)
	assert.Len(t, results[0].FoldScores, 2)
}

func TestGridSearchCVTieBreakFirstCandidate(t *testing.T) {
	X, y, groups := twoGroupData()

	search := NewGridSearchCV(
		stubConstructor(map[float64]float64{1.0: 0.8, 2.0: 0.8}, nil),
		ParamGrid{"C": {1.0, 2.0}},
	)
	require.NoError(t, search.Fit(X, y, groups))

	// Equal means: the earlier candidate in enumeration order wins.
	assert.Equal(t, ParamSet{"C": 1.0}, search.BestParams())
}

func TestGridSearchCVFailFastOnFitError(t *testing.T) {
	X, y, groups := twoGroupData()
	var fits int32

	ctor := func(params ParamSet) (coremodel.Classifier, error) {
		c, err := params.Float("C")
		if err != nil {
			return nil, err
		}
		var fitErr error
		if c == 10.0 {
			fitErr = mvpaerrors.NewFitError("stub", "degenerate training subset", nil)
		}
		return &stubClassifier{score: 0.5, fitErr: fitErr, fits: &fits}, nil
	}

	search := NewGridSearchCV(ctor, ParamGrid{"C": {10.0, 1.0}})
	err := search.Fit(X, y, groups)
	require.Error(t, err)

	var fe *mvpaerrors.FitError
	assert.True(t, mvpaerrors.As(err, &fe))

	// Aborted on the very first fit; the second candidate never ran.
	assert.Equal(t, int32(1), atomic.LoadInt32(&fits))
	assert.False(t, search.IsFitted())
}

func TestGridSearchCVValidation(t *testing.T) {
	X, y, groups := twoGroupData()
	var fits int32
	ctor := stubConstructor(map[float64]float64{1.0: 0.5}, &fits)

	t.Run("Group length mismatch", func(t *testing.T) {
		search := NewGridSearchCV(ctor, ParamGrid{"C": {1.0}})
		err := search.Fit(X, y, groups[:4])
		require.Error(t, err)

		var de *mvpaerrors.DimensionError
		assert.True(t, mvpaerrors.As(err, &de))
		assert.Equal(t, int32(0), atomic.LoadInt32(&fits))
	})

	t.Run("Label length mismatch", func(t *testing.T) {
		search := NewGridSearchCV(ctor, ParamGrid{"C": {1.0}})
		yShort := mat.NewDense(5, 1, nil)
		err := search.Fit(X, yShort, groups)
		require.Error(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(&fits))
	})

	t.Run("Nil constructor", func(t *testing.T) {
		search := NewGridSearchCV(nil, ParamGrid{"C": {1.0}})
		assert.Error(t, search.Fit(X, y, groups))
	})

	t.Run("Empty grid values", func(t *testing.T) {
		search := NewGridSearchCV(ctor, ParamGrid{"C": {}})
		assert.Error(t, search.Fit(X, y, groups))
	})
}

func TestGridSearchCVNotFitted(t *testing.T) {
	search := NewGridSearchCV(stubConstructor(nil, nil), ParamGrid{})

	_, err := search.Predict(mat.NewDense(2, 2, nil))
	require.Error(t, err)

	var nfe *mvpaerrors.NotFittedError
	assert.True(t, mvpaerrors.As(err, &nfe))

	_, err = search.Score(mat.NewDense(2, 2, nil), mat.NewDense(2, 1, nil))
	assert.Error(t, err)
}

func TestGridSearchCVEmptyGridStillRefits(t *testing.T) {
	X, y, groups := twoGroupData()
	var fits int32

	ctor := func(params ParamSet) (coremodel.Classifier, error) {
		return &stubClassifier{score: 0.6, fits: &fits}, nil
	}

	search := NewGridSearchCV(ctor, ParamGrid{})
	require.NoError(t, search.Fit(X, y, groups))

	// One empty candidate over 2 folds, plus the refit.
	assert.Equal(t, int32(3), atomic.LoadInt32(&fits))
	assert.Empty(t, search.BestParams())
	assert.True(t, search.IsFitted())
}
