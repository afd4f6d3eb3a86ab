package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	r, c := scaled.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)

	// Each column must have mean 0 and std 1.
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		assert.InDelta(t, 0, mean, 1e-12)

		var sq float64
		for i := 0; i < r; i++ {
			d := scaled.At(i, j) - mean
			sq += d * d
		}
		assert.InDelta(t, 1, math.Sqrt(sq/float64(r)), 1e-12)
	}
}

func TestStandardScalerZeroVariance(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	// Centered but not divided by zero.
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, scaled.At(i, 0))
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	_, err := scaler.Transform(mat.NewDense(2, 2, nil))
	assert.Error(t, err)
}

func TestStandardScalerFeatureMismatch(t *testing.T) {
	scaler := NewStandardScaler()
	require.NoError(t, scaler.Fit(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})))

	_, err := scaler.Transform(mat.NewDense(3, 3, nil))
	assert.Error(t, err)
}

func TestScaleWithinGroups(t *testing.T) {
	// Two runs with very different baselines.
	X := mat.NewDense(6, 1, []float64{
		100, 101, 102, // run 0
		1, 2, 3, // run 1
	})
	groups := []int{0, 0, 0, 1, 1, 1}

	scaled, err := ScaleWithinGroups(X, groups)
	require.NoError(t, err)

	// After within-run scaling both runs look identical.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, scaled.At(i, 0), scaled.At(i+3, 0), 1e-12)
	}
}

func TestScaleWithinGroupsLengthMismatch(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	_, err := ScaleWithinGroups(X, []int{0, 0, 1})
	assert.Error(t, err)
}
