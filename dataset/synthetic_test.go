package dataset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBlockDesignShapes(t *testing.T) {
	X, y, groups, err := BlockDesign(3, 10, 8, 3, 2.0, 42)
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 30, r)
	assert.Equal(t, 8, c)

	yr, yc := y.Dims()
	assert.Equal(t, 30, yr)
	assert.Equal(t, 1, yc)
	assert.Len(t, groups, 30)

	// 3 runs of 10 samples.
	for i, g := range groups {
		assert.Equal(t, i/10, g)
	}

	// Labels cycle through classes, so each run is nearly balanced.
	counts := map[int]int{}
	for i := 0; i < 10; i++ {
		counts[int(y.At(i, 0))]++
	}
	assert.Len(t, counts, 3)
}

func TestBlockDesignDeterministicPerSeed(t *testing.T) {
	X1, y1, _, err := BlockDesign(2, 6, 4, 2, 1.5, 7)
	require.NoError(t, err)
	X2, y2, _, err := BlockDesign(2, 6, 4, 2, 1.5, 7)
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2))
	assert.True(t, mat.Equal(y1, y2))

	X3, _, _, err := BlockDesign(2, 6, 4, 2, 1.5, 8)
	require.NoError(t, err)
	assert.False(t, mat.Equal(X1, X3))
}

func TestBlockDesignValidation(t *testing.T) {
	cases := []struct {
		name                                       string
		groups, samplesPerGroup, features, classes int
	}{
		{"no groups", 0, 10, 4, 3},
		{"no samples", 3, 0, 4, 3},
		{"no features", 3, 10, 0, 3},
		{"single class", 3, 10, 4, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := BlockDesign(tc.groups, tc.samplesPerGroup, tc.features, tc.classes, 1, 1)
			assert.Error(t, err)
		})
	}
}

func TestPermuteLabels(t *testing.T) {
	y := mat.NewDense(9, 1, []float64{0, 0, 0, 1, 1, 1, 2, 2, 2})

	rng := rand.New(rand.NewPCG(99, 99))
	permuted, err := PermuteLabels(y, rng)
	require.NoError(t, err)

	// Same multiset of labels.
	counts := map[int]int{}
	for i := 0; i < 9; i++ {
		counts[int(permuted.At(i, 0))]++
	}
	assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3}, counts)

	// Original untouched.
	assert.Equal(t, 0.0, y.At(0, 0))
	assert.Equal(t, 2.0, y.At(8, 0))

	// Same seed, same permutation.
	rng2 := rand.New(rand.NewPCG(99, 99))
	permuted2, err := PermuteLabels(y, rng2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(permuted, permuted2))
}

func TestPermuteLabelsNilRNG(t *testing.T) {
	y := mat.NewDense(3, 1, []float64{0, 1, 2})
	_, err := PermuteLabels(y, nil)
	assert.Error(t, err)
}
