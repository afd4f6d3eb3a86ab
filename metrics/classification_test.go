package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	mvpaerrors "github.com/neurogo/mvpa/pkg/errors"
)

func TestAccuracy(t *testing.T) {
	t.Run("Perfect predictions", func(t *testing.T) {
		yTrue := mat.NewDense(4, 1, []float64{0, 1, 2, 1})
		yPred := mat.NewDense(4, 1, []float64{0, 1, 2, 1})

		acc, err := Accuracy(yTrue, yPred)
		require.NoError(t, err)
		assert.Equal(t, 1.0, acc)
	})

	t.Run("Partial predictions", func(t *testing.T) {
		yTrue := mat.NewDense(4, 1, []float64{0, 1, 2, 1})
		yPred := mat.NewDense(4, 1, []float64{0, 1, 0, 0})

		acc, err := Accuracy(yTrue, yPred)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, acc, 1e-12)
	})

	t.Run("Empty input", func(t *testing.T) {
		yTrue := &mat.Dense{}
		_, err := Accuracy(yTrue, yTrue)
		assert.Error(t, err)
	})

	t.Run("Length mismatch", func(t *testing.T) {
		yTrue := mat.NewDense(4, 1, []float64{0, 1, 2, 1})
		yPred := mat.NewDense(3, 1, []float64{0, 1, 2})

		_, err := Accuracy(yTrue, yPred)
		require.Error(t, err)

		var de *mvpaerrors.DimensionError
		assert.True(t, mvpaerrors.As(err, &de))
	})
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewDense(6, 1, []float64{0, 0, 1, 1, 2, 2})
	yPred := mat.NewDense(6, 1, []float64{0, 1, 1, 1, 2, 0})

	cm, err := ConfusionMatrix(yTrue, yPred, []int{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, 1.0, cm.At(0, 0))
	assert.Equal(t, 1.0, cm.At(0, 1))
	assert.Equal(t, 2.0, cm.At(1, 1))
	assert.Equal(t, 1.0, cm.At(2, 2))
	assert.Equal(t, 1.0, cm.At(2, 0))

	t.Run("Unknown label", func(t *testing.T) {
		_, err := ConfusionMatrix(yTrue, yPred, []int{0, 1})
		assert.Error(t, err)
	})
}

func TestChanceLevel(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, ChanceLevel(3), 1e-12)
	assert.Equal(t, 0.5, ChanceLevel(2))
	assert.Equal(t, 0.0, ChanceLevel(0))
}
