// Package metrics provides classification metrics over gonum matrices.
package metrics

import (
	"github.com/neurogo/mvpa/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy computes the fraction of correctly predicted labels.
// yTrue and yPred are samples x 1 matrices of class labels.
func Accuracy(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label vector")
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("Accuracy", "labels must be column vectors (n x 1)")
	}
	if rPred != rTrue {
		return 0, errors.NewDimensionError("Accuracy", rTrue, rPred, 0)
	}

	correct := 0
	for i := 0; i < rTrue; i++ {
		if int(yTrue.At(i, 0)) == int(yPred.At(i, 0)) {
			correct++
		}
	}

	return float64(correct) / float64(rTrue), nil
}

// ConfusionMatrix computes the classes x classes count matrix over the
// given sorted class labels. Rows are true classes, columns predicted.
// Labels outside classes are a ValueError.
func ConfusionMatrix(yTrue, yPred mat.Matrix, classes []int) (*mat.Dense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty label vector")
	}
	if cTrue != 1 || cPred != 1 {
		return nil, errors.NewValueError("ConfusionMatrix", "labels must be column vectors (n x 1)")
	}
	if rPred != rTrue {
		return nil, errors.NewDimensionError("ConfusionMatrix", rTrue, rPred, 0)
	}
	if len(classes) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty class list")
	}

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	cm := mat.NewDense(len(classes), len(classes), nil)
	for i := 0; i < rTrue; i++ {
		ti, ok := index[int(yTrue.At(i, 0))]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix", "true label not in class list")
		}
		pi, ok := index[int(yPred.At(i, 0))]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix", "predicted label not in class list")
		}
		cm.Set(ti, pi, cm.At(ti, pi)+1)
	}

	return cm, nil
}

// ChanceLevel returns the expected accuracy under the null hypothesis for
// balanced classification: 1 / number of classes.
func ChanceLevel(nClasses int) float64 {
	if nClasses <= 0 {
		return 0
	}
	return 1 / float64(nClasses)
}
