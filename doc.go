// Package mvpa provides leave-one-run-out nested cross-validation for
// multi-voxel pattern analysis: decoding stimulus categories from
// block-design recordings without leaking held-out data into
// hyperparameter selection.
//
// # Quick Start
//
// Decode a synthetic 3-class block design with a PCA + logistic regression
// pipeline under a regularization grid:
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/neurogo/mvpa/core/model"
//	    "github.com/neurogo/mvpa/dataset"
//	    "github.com/neurogo/mvpa/decomposition"
//	    "github.com/neurogo/mvpa/linearmodel"
//	    "github.com/neurogo/mvpa/modelselection"
//	    "github.com/neurogo/mvpa/pipeline"
//	)
//
//	func main() {
//	    X, y, groups, err := dataset.BlockDesign(6, 12, 30, 3, 1.5, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ctor := func(params modelselection.ParamSet) (model.Classifier, error) {
//	        c, err := params.Float("C")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return pipeline.New(
//	            linearmodel.NewLogisticRegression(linearmodel.WithC(c)),
//	            pipeline.Step{Name: "pca", Transformer: decomposition.NewPCA(10)},
//	        ), nil
//	    }
//
//	    cv := modelselection.NewNestedCV(ctor, modelselection.ParamGrid{
//	        "C": {0.1, 1.0, 10.0},
//	    })
//	    result, err := cv.Run(X, y, groups)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    result.WriteReport(os.Stdout)
//	}
//
// # Packages
//
//   - modelselection: leave-one-group-out splitting, grid search, nested
//     cross-validation, reporting
//   - linearmodel: logistic regression with inverse regularization strength C
//   - svm: linear support vector classification with cost parameter C
//   - decomposition: PCA
//   - pipeline: transformer chains ending in a classifier
//   - preprocessing: feature scaling, within-run z-scoring
//   - dataset: synthetic block designs, label permutation
//   - metrics: accuracy, confusion matrix, chance level
//   - core/model: shared estimator interfaces
//
// # Design
//
// The nested procedure is deterministic: grid candidates are enumerated in
// a documented order, ties keep the earliest candidate, and no unseeded
// randomness exists anywhere in the procedure. Any fit or score failure
// aborts the whole run; degenerate folds are surfaced as errors, never
// silently skipped or replaced with default scores. Outer folds may run in
// parallel (NestedCV.Parallelism) without affecting any selected
// hyperparameter or score.
package mvpa
