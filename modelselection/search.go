package modelselection

import (
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/pkg/errors"
	mvpalog "github.com/neurogo/mvpa/pkg/log"
)

// Constructor builds a fresh classifier for a hyperparameter candidate.
// Grid search and nested cross-validation never reuse a model across
// folds; every fit gets a new instance.
type Constructor func(params ParamSet) (model.Classifier, error)

// CandidateResult holds the validation outcome of one grid point.
type CandidateResult struct {
	Params     ParamSet
	MeanScore  float64
	FoldScores []float64
}

// GridSearchCV is an exhaustive hyperparameter search scored by
// leave-one-group-out cross-validation. After the search it refits a model
// with the winning candidate on the complete training input, so a fitted
// GridSearchCV predicts and scores like the classifier it selected.
//
// Every candidate is evaluated on every fold; a fit or score failure on
// any fold aborts the whole search rather than skipping the fold, so a
// degenerate subset can never silently corrupt a candidate's mean score.
// The best candidate is the one with the maximum mean validation score;
// ties keep the earliest candidate in ParamGrid.Candidates order.
type GridSearchCV struct {
	model.BaseEstimator

	New    Constructor
	Grid   ParamGrid
	Logger zerolog.Logger

	bestParams ParamSet
	bestScore  float64
	bestModel  model.Classifier
	results    []CandidateResult
}

// NewGridSearchCV creates a GridSearchCV with a disabled logger.
func NewGridSearchCV(ctor Constructor, grid ParamGrid) *GridSearchCV {
	return &GridSearchCV{
		New:    ctor,
		Grid:   grid,
		Logger: mvpalog.Nop(),
	}
}

// validateInputs runs the pre-flight checks shared by grid search and
// nested cross-validation. It fails before any fold is executed.
func validateInputs(op string, ctor Constructor, grid ParamGrid, X, y mat.Matrix, groups []int) error {
	if ctor == nil {
		return errors.NewValidationError("new", op+" requires a model constructor", nil)
	}
	if err := grid.Validate(); err != nil {
		return err
	}

	xRows, xCols := X.Dims()
	yRows, yCols := y.Dims()
	if xRows == 0 || xCols == 0 {
		return errors.NewValueError(op, "empty observation matrix")
	}
	if yCols != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if yRows != xRows {
		return errors.NewDimensionError(op, xRows, yRows, 0)
	}
	if len(groups) != xRows {
		return errors.NewDimensionError(op, xRows, len(groups), 0)
	}
	return nil
}

// Fit runs the search: for every candidate in Grid.Candidates order, fit
// and score across leave-one-group-out folds of (X, y, groups), average
// the fold scores, pick the maximum, then refit on all of X with the
// winning candidate.
func (g *GridSearchCV) Fit(X, y mat.Matrix, groups []int) error {
	if err := validateInputs("GridSearchCV.Fit", g.New, g.Grid, X, y, groups); err != nil {
		return err
	}

	folds, err := LeaveOneGroupOut{}.Split(groups)
	if err != nil {
		return err
	}

	candidates := g.Grid.Candidates()
	g.results = make([]CandidateResult, 0, len(candidates))

	bestIdx := -1
	for ci, params := range candidates {
		scores := make([]float64, len(folds))
		for fi, fold := range folds {
			score, err := g.evalFold(params, X, y, fold)
			if err != nil {
				return errors.Wrapf(err, "candidate %d (%s), validation fold %d", ci, params, fi)
			}
			scores[fi] = score
		}

		mean := stat.Mean(scores, nil)
		g.results = append(g.results, CandidateResult{
			Params:     params.clone(),
			MeanScore:  mean,
			FoldScores: scores,
		})

		g.Logger.Debug().
			Int(mvpalog.CandidateKey, ci).
			Str(mvpalog.ParamsKey, params.String()).
			Float64(mvpalog.MeanScoreKey, mean).
			Msg("candidate evaluated")

		// Strictly greater keeps the earliest candidate on ties.
		if bestIdx < 0 || mean > g.bestScore {
			bestIdx = ci
			g.bestScore = mean
		}
	}

	g.bestParams = candidates[bestIdx].clone()

	// Refit on the complete training input with the winning candidate.
	refit, err := g.New(g.bestParams)
	if err != nil {
		return errors.Wrap(err, "constructing refit model")
	}
	if err := refit.Fit(X, y); err != nil {
		return errors.Wrapf(err, "refitting best candidate (%s)", g.bestParams)
	}
	g.bestModel = refit

	g.Logger.Info().
		Str(mvpalog.ParamsKey, g.bestParams.String()).
		Float64(mvpalog.MeanScoreKey, g.bestScore).
		Int(mvpalog.FoldsKey, len(folds)).
		Msg("grid search complete")

	g.SetFitted()
	return nil
}

// evalFold fits a fresh model on the fold's train subset and scores it on
// the fold's test subset.
func (g *GridSearchCV) evalFold(params ParamSet, X, y mat.Matrix, fold Fold) (float64, error) {
	clf, err := g.New(params)
	if err != nil {
		return 0, errors.Wrap(err, "constructing model")
	}

	trainX := subsetRows(X, fold.Train)
	trainY := subsetRows(y, fold.Train)
	if err := clf.Fit(trainX, trainY); err != nil {
		return 0, err
	}

	testX := subsetRows(X, fold.Test)
	testY := subsetRows(y, fold.Test)
	score, err := clf.Score(testX, testY)
	if err != nil {
		return 0, err
	}
	return score, nil
}

// BestParams returns the winning hyperparameter candidate.
func (g *GridSearchCV) BestParams() ParamSet {
	return g.bestParams.clone()
}

// BestScore returns the mean validation score of the winning candidate.
func (g *GridSearchCV) BestScore() float64 {
	return g.bestScore
}

// BestModel returns the model refit on the full training input with the
// winning candidate, or nil before Fit.
func (g *GridSearchCV) BestModel() model.Classifier {
	return g.bestModel
}

// Results returns the per-candidate validation outcomes in enumeration
// order.
func (g *GridSearchCV) Results() []CandidateResult {
	out := make([]CandidateResult, len(g.results))
	copy(out, g.results)
	return out
}

// Predict delegates to the refit best model.
func (g *GridSearchCV) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "Predict")
	}
	return g.bestModel.Predict(X)
}

// PredictProba delegates to the refit best model.
func (g *GridSearchCV) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GridSearchCV", "PredictProba")
	}
	return g.bestModel.PredictProba(X)
}

// Score delegates to the refit best model.
func (g *GridSearchCV) Score(X, y mat.Matrix) (float64, error) {
	if !g.IsFitted() {
		return 0, errors.NewNotFittedError("GridSearchCV", "Score")
	}
	return g.bestModel.Score(X, y)
}

// Classes returns the class labels of the refit best model.
func (g *GridSearchCV) Classes() []int {
	if g.bestModel == nil {
		return nil
	}
	return g.bestModel.Classes()
}
