package modelselection

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/neurogo/mvpa/core/model"
	"github.com/neurogo/mvpa/pkg/errors"
	mvpalog "github.com/neurogo/mvpa/pkg/log"
)

// FoldResult is the outcome of one outer fold: the hyperparameters the
// inner search selected, the score of the refit model on the held-out
// group, and the refit model itself. The model belongs to this fold alone.
type FoldResult struct {
	OuterFold  int
	TestGroup  int
	Params     ParamSet
	Score      float64
	InnerScore float64
	Model      model.Classifier
}

// NestedResult aggregates the outer folds of a nested cross-validation
// run. Folds are ordered by ascending held-out group id.
type NestedResult struct {
	Folds []FoldResult
}

// Scores returns the per-fold test scores in fold order.
func (r *NestedResult) Scores() []float64 {
	scores := make([]float64, len(r.Folds))
	for i, f := range r.Folds {
		scores[i] = f.Score
	}
	return scores
}

// MeanScore returns the mean of the per-fold test scores.
func (r *NestedResult) MeanScore() float64 {
	if len(r.Folds) == 0 {
		return 0
	}
	return stat.Mean(r.Scores(), nil)
}

// StdError returns the standard error of the mean score: the sample
// standard deviation of the fold scores divided by the square root of the
// fold count. Zero when fewer than two folds exist.
func (r *NestedResult) StdError() float64 {
	if len(r.Folds) < 2 {
		return 0
	}
	scores := r.Scores()
	return stat.StdDev(scores, nil) / math.Sqrt(float64(len(scores)))
}

// NestedCV estimates generalization performance without letting
// hyperparameter selection see the test data. Each outer
// leave-one-group-out fold runs a full GridSearchCV on its training
// partition only, refits the winning candidate on that entire training
// partition, and scores the refit model once on the held-out group.
//
// The procedure is fail-fast: any fit or score error anywhere aborts the
// whole run with no partial aggregate. When Parallelism is greater than 1,
// up to that many outer folds run concurrently; folds share no mutable
// state, aggregation waits for all of them, and the first failure cancels
// the folds still outstanding. The degree of parallelism never affects
// which hyperparameters are selected or what scores are produced.
type NestedCV struct {
	New         Constructor
	Grid        ParamGrid
	Parallelism int
	Logger      zerolog.Logger
}

// NewNestedCV creates a sequential NestedCV with a disabled logger.
func NewNestedCV(ctor Constructor, grid ParamGrid) *NestedCV {
	return &NestedCV{
		New:         ctor,
		Grid:        grid,
		Parallelism: 1,
		Logger:      mvpalog.Nop(),
	}
}

// Run executes the nested procedure over the full dataset.
func (cv *NestedCV) Run(X, y mat.Matrix, groups []int) (*NestedResult, error) {
	return cv.RunContext(context.Background(), X, y, groups)
}

// RunContext is Run with caller-controlled cancellation. Cancelling the
// context aborts outstanding folds and fails the run.
func (cv *NestedCV) RunContext(ctx context.Context, X, y mat.Matrix, groups []int) (*NestedResult, error) {
	if err := validateInputs("NestedCV.Run", cv.New, cv.Grid, X, y, groups); err != nil {
		return nil, err
	}

	folds, err := LeaveOneGroupOut{}.Split(groups)
	if err != nil {
		return nil, err
	}

	cv.Logger.Info().
		Int(mvpalog.FoldsKey, len(folds)).
		Int(mvpalog.CandidateKey, cv.Grid.Size()).
		Msg("nested cross-validation started")

	results := make([]FoldResult, len(folds))

	if cv.Parallelism <= 1 {
		for i, fold := range folds {
			res, err := cv.runFold(i, fold, X, y, groups)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return &NestedResult{Folds: results}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cv.Parallelism)
	for i, fold := range folds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := cv.runFold(i, fold, X, y, groups)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &NestedResult{Folds: results}, nil
}

// runFold executes one outer fold: inner search on the training partition,
// refit on the whole training partition, score on the held-out group. The
// refit deliberately uses all outer-training data, not just the winning
// inner fold's subset.
func (cv *NestedCV) runFold(idx int, fold Fold, X, y mat.Matrix, groups []int) (result FoldResult, err error) {
	defer errors.Recover(&err, "NestedCV.runFold")

	trainX := subsetRows(X, fold.Train)
	trainY := subsetRows(y, fold.Train)
	trainGroups := subsetInts(groups, fold.Train)

	search := NewGridSearchCV(cv.New, cv.Grid)
	search.Logger = cv.Logger.With().Int(mvpalog.FoldKey, idx).Logger()

	if err := search.Fit(trainX, trainY, trainGroups); err != nil {
		return FoldResult{}, errors.Wrapf(err, "outer fold %d (group %d)", idx, fold.TestGroup)
	}

	testX := subsetRows(X, fold.Test)
	testY := subsetRows(y, fold.Test)
	score, err := search.Score(testX, testY)
	if err != nil {
		return FoldResult{}, errors.Wrapf(err, "outer fold %d (group %d)", idx, fold.TestGroup)
	}

	cv.Logger.Info().
		Int(mvpalog.FoldKey, idx).
		Int(mvpalog.GroupKey, fold.TestGroup).
		Str(mvpalog.ParamsKey, search.BestParams().String()).
		Float64(mvpalog.ScoreKey, score).
		Msg("outer fold complete")

	return FoldResult{
		OuterFold:  idx,
		TestGroup:  fold.TestGroup,
		Params:     search.BestParams(),
		Score:      score,
		InnerScore: search.BestScore(),
		Model:      search.BestModel(),
	}, nil
}
