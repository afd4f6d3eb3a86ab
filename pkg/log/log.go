// Package log provides zerolog construction and the structured attribute
// keys used across the mvpa library.
//
// Cross-validation runs emit progress as structured events so a long grid
// search can be followed (and post-processed) from its log stream:
//
//	logger := log.New("debug", os.Stderr)
//	cv := modelselection.NestedCV{New: ctor, Grid: grid, Logger: logger}
//
// All procedures accept a zerolog.Logger by value and default to a no-op
// logger, so logging never changes behavior or determinism.
package log

import (
	"io"

	"github.com/rs/zerolog"
)

// Attribute keys used in structured log events.
const (
	OperationKey = "operation"
	ModelNameKey = "model"
	SamplesKey   = "samples"
	FeaturesKey  = "features"
	FoldKey      = "fold"
	FoldsKey     = "folds"
	GroupKey     = "group"
	CandidateKey = "candidate"
	ScoreKey     = "score"
	MeanScoreKey = "mean_score"
	ParamsKey    = "params"
)

// New creates a logger writing human-readable console output to w at the
// given level. Unknown level strings fall back to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// NewJSON creates a logger writing JSON lines to w at the given level.
func NewJSON(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a disabled logger. It is the default for every procedure
// struct in the library.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
