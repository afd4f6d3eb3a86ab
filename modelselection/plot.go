package modelselection

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/neurogo/mvpa/pkg/errors"
)

// SaveScoresPlot renders the per-fold test scores as a bar chart with a
// horizontal line at the mean, and writes it to path (format chosen by
// extension, e.g. .png or .pdf).
func (r *NestedResult) SaveScoresPlot(path string) error {
	if len(r.Folds) == 0 {
		return errors.NewValueError("NestedResult.SaveScoresPlot", "no fold results")
	}

	p := plot.New()
	p.Title.Text = "Nested cross-validation scores"
	p.Y.Label.Text = "accuracy"
	p.Y.Min = 0
	p.Y.Max = 1

	scores := r.Scores()
	bars, err := plotter.NewBarChart(plotter.Values(scores), vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	p.Add(bars)

	labels := make([]string, len(r.Folds))
	for i, f := range r.Folds {
		labels[i] = fmt.Sprintf("group %d", f.TestGroup)
	}
	p.NominalX(labels...)

	mean := r.MeanScore()
	meanLine, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: mean},
		{X: float64(len(scores)) - 0.5, Y: mean},
	})
	if err != nil {
		return errors.Wrap(err, "building mean line")
	}
	p.Add(meanLine)
	p.Legend.Add("mean", meanLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving plot")
	}
	return nil
}
