package modelselection

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/neurogo/mvpa/pkg/errors"
)

// WriteReport renders the run as an aligned text table: one row per outer
// fold with the held-out group, selected hyperparameters, and test score,
// followed by the mean and standard error.
func (r *NestedResult) WriteReport(w io.Writer) error {
	if len(r.Folds) == 0 {
		return errors.NewValueError("NestedResult.WriteReport", "no fold results")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "fold\tgroup\tparams\tscore")
	for _, f := range r.Folds {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.4f\n", f.OuterFold, f.TestGroup, f.Params, f.Score)
	}
	fmt.Fprintf(tw, "mean\t\t\t%.4f\n", r.MeanScore())
	fmt.Fprintf(tw, "stderr\t\t\t%.4f\n", r.StdError())

	return tw.Flush()
}
