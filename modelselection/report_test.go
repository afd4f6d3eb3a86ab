package modelselection

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *NestedResult {
	return &NestedResult{Folds: []FoldResult{
		{OuterFold: 0, TestGroup: 0, Params: ParamSet{"C": 1.0}, Score: 0.9},
		{OuterFold: 1, TestGroup: 1, Params: ParamSet{"C": 0.1}, Score: 0.7},
		{OuterFold: 2, TestGroup: 2, Params: ParamSet{"C": 1.0}, Score: 0.8},
	}}
}

func TestNestedResultAggregates(t *testing.T) {
	r := sampleResult()

	assert.Equal(t, []float64{0.9, 0.7, 0.8}, r.Scores())
	assert.InDelta(t, 0.8, r.MeanScore(), 1e-12)

	// Sample stddev of {0.9, 0.7, 0.8} is 0.1; stderr = 0.1/sqrt(3).
	assert.InDelta(t, 0.05773502691896258, r.StdError(), 1e-12)
}

func TestNestedResultStdErrorSingleFold(t *testing.T) {
	r := &NestedResult{Folds: []FoldResult{{Score: 0.5}}}
	assert.Equal(t, 0.0, r.StdError())
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleResult().WriteReport(&buf))

	out := buf.String()
	assert.Contains(t, out, "fold")
	assert.Contains(t, out, "C=1")
	assert.Contains(t, out, "0.9000")
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "stderr")
}

func TestWriteReportEmpty(t *testing.T) {
	r := &NestedResult{}
	var buf bytes.Buffer
	assert.Error(t, r.WriteReport(&buf))
}

func TestSaveScoresPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.png")
	require.NoError(t, sampleResult().SaveScoresPlot(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveScoresPlotEmpty(t *testing.T) {
	r := &NestedResult{}
	assert.Error(t, r.SaveScoresPlot(filepath.Join(t.TempDir(), "x.png")))
}
