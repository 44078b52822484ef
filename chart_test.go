package seqcast

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqcast/seqcast/timeseries"
)

func TestPlotForecast(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	history, err := timeseries.NewUnivariateDataset(
		[]time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)},
		[]float64{1, 2, 3},
	)
	require.Nil(t, err)

	forecast, err := timeseries.NewUnivariateDataset(
		[]time.Time{start.Add(3 * time.Hour), start.Add(4 * time.Hour)},
		[]float64{4, 5},
	)
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "forecast.html")
	require.Nil(t, PlotForecast(path, history, forecast))

	info, err := os.Stat(path)
	require.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
