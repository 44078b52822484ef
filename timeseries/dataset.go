// Package timeseries provides the series containers consumed by the
// forecaster: a flat multi-column Dataset and a keyed Panel of datasets
// sharing one time index.
package timeseries

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoData             = errors.New("no observations")
	ErrNonMonotonic       = errors.New("time index is not monotonically increasing")
	ErrDatasetLenMismatch = errors.New("time index has a different length than observations")
	ErrColumnLenMismatch  = errors.New("column count has a different length than value slices")
	ErrShortSeries        = errors.New("series needs at least 2 points to infer a step interval")
)

// Table is a series container accepted by the forecaster. A flat Dataset and
// a keyed Panel both satisfy it.
type Table interface {
	table()
}

// Dataset represents a time-indexed table storing a shared slice of time
// points and one value slice per named column. All slices must be of the
// same length.
type Dataset struct {
	T       []time.Time
	Columns []string
	Y       [][]float64
}

func (d *Dataset) table() {}

// NewDataset returns a Dataset given a time slice, column names, and one
// value slice per column. The time index must be strictly increasing.
func NewDataset(t []time.Time, columns []string, y [][]float64) (*Dataset, error) {
	if len(y) == 0 || len(t) == 0 {
		return nil, ErrNoData
	}
	if len(columns) != len(y) {
		return nil, fmt.Errorf(
			"got %d column names, but %d value slices, %w",
			len(columns), len(y), ErrColumnLenMismatch,
		)
	}
	for i, col := range y {
		if len(col) != len(t) {
			return nil, fmt.Errorf(
				"time index has length of %d, but column %q has a length of %d, %w",
				len(t), columns[i], len(col), ErrDatasetLenMismatch,
			)
		}
	}

	var lastT time.Time
	for i := 0; i < len(t); i++ {
		currT := t[i]
		if currT.Before(lastT) || currT.Equal(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		lastT = currT
	}

	tSeries := make([]time.Time, len(t))
	copy(tSeries, t)
	cols := make([]string, len(columns))
	copy(cols, columns)
	ySeries := make([][]float64, len(y))
	for i, col := range y {
		ySeries[i] = make([]float64, len(col))
		copy(ySeries[i], col)
	}

	return &Dataset{T: tSeries, Columns: cols, Y: ySeries}, nil
}

// NewUnivariateDataset returns a single-column Dataset named "y" given a time
// and value slice.
func NewUnivariateDataset(t []time.Time, y []float64) (*Dataset, error) {
	return NewDataset(t, []string{"y"}, [][]float64{y})
}

// Len returns the number of time points in the dataset.
func (d *Dataset) Len() int {
	return len(d.T)
}

// Cutoff returns the last observed time point.
func (d *Dataset) Cutoff() time.Time {
	return d.T[len(d.T)-1]
}

// Interval infers the step interval from the trailing pair of time points.
func (d *Dataset) Interval() (time.Duration, error) {
	if len(d.T) < 2 {
		return 0, ErrShortSeries
	}
	return d.T[len(d.T)-1].Sub(d.T[len(d.T)-2]), nil
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	tSeries := make([]time.Time, len(d.T))
	copy(tSeries, d.T)
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	ySeries := make([][]float64, len(d.Y))
	for i, col := range d.Y {
		ySeries[i] = make([]float64, len(col))
		copy(ySeries[i], col)
	}
	return &Dataset{T: tSeries, Columns: cols, Y: ySeries}
}
