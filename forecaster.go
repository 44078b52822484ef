// Package seqcast adapts externally supplied pretrained probabilistic
// time-series pipelines to a plain fit/predict forecasting interface. All
// modeling (training, sampling, uncertainty) lives in the pipeline; the
// forecaster reshapes flat or panel input into the 1-D sequences the pipeline
// consumes, truncates history to the model's context length, collapses the
// sampled trajectories to per-step medians, and reassembles the result on the
// caller's original indexing scheme restricted to the requested horizon.
package seqcast

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/seqcast/seqcast/horizon"
	"github.com/seqcast/seqcast/pipeline"
	"github.com/seqcast/seqcast/stats"
	"github.com/seqcast/seqcast/timeseries"
)

var (
	ErrNoModelPath       = errors.New("no model path provided")
	ErrNotFitted         = errors.New("forecaster has not been fit")
	ErrNoSeries          = errors.New("no series provided at fit or predict time")
	ErrUnsupportedTable  = errors.New("unsupported series table type")
	ErrHorizonOutOfRange = errors.New("requested horizon point is beyond the generated future steps")
)

// Forecaster adapts a pretrained sequence forecasting pipeline to a
// fit/predict interface over Dataset and Panel tables. The pipeline is loaded
// lazily on the first Fit call and reused across subsequent predicts.
// Exogenous covariates are accepted and ignored; the pretrained model is
// exogenous-blind. A Forecaster is not safe for concurrent use.
type Forecaster struct {
	modelPath string
	cfg       *Config
	seed      int64
	loader    pipeline.Loader

	pipe pipeline.Pipeline
	y    timeseries.Table
}

// New creates a Forecaster for the model at modelPath using an HTTP loader
// bound to the configured endpoint. If cfg is nil the documented defaults are
// used. When no seed is configured one is drawn pseudo-randomly and retained
// so repeated predicts stay reproducible.
func New(modelPath string, cfg *Config) (*Forecaster, error) {
	return NewWithLoader(modelPath, cfg, nil)
}

// NewWithLoader creates a Forecaster resolving models through the provided
// loader. A nil loader falls back to the HTTP loader at cfg.Endpoint.
func NewWithLoader(modelPath string, cfg *Config, loader pipeline.Loader) (*Forecaster, error) {
	if modelPath == "" {
		return nil, ErrNoModelPath
	}
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := rand.Int63n(1 << 31)
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	if loader == nil {
		loader = pipeline.NewHTTPLoader(cfg.Endpoint)
	}

	return &Forecaster{
		modelPath: modelPath,
		cfg:       cfg,
		seed:      seed,
		loader:    loader,
	}, nil
}

// Seed returns the sampling seed retained at construction.
func (f *Forecaster) Seed() int64 {
	return f.seed
}

// Fit loads the pretrained pipeline once and retains y for predict calls that
// supply no overriding series. A second Fit that finds the pipeline already
// loaded does not reload it. x carries exogenous covariates and is ignored,
// as is fh; neither is required ahead of predict. Load errors are surfaced
// from the loader unchanged.
func (f *Forecaster) Fit(ctx context.Context, y, x timeseries.Table, fh *horizon.Horizon) error {
	_ = x
	_ = fh
	if y == nil {
		return ErrNoSeries
	}

	if f.pipe == nil {
		pipe, err := f.loader.Load(ctx, f.modelPath, pipeline.LoadOptions{
			DType:     f.cfg.DType,
			DeviceMap: f.cfg.DeviceMap,
		})
		if err != nil {
			return fmt.Errorf("unable to load pretrained pipeline, %w", err)
		}
		f.pipe = pipe
	}

	f.y = y
	return nil
}

type group struct {
	key string
	d   *timeseries.Dataset
}

// groups flattens a table into its per-key datasets. Panels must share one
// identical time index across groups; mismatched indices are rejected here,
// before any pipeline call is made.
func groups(y timeseries.Table) ([]group, error) {
	switch v := y.(type) {
	case *timeseries.Dataset:
		return []group{{d: v}}, nil
	case *timeseries.Panel:
		if err := v.SameIndex(); err != nil {
			return nil, fmt.Errorf("malformed panel, %w", err)
		}
		gs := make([]group, 0, v.NumGroups())
		for _, key := range v.Keys() {
			gs = append(gs, group{key: key, d: v.Group(key)})
		}
		return gs, nil
	default:
		return nil, fmt.Errorf("%T, %w", y, ErrUnsupportedTable)
	}
}

// Predict forecasts every value column of every group at the requested
// horizon. A nil y falls back to the series retained at fit time; a nil fh
// defaults to a single step ahead. Requested horizon points must land on
// strictly positive whole steps after the end of the observed series; the
// prediction length handed to the pipeline is the maximum requested offset
// and any extra generated steps are dropped from the output. The output
// mirrors the input: a Dataset for a flat series, a Panel with the same keys
// for panel input, rows ascending in time within a group.
func (f *Forecaster) Predict(ctx context.Context, fh *horizon.Horizon, y, x timeseries.Table) (timeseries.Table, error) {
	_ = x
	if f.pipe == nil {
		return nil, ErrNotFitted
	}

	if y == nil {
		y = f.y
	}
	if y == nil {
		return nil, ErrNoSeries
	}

	gs, err := groups(y)
	if err != nil {
		return nil, err
	}

	if fh == nil {
		fh, err = horizon.FromRange(1)
		if err != nil {
			return nil, err
		}
	}

	ref := gs[0].d
	cutoff := ref.Cutoff()
	interval, err := ref.Interval()
	if err != nil {
		return nil, fmt.Errorf("unable to infer step interval, %w", err)
	}

	predictionLength, err := fh.MaxStep(cutoff, interval)
	if err != nil {
		return nil, err
	}
	requestedSteps, err := fh.ToRelative(cutoff, interval)
	if err != nil {
		return nil, err
	}
	requestedTimes, err := fh.ToAbsolute(cutoff, interval)
	if err != nil {
		return nil, err
	}

	params := pipeline.SamplingParams{
		NumSamples:  f.cfg.NumSamples,
		Temperature: f.cfg.Temperature,
		TopK:        f.cfg.TopK,
		TopP:        f.cfg.TopP,
		// truncation and length limiting are handled here, not delegated
		LimitPredictionLength: false,
		Seed:                  f.seed,
	}

	contextLength := f.pipe.ContextLength()

	var out *timeseries.Panel
	if _, isPanel := y.(*timeseries.Panel); isPanel {
		out = timeseries.NewPanel()
	}

	for _, g := range gs {
		cols := make([][]float64, len(g.d.Columns))
		for ci, colName := range g.d.Columns {
			history := g.d.Y[ci]
			if len(history) > contextLength {
				history = history[len(history)-contextLength:]
			}

			samples, err := f.pipe.Predict(ctx, history, predictionLength, params)
			if err != nil {
				return nil, fmt.Errorf("unable to predict group %q column %q, %w", g.key, colName, err)
			}
			med, err := stats.MedianTrajectory(samples)
			if err != nil {
				return nil, fmt.Errorf("unable to reduce samples for group %q column %q, %w", g.key, colName, err)
			}

			col := make([]float64, 0, len(requestedSteps))
			for _, step := range requestedSteps {
				if step > len(med) {
					return nil, fmt.Errorf("step %d with %d generated, %w", step, len(med), ErrHorizonOutOfRange)
				}
				col = append(col, med[step-1])
			}
			cols[ci] = col
		}

		pred, err := timeseries.NewDataset(requestedTimes, g.d.Columns, cols)
		if err != nil {
			return nil, fmt.Errorf("unable to assemble forecast for group %q, %w", g.key, err)
		}

		if out == nil {
			return pred, nil
		}
		if err := out.Add(g.key, pred); err != nil {
			return nil, fmt.Errorf("unable to assemble forecast panel, %w", err)
		}
	}
	return out, nil
}
