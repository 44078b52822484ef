// Package pipeline defines the contract for externally supplied pretrained
// sequence forecasting pipelines and a client for inference servers exposing
// them over HTTP. The pipeline is opaque: it owns model parameters, sampling,
// and device placement, and the forecaster only feeds it truncated history
// and reads back sampled future trajectories.
package pipeline

import "context"

// LoadOptions carries the placement settings handed to a Loader.
type LoadOptions struct {
	// DType is the numeric precision the model should be loaded with,
	// e.g. "bfloat16" or "float32".
	DType string
	// DeviceMap is the compute placement, e.g. "cpu", "cuda", or "mps".
	DeviceMap string
}

// SamplingParams carries per-call sampling settings. Nil pointer fields mean
// the pretrained model's own default is used.
type SamplingParams struct {
	NumSamples  *int
	Temperature *float64
	TopK        *int
	TopP        *float64
	// LimitPredictionLength asks the pipeline to enforce its own prediction
	// length ceiling. The forecaster disables this and truncates on its side.
	LimitPredictionLength bool
	// Seed scopes the pipeline's random state for this call so repeated
	// calls with unchanged inputs are reproducible.
	Seed int64
}

// Pipeline is a loaded pretrained model handle. Predict takes a 1-D
// historical sequence and returns one sampled future trajectory per sample,
// each of length predictionLength.
type Pipeline interface {
	// ContextLength is the maximum number of trailing historical steps the
	// model can consume.
	ContextLength() int
	Predict(ctx context.Context, history []float64, predictionLength int, params SamplingParams) ([][]float64, error)
}

// Loader resolves a model identifier into a loaded Pipeline.
type Loader interface {
	Load(ctx context.Context, modelPath string, opts LoadOptions) (Pipeline, error)
}
