package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// HTTPLoader resolves models against an inference server implementing the
// load/predict HTTP contract. Loading returns the model's context length;
// prediction returns sampled trajectories.
type HTTPLoader struct {
	endpoint string
	client   *http.Client
}

type loadRequest struct {
	ModelPath string `json:"model_path"`
	DType     string `json:"dtype"`
	DeviceMap string `json:"device_map"`
}

type loadResponse struct {
	ModelPath     string `json:"model_path"`
	ContextLength int    `json:"context_length"`
}

type predictRequest struct {
	ModelPath             string    `json:"model_path"`
	Context               []float64 `json:"context"`
	PredictionLength      int       `json:"prediction_length"`
	NumSamples            *int      `json:"num_samples,omitempty"`
	Temperature           *float64  `json:"temperature,omitempty"`
	TopK                  *int      `json:"top_k,omitempty"`
	TopP                  *float64  `json:"top_p,omitempty"`
	LimitPredictionLength bool      `json:"limit_prediction_length"`
	Seed                  int64     `json:"seed"`
}

type predictResponse struct {
	Samples [][]float64 `json:"samples"`
}

// NewHTTPLoader creates a loader that talks to the inference server at
// endpoint.
func NewHTTPLoader(endpoint string) *HTTPLoader {
	return &HTTPLoader{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

// Load asks the server to load the model and returns a handle bound to it.
// Load errors from the server (unknown model path, incompatible precision or
// device) are surfaced unchanged in the error text.
func (l *HTTPLoader) Load(ctx context.Context, modelPath string, opts LoadOptions) (Pipeline, error) {
	req := loadRequest{
		ModelPath: modelPath,
		DType:     opts.DType,
		DeviceMap: opts.DeviceMap,
	}

	var resp loadResponse
	if err := l.post(ctx, "/v1/models/load", req, &resp); err != nil {
		return nil, err
	}
	if resp.ContextLength < 1 {
		return nil, fmt.Errorf("pipeline: server reported context length %d for %q", resp.ContextLength, modelPath)
	}

	return &httpPipeline{
		loader:        l,
		modelPath:     modelPath,
		contextLength: resp.ContextLength,
	}, nil
}

func (l *HTTPLoader) post(ctx context.Context, path string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("pipeline: marshal request, %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("pipeline: create request, %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := l.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("pipeline: http request failed, %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return fmt.Errorf("pipeline: http %d: %s", httpResp.StatusCode, string(errBody))
	}

	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("pipeline: decode response, %w", err)
	}
	return nil
}

// httpPipeline is a loaded model handle bound to an HTTPLoader.
type httpPipeline struct {
	loader        *HTTPLoader
	modelPath     string
	contextLength int
}

func (p *httpPipeline) ContextLength() int {
	return p.contextLength
}

func (p *httpPipeline) Predict(ctx context.Context, history []float64, predictionLength int, params SamplingParams) ([][]float64, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("pipeline: history cannot be empty")
	}
	if predictionLength < 1 {
		return nil, fmt.Errorf("pipeline: prediction length must be positive, got %d", predictionLength)
	}

	req := predictRequest{
		ModelPath:             p.modelPath,
		Context:               history,
		PredictionLength:      predictionLength,
		NumSamples:            params.NumSamples,
		Temperature:           params.Temperature,
		TopK:                  params.TopK,
		TopP:                  params.TopP,
		LimitPredictionLength: params.LimitPredictionLength,
		Seed:                  params.Seed,
	}

	var resp predictResponse
	if err := p.loader.post(ctx, "/v1/models/predict", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Samples) == 0 {
		return nil, fmt.Errorf("pipeline: server returned no samples")
	}
	for i, s := range resp.Samples {
		if len(s) < predictionLength {
			return nil, fmt.Errorf("pipeline: sample %d has %d steps, expected at least %d", i, len(s), predictionLength)
		}
	}
	return resp.Samples, nil
}
