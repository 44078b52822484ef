package seqcast

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"

	"github.com/seqcast/seqcast/horizon"
	"github.com/seqcast/seqcast/timeseries"
)

var benchPredictRes timeseries.Table

func benchForecaster(b *testing.B, n int) (*Forecaster, *horizon.Horizon) {
	b.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t := make([]time.Time, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(time.Duration(i)*time.Minute))
		y = append(y, float64(i%1440))
	}
	ds, err := timeseries.NewUnivariateDataset(t, y)
	if err != nil {
		b.Fatal(err)
	}

	seed := int64(42)
	f, err := NewWithLoader(
		"amazon/chronos-t5-tiny",
		&Config{Seed: &seed},
		&stubLoader{pipe: &stubPipeline{contextLength: 512}},
	)
	if err != nil {
		b.Fatal(err)
	}
	if err := f.Fit(context.Background(), ds, nil, nil); err != nil {
		b.Fatal(err)
	}

	fh, err := horizon.FromRange(64)
	if err != nil {
		b.Fatal(err)
	}
	return f, fh
}

func BenchmarkPredict(b *testing.B) {
	f, fh := benchForecaster(b, 10080)

	var err error
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for i := 0; i < b.N; i++ {
		benchPredictRes, err = f.Predict(context.Background(), fh, nil, nil)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkForecastToJSON(b *testing.B) {
	f, fh := benchForecaster(b, 10080)

	res, err := f.Predict(context.Background(), fh, nil, nil)
	if err != nil {
		panic(err)
	}

	var bytes []byte
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bytes, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			panic(err)
		}
	}

	if err := os.WriteFile("benchmark_forecast.json", bytes, 0o644); err != nil {
		panic(err)
	}
}
