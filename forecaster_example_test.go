package seqcast

import (
	"context"
	"fmt"
	"time"

	"github.com/seqcast/seqcast/horizon"
	"github.com/seqcast/seqcast/timeseries"
)

// airline is the classic monthly airline passenger series, 96 points covering
// 1949 through 1956.
var airline = []float64{
	112, 118, 132, 129, 121, 135, 148, 148, 136, 119, 104, 118,
	115, 126, 141, 135, 125, 149, 170, 170, 158, 133, 114, 140,
	145, 150, 178, 163, 172, 178, 199, 199, 184, 162, 146, 166,
	171, 180, 193, 181, 183, 218, 230, 242, 209, 191, 172, 194,
	196, 196, 236, 235, 229, 243, 264, 272, 237, 211, 180, 201,
	204, 188, 235, 227, 234, 264, 302, 293, 259, 229, 203, 229,
	242, 233, 267, 269, 270, 315, 364, 347, 312, 274, 237, 278,
	284, 277, 317, 313, 318, 374, 413, 405, 355, 306, 271, 306,
}

func ExampleForecaster() {
	t := make([]time.Time, 0, len(airline))
	start := time.Date(1949, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range airline {
		t = append(t, start.AddDate(0, i, 0))
	}
	y, err := timeseries.NewUnivariateDataset(t, airline)
	if err != nil {
		panic(err)
	}

	seed := int64(42)
	f, err := NewWithLoader(
		"amazon/chronos-t5-tiny",
		&Config{Seed: &seed},
		&stubLoader{pipe: &stubPipeline{contextLength: 512}},
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := f.Fit(ctx, y, nil, nil); err != nil {
		panic(err)
	}

	// next 12 months
	fh, err := horizon.FromRange(12)
	if err != nil {
		panic(err)
	}
	fh = fh.WithFreq(horizon.FreqMonthly)

	res, err := f.Predict(ctx, fh, nil, nil)
	if err != nil {
		panic(err)
	}

	pred := res.(*timeseries.Dataset)
	fmt.Println(pred.Len())
	fmt.Println(pred.T[0].Format("2006-01"), pred.T[pred.Len()-1].Format("2006-01"))
	fmt.Printf("%.0f\n", pred.Y[0][0])
	// Output:
	// 12
	// 1957-01 1957-12
	// 306
}
