package seqcast

import (
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/seqcast/seqcast/timeseries"
)

// LineForecast generates an echart line chart for one value column plotting
// the observed history followed by the point forecast. History and forecast
// share one x-axis with each series blank over the other's span.
func LineForecast(title string, history, forecast *timeseries.Dataset, col int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	t := make([]time.Time, 0, len(history.T)+len(forecast.T))
	t = append(t, history.T...)
	t = append(t, forecast.T...)

	lineDataActual := make([]opts.LineData, 0, len(t))
	lineDataForecast := make([]opts.LineData, 0, len(t))

	for i := 0; i < len(history.T); i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: history.Y[col][i]})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: nil})
	}
	for i := 0; i < len(forecast.T); i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: nil})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: forecast.Y[col][i]})
	}

	line.SetXAxis(t).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast)
	return line
}

// PlotForecast uses the Apache Echarts library to generate an html file
// showing the observed history and point forecast of every value column.
func PlotForecast(path string, history, forecast *timeseries.Dataset) error {
	page := components.NewPage()
	for ci, colName := range forecast.Columns {
		page.AddCharts(LineForecast(colName, history, forecast, ci))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
