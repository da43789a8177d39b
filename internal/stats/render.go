package stats

import (
	"fmt"

	"github.com/go-analyze/charts"
)

// RenderSeries draws an ordered series as a line chart.
// Returns PNG image as bytes.
func RenderSeries(points []Point, title string) ([]byte, error) {
	if err := validateSeries(points); err != nil {
		return nil, err
	}

	values, labels := seriesValues(points)

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.XAxisLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// RenderDailyBars draws an ordered series as one bar per day.
// Returns PNG image as bytes.
func RenderDailyBars(points []Point, title string) ([]byte, error) {
	if err := validateSeries(points); err != nil {
		return nil, err
	}

	values, labels := seriesValues(points)

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.XAxisLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
