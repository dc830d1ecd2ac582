// Package chart renders the 7-day spending bar chart.
package chart

import (
	"bytes"
	"errors"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gastos/internal/core"
)

var ErrEmptySeries = errors.New("chart: empty series")

// Render draws a bar chart PNG from a dense daily-totals series. The input
// must already be gap-filled: one entry per calendar day, zeros included.
// Rendering is pure; the caller decides where the bytes go.
func Render(series []core.DailyTotal) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	bars := make([]gochart.Value, 0, len(series))
	var max float64
	for _, dt := range series {
		v := dt.Total.Pesos()
		if v > max {
			max = v
		}
		style := gochart.Style{FillColor: drawing.ColorFromHex("6366f1"), StrokeWidth: 0}
		if v == 0 {
			style.FillColor = drawing.ColorFromHex("e2e8f0")
		}
		bars = append(bars, gochart.Value{
			Value: v,
			Label: dt.Date.Format("Jan 02"),
			Style: style,
		})
	}
	// An explicit range keeps all-zero weeks renderable.
	if max <= 0 {
		max = 1
	}

	graph := gochart.BarChart{
		Title:      "Daily Expenses - Last 7 Days",
		Width:      900,
		Height:     450,
		BarWidth:   80,
		BarSpacing: 24,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: max * 1.1},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return core.FormatPesos(int64(math.Round(f * 100)))
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
