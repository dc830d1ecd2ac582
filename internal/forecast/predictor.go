// Package forecast predicts the next day's spending with a least-squares
// line fit over daily expense totals.
//
// The day index fed to the regression is the 0-based rank of each distinct
// expense date in ascending order, not a calendar offset: gaps in the
// spending history compress the time axis. That matches the existing model
// semantics and is intentionally preserved.
package forecast

import (
	"log/slog"
	"math"
	"time"

	"gastos/internal/core"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"

	// ReasonInsufficientData is returned when fewer than 2 distinct days of
	// expenses exist, which is too little to fit a line.
	ReasonInsufficientData = "Not enough data to train. Need at least 2 days of expenses."
	// ReasonNoData is returned when a prediction is requested with no
	// expense history at all.
	ReasonNoData = "No expense data available."
)

// Predictor owns the persisted model artifact. No other component reads or
// writes the file.
type Predictor struct {
	path  string
	model *Model
}

// Result reports the outcome of a training or prediction run. A failed run
// carries a user-facing Reason instead of an error: callers surface it and
// keep the page usable.
type Result struct {
	Success    bool
	Reason     string
	Prediction float64 // rounded to 2 decimals
	DataPoints int

	// Fit-time metrics, set only when this call trained a model.
	Trained     bool
	R2          float64 // rounded to 4 decimals
	Trend       string
	DailyChange float64 // slope, rounded to 2 decimals
	PeriodStart core.Date
	PeriodEnd   core.Date

	// ModelLoaded is true when an existing model was evaluated without
	// retraining.
	ModelLoaded bool
}

// Info describes the in-memory model state. It does not re-read the artifact.
type Info struct {
	Available bool
	Trained   bool
	Slope     float64 // rounded to 4 decimals
	Intercept float64 // rounded to 4 decimals
	Path      string
}

// New creates a Predictor backed by the artifact at path, loading any
// previously trained model. A missing or corrupt artifact degrades to the
// untrained state; the system stays usable and retrains on demand.
func New(path string) *Predictor {
	p := &Predictor{path: path}
	m, err := loadModel(path)
	if err != nil {
		if !isNotExist(err) {
			slog.Warn("Model artifact unreadable, starting untrained", "path", path, "error", err)
		}
		return p
	}
	p.model = m
	return p
}

// Train fits a fresh least-squares line over the daily totals series and
// persists it, unconditionally replacing any prior model.
func (p *Predictor) Train(series []core.DailyTotal) Result {
	n := len(series)
	if n < 2 {
		return Result{Reason: ReasonInsufficientData, DataPoints: n}
	}

	values := make([]float64, n)
	for i, dt := range series {
		values[i] = dt.Total.Pesos()
	}
	slope, intercept, r2 := fitLine(values)

	p.model = &Model{
		Slope:      slope,
		Intercept:  intercept,
		DataPoints: n,
		TrainedAt:  time.Now(),
	}
	if err := saveModel(p.path, p.model); err != nil {
		// Keep the in-memory model; the artifact will be rewritten on the
		// next successful training run.
		slog.Warn("Failed to persist model artifact", "path", p.path, "error", err)
	}

	trend := TrendDecreasing
	if slope > 0 {
		trend = TrendIncreasing
	}
	return Result{
		Success:     true,
		Prediction:  round2(p.model.At(n)),
		DataPoints:  n,
		Trained:     true,
		R2:          round4(r2),
		Trend:       trend,
		DailyChange: round2(slope),
		PeriodStart: series[0].Date,
		PeriodEnd:   series[n-1].Date,
	}
}

// PredictNextDay estimates tomorrow's spending. With no model loaded it
// delegates entirely to Train; otherwise it evaluates the existing model at
// the index just past the current series without retraining.
func (p *Predictor) PredictNextDay(series []core.DailyTotal) Result {
	if p.model == nil {
		return p.Train(series)
	}
	n := len(series)
	if n < 1 {
		return Result{Reason: ReasonNoData}
	}
	return Result{
		Success:     true,
		Prediction:  round2(p.model.At(n)),
		DataPoints:  n,
		ModelLoaded: true,
	}
}

// Info returns the current in-memory model state.
func (p *Predictor) Info() Info {
	info := Info{Available: true, Path: p.path}
	if p.model == nil {
		return info
	}
	info.Trained = true
	info.Slope = round4(p.model.Slope)
	info.Intercept = round4(p.model.Intercept)
	return info
}

// Discard removes the persisted artifact and forgets the in-memory model.
func (p *Predictor) Discard() error {
	p.model = nil
	return removeModel(p.path)
}

// fitLine computes the ordinary least-squares fit of values against their
// indices 0..n-1, returning slope, intercept, and the coefficient of
// determination over the same points.
func fitLine(values []float64) (slope, intercept, r2 float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range values {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot == 0 {
		return slope, intercept, 1
	}
	return slope, intercept, 1 - ssRes/ssTot
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
