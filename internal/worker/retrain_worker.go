// Package worker keeps the forecast model artifact warm: it retrains on
// every expense change event so web requests can serve predictions from a
// fresh model without training inline.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/forecast"
	"gastos/internal/storage"
)

type RetrainWorker struct {
	storage   *storage.SQLiteRepository
	predictor *forecast.Predictor
}

func NewRetrainWorker(storage *storage.SQLiteRepository, predictor *forecast.Predictor) *RetrainWorker {
	return &RetrainWorker{
		storage:   storage,
		predictor: predictor,
	}
}

// HandleExpenseEvent processes a single expense change event. A cleared
// store drops the model artifact; any other change retrains it.
func (w *RetrainWorker) HandleExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event", "event", msg.Event, "id", msg.ID)

	if msg.Event == amqp.EventCleared {
		if err := w.predictor.Discard(); err != nil {
			return fmt.Errorf("discard model: %w", err)
		}
		slog.InfoContext(ctx, "Model artifact discarded after store clear")
		return nil
	}

	return w.Retrain(ctx)
}

// Retrain refits the model over the full expense history. Too little data is
// not an error: the event is consumed and the artifact left as-is.
func (w *RetrainWorker) Retrain(ctx context.Context) error {
	expenses, err := w.storage.ListExpenses(ctx, core.DateRange{})
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	series := core.DailyTotals(expenses)
	res := w.predictor.Train(series)
	if !res.Success {
		slog.WarnContext(ctx, "Skipping retrain", "reason", res.Reason, "data_points", res.DataPoints)
		return nil
	}

	slog.InfoContext(ctx, "Model retrained",
		"data_points", res.DataPoints,
		"prediction", res.Prediction,
		"r2", res.R2,
		"trend", res.Trend)
	return nil
}
