package services

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/storage"
)

// EventPublisher publishes expense change events for the retrain worker.
// Satisfied by *amqp.Client; nil disables eventing.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, event string, id int64) error
}

// ExpenseService orchestrates expense mutations across SQLite and AMQP.
type ExpenseService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
}

func NewExpenseService(storage *storage.SQLiteRepository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// Create validates and saves an expense, then publishes a created event.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	saved, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	// Eventing is best-effort: the expense is already saved locally.
	s.publishEvent(ctx, amqp.EventCreated, saved.ID)

	return saved, nil
}

// Delete removes one expense by id. Missing ids propagate
// storage.ErrNotFound for the handler to surface.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, amqp.EventDeleted, id)
	return nil
}

// ClearAll removes every expense record and publishes a cleared event so the
// worker drops its model artifact too. The caller is responsible for
// discarding the web process's own artifact and reporting both outcomes.
func (s *ExpenseService) ClearAll(ctx context.Context) (int64, error) {
	count, err := s.storage.DeleteAllExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear expenses: %w", err)
	}
	s.publishEvent(ctx, amqp.EventCleared, 0)
	return count, nil
}

func (s *ExpenseService) publishEvent(ctx context.Context, event string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, event, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event", event, "id", id, "error", err)
	}
}

// Close releases the underlying storage connection.
func (s *ExpenseService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}
	return nil
}
