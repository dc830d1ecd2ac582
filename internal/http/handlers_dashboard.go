package http

import (
	"log/slog"
	"math"
	"net/http"

	"gastos/internal/core"
	"gastos/internal/forecast"
)

const recentLimit = 20

// DashboardViewModel is the data for the main page.
type DashboardViewModel struct {
	Notice        *Notice
	Total         string
	WeekTotal     string
	Predicted     string
	HasPrediction bool
	Categories    []CategoryRow
	Expenses      []ExpenseRow
	ExpenseCount  int
}

// handleDashboard shows summary cards, the category breakdown, and the most
// recent expenses.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	expenses, err := s.repo.ListExpenses(ctx, core.DateRange{})
	if err != nil {
		slog.ErrorContext(ctx, "List expenses failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	today := core.Today()
	weekExpenses := core.FilterRange(expenses, core.DateRange{Start: core.WeekStart(today)})

	vm := DashboardViewModel{
		Notice:       noticeFromQuery(r),
		Total:        core.Total(expenses).String(),
		WeekTotal:    core.Total(weekExpenses).String(),
		Categories:   categoryRows(core.CategoryTotals(expenses)),
		ExpenseCount: len(expenses),
	}

	predictor := forecast.New(s.modelPath)
	if res := predictor.PredictNextDay(core.DailyTotals(expenses)); res.Success {
		vm.HasPrediction = true
		vm.Predicted = core.FormatPesos(int64(math.Round(res.Prediction * 100)))
	}

	recent := expenses
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	vm.Expenses = expenseRows(recent)

	s.render(w, r, "dashboard.html", vm)
}
