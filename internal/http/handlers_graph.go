package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"gastos/internal/chart"
	"gastos/internal/core"
)

const chartFileName = "daily_expenses.png"

// GraphViewModel is the data for the chart page.
type GraphViewModel struct {
	ChartURL   string
	WeekTotal  string
	DateRange  string
	Categories []CategoryRow
}

// handleGraph renders the 7-day bar chart to the chart directory and shows
// the page embedding it, alongside the same window's category breakdown.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	today := core.Today()
	weekAgo := today.AddDays(-6)
	window := core.DateRange{Start: weekAgo, End: today}

	expenses, err := s.repo.ListExpenses(ctx, window)
	if err != nil {
		slog.ErrorContext(ctx, "List expenses failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// The aggregator leaves gaps; the chart needs every day of the window.
	series := core.FillWeek(core.DailyTotals(expenses), weekAgo, today)

	png, err := chart.Render(series)
	if err != nil {
		slog.ErrorContext(ctx, "Chart render failed", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	if err := os.MkdirAll(s.chartDir, 0755); err != nil {
		slog.ErrorContext(ctx, "Create chart directory failed", "dir", s.chartDir, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	chartPath := filepath.Join(s.chartDir, chartFileName)
	if err := os.WriteFile(chartPath, png, 0644); err != nil {
		slog.ErrorContext(ctx, "Write chart image failed", "path", chartPath, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var weekTotal core.Money
	for _, dt := range series {
		weekTotal = weekTotal.Add(dt.Total)
	}

	vm := GraphViewModel{
		ChartURL:   "/static/charts/" + chartFileName,
		WeekTotal:  weekTotal.String(),
		DateRange:  weekAgo.Format("Jan 02") + " - " + today.Format("Jan 02, 2006"),
		Categories: categoryRows(core.CategoryTotals(expenses)),
	}
	s.render(w, r, "graph.html", vm)
}
