package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/internal/core"
	"gastos/internal/forecast"
	"gastos/internal/services"
	"gastos/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	tmpDir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	svc := services.NewExpenseService(repo, nil)
	srv := NewServer(":0", repo, svc, filepath.Join(tmpDir, "model.json"), filepath.Join(tmpDir, "charts"))
	t.Cleanup(func() {
		srv.rateLimiter.stop()
		repo.Close()
	})
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func seedExpense(t *testing.T, srv *Server, cents int64, category core.Category, date core.Date) core.Expense {
	t.Helper()
	e, err := srv.svc.Create(context.Background(), core.Expense{
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	})
	require.NoError(t, err)
	return e
}

func TestDashboard(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 123456, core.CategoryFood, core.Today())

	rec := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₱1,234.56")
	assert.Contains(t, body, "Food")
}

func TestDashboardEmpty(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "₱0.00")
}

func TestDashboardShowsNotice(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/?notice=Saved!&kind=success")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Saved!")
}

func TestUnknownPathReturns404(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddForm(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/add/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	// Date input is prefilled with today.
	assert.Contains(t, body, core.Today().ISO())
	assert.Contains(t, body, "🍔 Food")
}

func TestAddExpense(t *testing.T) {
	srv := testServer(t)

	rec := postForm(t, srv, "/add/", url.Values{
		"amount":      {"149.50"},
		"category":    {"food"},
		"date":        {"2025-06-15"},
		"description": {"Dinner"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "notice=")
	assert.Contains(t, location, "kind=success")

	expenses, err := srv.repo.ListExpenses(context.Background(), core.DateRange{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, int64(14950), expenses[0].Amount.Cents)
	assert.Equal(t, core.CategoryFood, expenses[0].Category)
	assert.Equal(t, "2025-06-15", expenses[0].Date.ISO())
	assert.Equal(t, "Dinner", expenses[0].Description)
}

func TestAddExpenseDefaultsDateToToday(t *testing.T) {
	srv := testServer(t)

	rec := postForm(t, srv, "/add/", url.Values{
		"amount":   {"50"},
		"category": {"other"},
	})
	require.Equal(t, http.StatusFound, rec.Code)

	expenses, err := srv.repo.ListExpenses(context.Background(), core.DateRange{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, core.Today().ISO(), expenses[0].Date.ISO())
}

func TestAddExpenseValidation(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{
			name: "zero amount",
			form: url.Values{"amount": {"0"}, "category": {"food"}, "date": {"2025-06-15"}},
			want: "Amount must be greater than zero.",
		},
		{
			name: "negative amount",
			form: url.Values{"amount": {"-5"}, "category": {"food"}, "date": {"2025-06-15"}},
			want: "Amount must be greater than zero.",
		},
		{
			name: "unknown category",
			form: url.Values{"amount": {"10"}, "category": {"misc"}, "date": {"2025-06-15"}},
			want: "Select a valid category.",
		},
		{
			name: "bad date",
			form: url.Values{"amount": {"10"}, "category": {"food"}, "date": {"15-06-2025"}},
			want: "Enter a valid date.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, srv, "/add/", tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}

	// No expense is saved on validation failure.
	count, err := srv.repo.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteExpense(t *testing.T) {
	srv := testServer(t)
	e := seedExpense(t, srv, 5000, core.CategoryBills, core.Today())

	rec := postForm(t, srv, "/delete/"+strconv.FormatInt(e.ID, 10)+"/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "kind=success")

	count, err := srv.repo.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteMissingExpense(t *testing.T) {
	srv := testServer(t)

	rec := postForm(t, srv, "/delete/999/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "kind=error")
	assert.Contains(t, location, url.QueryEscape("Expense not found."))
}

func TestGraphRendersChart(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 25000, core.CategoryFood, core.Today())

	rec := get(t, srv, "/graph/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/charts/daily_expenses.png")

	// The chart artifact lands on disk and serves as an image.
	png, err := os.ReadFile(filepath.Join(srv.chartDir, "daily_expenses.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	img := get(t, srv, "/static/charts/daily_expenses.png")
	assert.Equal(t, http.StatusOK, img.Code)
}

func TestGraphWithNoExpenses(t *testing.T) {
	srv := testServer(t)

	// An empty week still renders a zero-bar chart.
	rec := get(t, srv, "/graph/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/charts/daily_expenses.png")
}

func TestPredictWithNoData(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/predict/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), forecast.ReasonInsufficientData)
}

func TestPredictWithData(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 10000, core.CategoryFood, core.Today().AddDays(-1))
	seedExpense(t, srv, 20000, core.CategoryFood, core.Today())

	rec := get(t, srv, "/predict/")
	assert.Equal(t, http.StatusOK, rec.Code)
	// The line through 100 and 200 pesos predicts 300 for tomorrow.
	assert.Contains(t, rec.Body.String(), "₱300.00")

	// First prediction trains and persists the artifact.
	_, err := os.Stat(srv.modelPath)
	assert.NoError(t, err)
}

func TestPredictRetrain(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 10000, core.CategoryFood, core.Today().AddDays(-1))
	seedExpense(t, srv, 20000, core.CategoryFood, core.Today())

	rec := get(t, srv, "/predict/?retrain=1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Model retrained successfully!")
}

func TestSampleSeedsEmptyStore(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/sample/")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "kind=success")

	count, err := srv.repo.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Greater(t, count, int64(0))
}

func TestSampleRefusesNonEmptyStore(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 100, core.CategoryFood, core.Today())

	rec := get(t, srv, "/sample/")
	require.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "kind=warning")

	count, err := srv.repo.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClearConfirmationPage(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/clear/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clear")
}

func TestClearRemovesExpensesAndModel(t *testing.T) {
	srv := testServer(t)
	seedExpense(t, srv, 10000, core.CategoryFood, core.Today().AddDays(-1))
	seedExpense(t, srv, 20000, core.CategoryFood, core.Today())

	// Train a model so there is an artifact to remove.
	get(t, srv, "/predict/")
	_, err := os.Stat(srv.modelPath)
	require.NoError(t, err)

	rec := postForm(t, srv, "/clear/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "kind=success")

	count, err := srv.repo.CountExpenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = os.Stat(srv.modelPath)
	assert.True(t, os.IsNotExist(err), "clearing should remove the model artifact")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPut, "/add/", nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.allow("10.0.0.1"), "request 61 should be rejected")
	// Other clients are unaffected.
	assert.True(t, rl.allow("10.0.0.2"))
}
