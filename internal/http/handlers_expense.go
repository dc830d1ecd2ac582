package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"gastos/internal/core"
	"gastos/internal/storage"
)

// AddFormViewModel carries entered values back to the form alongside
// per-field validation errors.
type AddFormViewModel struct {
	Amount      string
	Category    string
	Date        string
	Description string
	Categories  []CategoryOption
	Errors      map[string]string
}

type CategoryOption struct {
	Value string
	Label string
}

func categoryOptions() []CategoryOption {
	opts := make([]CategoryOption, 0, 4)
	for _, c := range core.Categories() {
		opts = append(opts, CategoryOption{
			Value: string(c),
			Label: c.Emoji() + " " + c.DisplayName(),
		})
	}
	return opts
}

// handleAdd renders the add form and processes submissions. Validation
// failures re-render the form inline; success redirects to the dashboard.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "add.html", AddFormViewModel{
			Date:       core.Today().ISO(),
			Category:   string(core.CategoryOther),
			Categories: categoryOptions(),
		})
	case http.MethodPost:
		s.createExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Parse form error", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	vm := AddFormViewModel{
		Amount:      sanitizeInput(r.Form.Get("amount")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        sanitizeInput(r.Form.Get("date")),
		Description: sanitizeInput(r.Form.Get("description")),
		Categories:  categoryOptions(),
		Errors:      map[string]string{},
	}

	cents, err := core.ParseDecimalToCents(vm.Amount)
	if err != nil {
		vm.Errors["amount"] = "Amount must be greater than zero."
	}

	category, err := core.ParseCategory(vm.Category)
	if err != nil {
		vm.Errors["category"] = "Select a valid category."
	}

	date := core.Today()
	if vm.Date != "" {
		if date, err = core.ParseDate(vm.Date); err != nil {
			vm.Errors["date"] = "Enter a valid date."
		}
	}

	if len(vm.Errors) > 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "add.html", vm)
		return
	}

	expense := core.Expense{
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
		Description: vm.Description,
	}
	saved, err := s.svc.Create(ctx, expense)
	if err != nil {
		slog.ErrorContext(ctx, "Create expense failed", "error", err)
		vm.Errors["form"] = "Could not save the expense. Please try again."
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		s.render(w, r, "add.html", vm)
		return
	}

	redirectNotice(w, r, noticeSuccess, "Expense of "+saved.Amount.String()+" added successfully!")
}

// handleDelete removes a single expense; unknown ids get a user-visible
// notice rather than an error page.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		redirectNotice(w, r, noticeError, "Expense not found.")
		return
	}

	expense, err := s.repo.GetExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		redirectNotice(w, r, noticeError, "Expense not found.")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Get expense failed", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			redirectNotice(w, r, noticeError, "Expense not found.")
			return
		}
		slog.ErrorContext(ctx, "Delete expense failed", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	redirectNotice(w, r, noticeSuccess, "Expense of "+expense.Amount.String()+" deleted successfully!")
}
