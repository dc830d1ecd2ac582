package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"gastos/internal/core"
)

// Flash notice kinds carried across redirects as query parameters.
const (
	noticeSuccess = "success"
	noticeWarning = "warning"
	noticeError   = "error"
)

// Notice is a one-shot user-facing message rendered at the top of a page.
type Notice struct {
	Kind    string
	Message string
}

// ExpenseRow is a display-ready expense for templates.
type ExpenseRow struct {
	ID          int64
	Date        string
	Category    string
	Emoji       string
	Amount      string
	Description string
}

// CategoryRow is a display-ready category summary for templates.
type CategoryRow struct {
	Name   string
	Emoji  string
	Amount string
	Count  int
	Width  int // percent of the largest category, for bar scaling
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", name, "error", err)
	}
}

// redirectNotice sends the browser back to the dashboard with a flash
// message in the query string.
func redirectNotice(w http.ResponseWriter, r *http.Request, kind, msg string) {
	q := url.Values{}
	q.Set("notice", msg)
	q.Set("kind", kind)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusFound)
}

// noticeFromQuery extracts a flash message from the request, if any.
func noticeFromQuery(r *http.Request) *Notice {
	msg := strings.TrimSpace(r.URL.Query().Get("notice"))
	if msg == "" {
		return nil
	}
	kind := r.URL.Query().Get("kind")
	switch kind {
	case noticeSuccess, noticeWarning, noticeError:
	default:
		kind = noticeSuccess
	}
	return &Notice{Kind: kind, Message: msg}
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline, and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func expenseRows(expenses []core.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpenseRow{
			ID:          e.ID,
			Date:        e.Date.Format("Jan 02, 2006"),
			Category:    e.Category.DisplayName(),
			Emoji:       e.Category.Emoji(),
			Amount:      e.Amount.String(),
			Description: e.Description,
		})
	}
	return rows
}

func categoryRows(sums []core.CategorySummary) []CategoryRow {
	var maxCents int64
	for _, cs := range sums {
		if cs.Total.Cents > maxCents {
			maxCents = cs.Total.Cents
		}
	}
	rows := make([]CategoryRow, 0, len(sums))
	for _, cs := range sums {
		width := 0
		if maxCents > 0 && cs.Total.Cents > 0 {
			width = int((cs.Total.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		rows = append(rows, CategoryRow{
			Name:   cs.Category.DisplayName(),
			Emoji:  cs.Category.Emoji(),
			Amount: cs.Total.String(),
			Count:  cs.Count,
			Width:  width,
		})
	}
	return rows
}
