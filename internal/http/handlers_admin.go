package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"gastos/internal/forecast"
)

// handleSample seeds demo data, but only into an empty store.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	created, seeded, err := s.svc.SeedSampleData(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Seed sample data failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !seeded {
		redirectNotice(w, r, noticeWarning,
			"Sample data already exists. Clear existing data first if you want to repopulate.")
		return
	}
	redirectNotice(w, r, noticeSuccess,
		"Successfully created "+strconv.FormatInt(created, 10)+" sample expenses!")
}

// handleClear asks for confirmation on GET and wipes the store plus the
// model artifact on POST. Both outcomes are reported to the user so a
// partial failure is never silent.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "clear.html", struct{}{})
	case http.MethodPost:
		ctx := r.Context()

		count, err := s.svc.ClearAll(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Clear expenses failed", "error", err)
			redirectNotice(w, r, noticeError, "Could not clear expenses. Please try again.")
			return
		}

		msg := "Cleared " + strconv.FormatInt(count, 10) + " expenses and reset the model."
		if err := forecast.New(s.modelPath).Discard(); err != nil {
			slog.ErrorContext(ctx, "Discard model failed", "path", s.modelPath, "error", err)
			msg = "Cleared " + strconv.FormatInt(count, 10) +
				" expenses, but the model artifact could not be removed."
			redirectNotice(w, r, noticeWarning, msg)
			return
		}
		redirectNotice(w, r, noticeSuccess, msg)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
