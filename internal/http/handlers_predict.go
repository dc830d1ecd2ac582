package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"gastos/internal/core"
	"gastos/internal/forecast"
)

// PredictViewModel is the data for the prediction page.
type PredictViewModel struct {
	Notice *Notice

	Success     bool
	Reason      string
	Prediction  string
	DataPoints  int
	Trained     bool
	Trend       string
	DailyChange string
	R2          string
	ModelLoaded bool

	ModelTrained   bool
	ModelSlope     string
	ModelIntercept string
	ModelPath      string

	ExpenseCount int
	DateRange    string
}

// handlePredict shows tomorrow's spending estimate. The retrain=1 query flag
// forces a fresh training run instead of reusing the persisted model.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
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
	series := core.DailyTotals(expenses)

	predictor := forecast.New(s.modelPath)

	var res forecast.Result
	var notice *Notice
	if r.URL.Query().Get("retrain") == "1" {
		res = predictor.Train(series)
		if res.Success {
			notice = &Notice{Kind: noticeSuccess, Message: "Model retrained successfully!"}
		} else {
			notice = &Notice{Kind: noticeWarning, Message: res.Reason}
		}
	} else {
		res = predictor.PredictNextDay(series)
	}

	vm := PredictViewModel{
		Notice:       notice,
		Success:      res.Success,
		Reason:       res.Reason,
		DataPoints:   res.DataPoints,
		Trained:      res.Trained,
		Trend:        res.Trend,
		ModelLoaded:  res.ModelLoaded,
		ExpenseCount: len(expenses),
		DateRange:    "No data",
	}
	if res.Success {
		vm.Prediction = core.FormatPesos(int64(math.Round(res.Prediction * 100)))
	}
	if res.Trained {
		vm.DailyChange = strconv.FormatFloat(res.DailyChange, 'f', 2, 64)
		vm.R2 = strconv.FormatFloat(res.R2, 'f', 4, 64)
	}
	if len(series) > 0 {
		first := series[0].Date
		last := series[len(series)-1].Date
		vm.DateRange = first.Format("Jan 02") + " - " + last.Format("Jan 02, 2006")
	}

	info := predictor.Info()
	vm.ModelTrained = info.Trained
	vm.ModelPath = info.Path
	if info.Trained {
		vm.ModelSlope = strconv.FormatFloat(info.Slope, 'f', 4, 64)
		vm.ModelIntercept = strconv.FormatFloat(info.Intercept, 'f', 4, 64)
	}

	s.render(w, r, "predict.html", vm)
}
