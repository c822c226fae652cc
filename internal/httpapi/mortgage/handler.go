package mortgage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetrackhq/closetrack/internal/mortgage"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/mortgage", h.mortgage)
	r.Post("/refinance", h.refinance)
}

type mortgageRequest struct {
	Principal  int64   `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	TermYears  int     `json:"termYears"`
	Schedule   bool    `json:"schedule,omitempty"`
}

type mortgageResponse struct {
	MonthlyPayment int64             `json:"monthlyPayment"`
	TotalInterest  int64             `json:"totalInterest"`
	Schedule       []scheduleRowResp `json:"schedule,omitempty"`
}

type scheduleRowResp struct {
	Month     int   `json:"month"`
	Payment   int64 `json:"payment"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Balance   int64 `json:"balance"`
}

func (h *Handler) mortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := mortgage.LoanParams{
		Principal:  req.Principal,
		AnnualRate: req.AnnualRate,
		TermYears:  req.TermYears,
	}

	payment, err := mortgage.MonthlyPayment(params)
	if err != nil {
		writeError(w, err)
		return
	}

	totalInterest, err := mortgage.TotalInterest(params)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := mortgageResponse{MonthlyPayment: payment, TotalInterest: totalInterest}

	if req.Schedule {
		schedule, err := mortgage.Schedule(params)
		if err != nil {
			writeError(w, err)
			return
		}

		resp.Schedule = make([]scheduleRowResp, len(schedule))
		for i, row := range schedule {
			resp.Schedule[i] = scheduleRowResp{
				Month:     row.Month,
				Payment:   row.Payment,
				Principal: row.Principal,
				Interest:  row.Interest,
				Balance:   row.Balance,
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type refinanceRequest struct {
	CurrentPayment int64   `json:"currentPayment"`
	Principal      int64   `json:"principal"`
	AnnualRate     float64 `json:"annualRate"`
	TermYears      int     `json:"termYears"`
	ClosingCosts   int64   `json:"closingCosts"`
}

type refinanceResponse struct {
	NewPayment      int64 `json:"newPayment"`
	MonthlySavings  int64 `json:"monthlySavings"`
	BreakEvenMonths int   `json:"breakEvenMonths"`
}

func (h *Handler) refinance(w http.ResponseWriter, r *http.Request) {
	var req refinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := mortgage.Refinance(mortgage.RefinanceParams{
		CurrentPayment: req.CurrentPayment,
		NewLoan: mortgage.LoanParams{
			Principal:  req.Principal,
			AnnualRate: req.AnnualRate,
			TermYears:  req.TermYears,
		},
		ClosingCosts: req.ClosingCosts,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := refinanceResponse{
		NewPayment:      result.NewPayment,
		MonthlySavings:  result.MonthlySavings,
		BreakEvenMonths: result.BreakEvenMonths,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, mortgage.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
