package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogspend/m/domain"
	"blogspend/m/internal/logging"
	"blogspend/m/internal/store"
	"blogspend/m/internal/validation"
)

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateExpenseInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreateExpense(in.Amount, in.Category, in.Date, userID(r))
	if err != nil {
		logging.Logger.Errorf("create expense failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create expense")
		return
	}
	respondJSON(w, http.StatusOK, idResponse{ID: id})
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	var in validation.UpdateExpenseInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.store.UpdateExpense(in.ID, in.Amount, in.Category, in.Date)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		logging.Logger.Errorf("update expense failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update expense")
		return
	}
	respondJSON(w, http.StatusOK, idResponse{ID: in.ID})
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses()
	if err != nil {
		logging.Logger.Errorf("list expenses failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to list expenses")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"expenses": expenses})
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	expense, err := h.store.ExpenseByID(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		logging.Logger.Errorf("fetch expense failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to fetch expense")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"expense": expense})
}

type categorySpendingResponse struct {
	TotalSpending        float64                   `json:"totalSpending"`
	CategoryDistribution []domain.CategorySpending `json:"categoryDistribution"`
}

func (h *Handler) categorySpending(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.CategorySpending()
	if err != nil {
		logging.Logger.Errorf("category spending failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to compute category spending")
		return
	}
	respondJSON(w, http.StatusOK, buildDistribution(rows))
}

// buildDistribution derives the total and per-category percentages from the
// grouped sums. A zero total yields 0% everywhere, never NaN or Inf.
func buildDistribution(rows []domain.CategorySpending) categorySpendingResponse {
	var total float64
	for _, row := range rows {
		total += row.Amount
	}

	distribution := make([]domain.CategorySpending, len(rows))
	for i, row := range rows {
		pct := 0.0
		if total > 0 {
			pct = row.Amount / total * 100
		}
		distribution[i] = domain.CategorySpending{
			Category:   row.Category,
			Amount:     row.Amount,
			Percentage: pct,
		}
	}

	return categorySpendingResponse{TotalSpending: total, CategoryDistribution: distribution}
}
