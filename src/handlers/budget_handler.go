package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

type budgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Period   string  `json:"period"`
}

func (req *budgetRequest) validate() string {
	if req.Category == "" {
		return "category is required"
	}
	if !util.ValidateAmount(req.Amount) || req.Amount == 0 {
		return "amount must be a positive number"
	}
	if req.Period == "" {
		req.Period = "monthly"
	}
	return ""
}

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if msg := req.validate(); msg != "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, msg)
			return
		}

		budget := &models.Budget{
			UserID:   userID,
			Category: req.Category,
			Amount:   util.NormalizeAmount(req.Amount),
			Period:   req.Period,
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to create budget")
			return
		}

		log.Printf("INFO: Created budget %d for user %d, category %s", created.ID, userID, created.Category)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		budgets, err := db.GetBudgets(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get budgets")
			return
		}
		if budgets == nil {
			budgets = []models.Budget{}
		}

		util.WriteJSON(w, http.StatusOK, budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid budget id")
			return
		}

		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if msg := req.validate(); msg != "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, msg)
			return
		}

		budget := &models.Budget{
			ID:       budgetID,
			UserID:   userID,
			Category: req.Category,
			Amount:   util.NormalizeAmount(req.Amount),
			Period:   req.Period,
		}
		updated, err := db.UpdateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to update budget %d for user %d: %v", budgetID, userID, err)
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "budget not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		budgetID, err := strconv.ParseInt(chi.URLParam(r, "budget_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid budget id")
			return
		}

		deleted, err := db.DeleteBudget(r.Context(), pool, userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to delete budget %d for user %d: %v", budgetID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to delete budget")
			return
		}
		if !deleted {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "budget not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
	}
}
