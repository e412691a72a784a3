package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

func CreateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req struct {
			Name         string  `json:"name"`
			TargetAmount float64 `json:"target_amount"`
			TargetDate   string  `json:"target_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if req.Name == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "name is required")
			return
		}
		if !util.ValidateAmount(req.TargetAmount) || req.TargetAmount == 0 {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "target_amount must be a positive number")
			return
		}

		var targetDate *time.Time
		if req.TargetDate != "" {
			parsed, err := time.Parse("2006-01-02", req.TargetDate)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, util.KindValidation, "target_date must be YYYY-MM-DD")
				return
			}
			targetDate = &parsed
		}

		goal := &models.Goal{
			UserID:       userID,
			Name:         req.Name,
			TargetAmount: util.NormalizeAmount(req.TargetAmount),
			TargetDate:   targetDate,
		}
		created, err := db.CreateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to create goal for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to create goal")
			return
		}

		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetGoals(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		goals, err := db.GetGoals(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get goals for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get goals")
			return
		}
		if goals == nil {
			goals = []models.Goal{}
		}

		util.WriteJSON(w, http.StatusOK, goals)
	}
}

func UpdateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid goal id")
			return
		}

		var req struct {
			Name         string  `json:"name"`
			TargetAmount float64 `json:"target_amount"`
			TargetDate   string  `json:"target_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if req.Name == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "name is required")
			return
		}
		if !util.ValidateAmount(req.TargetAmount) || req.TargetAmount == 0 {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "target_amount must be a positive number")
			return
		}

		var targetDate *time.Time
		if req.TargetDate != "" {
			parsed, err := time.Parse("2006-01-02", req.TargetDate)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, util.KindValidation, "target_date must be YYYY-MM-DD")
				return
			}
			targetDate = &parsed
		}

		goal := &models.Goal{
			ID:           goalID,
			UserID:       userID,
			Name:         req.Name,
			TargetAmount: util.NormalizeAmount(req.TargetAmount),
			TargetDate:   targetDate,
		}
		updated, err := db.UpdateGoal(r.Context(), pool, goal)
		if err != nil {
			log.Printf("ERROR: Failed to update goal %d for user %d: %v", goalID, userID, err)
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "goal not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func ContributeToGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid goal id")
			return
		}

		var req struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if !util.ValidateAmount(req.Amount) || req.Amount == 0 {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "amount must be a positive number")
			return
		}

		goal, err := db.ContributeToGoal(r.Context(), pool, userID, goalID, util.NormalizeAmount(req.Amount))
		if err != nil {
			log.Printf("ERROR: Failed to contribute to goal %d for user %d: %v", goalID, userID, err)
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "goal not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, goal)
	}
}

func DeleteGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid goal id")
			return
		}

		deleted, err := db.DeleteGoal(r.Context(), pool, userID, goalID)
		if err != nil {
			log.Printf("ERROR: Failed to delete goal %d for user %d: %v", goalID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to delete goal")
			return
		}
		if !deleted {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "goal not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
	}
}
