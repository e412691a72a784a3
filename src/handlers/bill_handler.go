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

type billRequest struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date"`
	Frequency string  `json:"frequency"`
	Status    string  `json:"status"`
	Category  string  `json:"category"`
}

func (req *billRequest) validate() (time.Time, string) {
	if req.Name == "" {
		return time.Time{}, "name is required"
	}
	if !util.ValidateAmount(req.Amount) || req.Amount == 0 {
		return time.Time{}, "amount must be a positive number"
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return time.Time{}, "due_date must be YYYY-MM-DD"
	}
	if req.Frequency == "" {
		req.Frequency = "monthly"
	}
	switch req.Status {
	case "":
		req.Status = models.BillStatusPending
	case models.BillStatusPending, models.BillStatusPaid, models.BillStatusOverdue:
	default:
		return time.Time{}, "status must be pending, paid or overdue"
	}
	return dueDate, ""
}

func CreateBill(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req billRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		dueDate, msg := req.validate()
		if msg != "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, msg)
			return
		}

		bill := &models.Bill{
			UserID:    userID,
			Name:      req.Name,
			Amount:    util.NormalizeAmount(req.Amount),
			DueDate:   dueDate,
			Frequency: req.Frequency,
			Status:    req.Status,
			Category:  req.Category,
		}
		created, err := db.CreateBill(r.Context(), pool, bill)
		if err != nil {
			log.Printf("ERROR: Failed to create bill for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to create bill")
			return
		}

		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetBills(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		bills, err := db.GetBills(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get bills for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get bills")
			return
		}
		if bills == nil {
			bills = []models.Bill{}
		}

		util.WriteJSON(w, http.StatusOK, bills)
	}
}

func UpdateBill(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		billID, err := strconv.ParseInt(chi.URLParam(r, "bill_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid bill id")
			return
		}

		var req billRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		dueDate, msg := req.validate()
		if msg != "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, msg)
			return
		}

		bill := &models.Bill{
			ID:        billID,
			UserID:    userID,
			Name:      req.Name,
			Amount:    util.NormalizeAmount(req.Amount),
			DueDate:   dueDate,
			Frequency: req.Frequency,
			Status:    req.Status,
			Category:  req.Category,
		}
		updated, err := db.UpdateBill(r.Context(), pool, bill)
		if err != nil {
			log.Printf("ERROR: Failed to update bill %d for user %d: %v", billID, userID, err)
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "bill not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteBill(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		billID, err := strconv.ParseInt(chi.URLParam(r, "bill_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid bill id")
			return
		}

		deleted, err := db.DeleteBill(r.Context(), pool, userID, billID)
		if err != nil {
			log.Printf("ERROR: Failed to delete bill %d for user %d: %v", billID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to delete bill")
			return
		}
		if !deleted {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "bill not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "bill deleted"})
	}
}

func GetBillStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		stats, err := db.GetBillStats(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get bill stats for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get bill stats")
			return
		}

		util.WriteJSON(w, http.StatusOK, stats)
	}
}
