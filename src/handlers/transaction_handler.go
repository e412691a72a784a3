package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var accountID int64
		if raw := r.URL.Query().Get("account_id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid account_id")
				return
			}
			accountID = parsed
		}

		transactions, err := db.GetTransactions(r.Context(), pool, userID, accountID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get transactions")
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		util.WriteJSON(w, http.StatusOK, transactions)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req struct {
			AccountID   int64   `json:"account_id"`
			Type        string  `json:"type"`
			Category    string  `json:"category"`
			Subcategory *string `json:"subcategory"`
			Merchant    string  `json:"merchant"`
			Amount      string  `json:"amount"`
			Description string  `json:"description"`
			Date        string  `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}

		if req.AccountID == 0 {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "account_id is required")
			return
		}
		if !util.ValidateTransactionType(req.Type) {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "type must be income, expense or transfer")
			return
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || amount.IsNegative() {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "amount must be a non-negative decimal")
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "date must be YYYY-MM-DD")
			return
		}
		if req.Category == "" {
			req.Category = "Uncategorized"
		}

		txn := &models.Transaction{
			UserID:      userID,
			AccountID:   req.AccountID,
			Type:        req.Type,
			Category:    req.Category,
			Subcategory: req.Subcategory,
			Merchant:    req.Merchant,
			Amount:      amount.String(),
			Description: req.Description,
			Date:        date,
		}
		created, err := db.CreateTransaction(r.Context(), pool, txn)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to create transaction")
			return
		}

		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid transaction id")
			return
		}

		var req struct {
			Category    string  `json:"category"`
			Subcategory *string `json:"subcategory"`
			Merchant    string  `json:"merchant"`
			Description string  `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if req.Category == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "category is required")
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, userID, transactionID, req.Category, req.Subcategory, req.Merchant, req.Description)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction %d for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "transaction not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid transaction id")
			return
		}

		deleted, err := db.DeleteTransaction(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to delete transaction")
			return
		}
		if !deleted {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "transaction not found")
			return
		}

		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
	}
}

func GetTransactionStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		stats, err := db.GetTransactionStats(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transaction stats for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get stats")
			return
		}

		util.WriteJSON(w, http.StatusOK, stats)
	}
}
