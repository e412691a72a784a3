package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

func GetAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		accounts, err := db.GetAccounts(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get accounts for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get accounts")
			return
		}
		if accounts == nil {
			accounts = []models.Account{}
		}

		util.WriteJSON(w, http.StatusOK, accounts)
	}
}

func CreateAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		var req struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			Balance     string `json:"balance"`
			Currency    string `json:"currency"`
			Institution string `json:"institution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create account request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}

		if req.Name == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "name is required")
			return
		}
		if !util.ValidateAccountType(req.Type) {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "type must be checking, savings, credit or investment")
			return
		}

		balance := decimal.Zero
		if req.Balance != "" {
			parsed, err := decimal.NewFromString(req.Balance)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, util.KindValidation, "balance must be a decimal number")
				return
			}
			balance = parsed
		}
		if req.Currency == "" {
			req.Currency = "USD"
		}

		account := &models.Account{
			UserID:        userID,
			Name:          req.Name,
			Type:          req.Type,
			Balance:       balance.String(),
			Currency:      req.Currency,
			InstitutionID: req.Institution,
		}
		created, err := db.CreateAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to create account for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to create account")
			return
		}

		log.Printf("INFO: Created account %d for user %d", created.ID, userID)
		util.WriteJSON(w, http.StatusCreated, created)
	}
}
