package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ingest"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/plaid"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

func CreateLinkToken(plaidClient *plaid.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		linkToken, err := plaidClient.CreateLinkToken(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Plaid link token creation failed for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindUpstream, "failed to create link token")
			return
		}

		util.WriteJSON(w, http.StatusCreated, map[string]string{"linkToken": linkToken})
	}
}

// ExchangePublicToken runs the whole ingestion pipeline: exchange the
// short-lived widget token, pull accounts and the 30-day transaction
// window, categorize and persist. transactionsCount reports rows actually
// inserted, so a re-sync of the same window reports zero.
func ExchangePublicToken(pipeline *ingest.Pipeline, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		if !limiter.Allow(fmt.Sprintf("%d", userID)) {
			util.WriteError(w, http.StatusTooManyRequests, util.KindRateLimited, "too many requests, try again shortly")
			return
		}

		var req struct {
			PublicToken string `json:"publicToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode exchange token request body for user %d: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if req.PublicToken == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "publicToken is required")
			return
		}

		result, err := pipeline.Sync(r.Context(), userID, req.PublicToken)
		if err != nil {
			log.Printf("ERROR: Bank sync failed for user %d: %v", userID, err)
			if errors.Is(err, ingest.ErrUpstreamAuth) || errors.Is(err, ingest.ErrUpstreamUnavailable) {
				util.WriteError(w, http.StatusInternalServerError, util.KindUpstream, "bank connection failed")
				return
			}
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to sync bank data")
			return
		}

		log.Printf("INFO: Synced bank item for user %d: %d accounts, %d/%d transactions inserted", userID, result.AccountsSynced, result.TransactionsInserted, result.TransactionsFetched)

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":           "Bank account linked successfully",
			"accountsCount":     result.AccountsSynced,
			"transactionsCount": result.TransactionsInserted,
		})
	}
}

// SyncTransactions re-runs ingestion for every bank item the user has
// already linked, using the access tokens stored at exchange time. One
// failing item is logged and skipped so the rest still refresh.
func SyncTransactions(pool *pgxpool.Pool, pipeline *ingest.Pipeline, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		if !limiter.Allow(fmt.Sprintf("%d", userID)) {
			util.WriteError(w, http.StatusTooManyRequests, util.KindRateLimited, "too many requests, try again shortly")
			return
		}

		items, err := db.GetPlaidItems(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load bank items for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to load bank items")
			return
		}
		if len(items) == 0 {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "no linked bank accounts")
			return
		}

		itemsSynced := 0
		accounts := 0
		inserted := 0
		for _, item := range items {
			result, err := pipeline.Refresh(r.Context(), userID, item.AccessToken)
			if err != nil {
				log.Printf("ERROR: Refresh failed for item %s, user %d: %v", item.ItemID, userID, err)
				continue
			}
			itemsSynced++
			accounts += result.AccountsSynced
			inserted += result.TransactionsInserted
		}

		if itemsSynced == 0 {
			util.WriteError(w, http.StatusInternalServerError, util.KindUpstream, "bank sync failed")
			return
		}

		log.Printf("INFO: Refreshed %d/%d bank items for user %d: %d accounts, %d transactions inserted", itemsSynced, len(items), userID, accounts, inserted)

		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message":           "Bank data synced",
			"itemsSynced":       itemsSynced,
			"accountsCount":     accounts,
			"transactionsCount": inserted,
		})
	}
}
