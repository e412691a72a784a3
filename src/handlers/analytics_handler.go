package handlers

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

func GetSpendingAnalytics(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		months, err := db.GetMonthlySpending(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get spending analytics for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to get spending analytics")
			return
		}
		if months == nil {
			months = []models.MonthlySpending{}
		}

		util.WriteJSON(w, http.StatusOK, months)
	}
}
