package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

// SyncUser mirrors the identity provider's user into the application
// database and seeds the gamification row. Idempotent: repeated calls
// refresh profile fields and leave progress untouched.
func SyncUser(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		externalID, _ := r.Context().Value(middleware.ContextKeyExternalID).(string)
		email, _ := r.Context().Value(middleware.ContextKeyEmail).(string)
		name, _ := r.Context().Value(middleware.ContextKeyName).(string)

		if externalID == "" {
			util.WriteError(w, http.StatusNotFound, util.KindNotFound, "identity not found")
			return
		}
		if email != "" && !util.ValidateEmail(email) {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid email in token")
			return
		}

		firstName, lastName := splitName(name)
		user, err := db.UpsertUser(r.Context(), pool, &models.User{
			ExternalID: externalID,
			Email:      email,
			FirstName:  firstName,
			LastName:   lastName,
		})
		if err != nil {
			log.Printf("ERROR: Failed to sync user %s: %v", externalID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to sync user")
			return
		}

		gamification, err := db.SeedGamification(r.Context(), pool, user.ID)
		if err != nil {
			log.Printf("ERROR: Failed to seed gamification for user %d: %v", user.ID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to sync user")
			return
		}

		log.Printf("INFO: Synced user %d (%s)", user.ID, externalID)
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"user":         user,
			"gamification": gamification,
		})
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
