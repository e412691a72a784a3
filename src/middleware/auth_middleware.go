package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

type contextKey string

const (
	ContextKeyUserID     contextKey = "user_id"
	ContextKeyExternalID contextKey = "external_id"
	ContextKeyEmail      contextKey = "email"
	ContextKeyName       contextKey = "name"
)

// Identity is what the external auth provider's token resolves to.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

// ParseTokenFromRequest extracts and validates the bearer token, returning
// the identity it carries.
func ParseTokenFromRequest(r *http.Request, secret string) (*Identity, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("missing subject claim")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &Identity{ExternalID: sub, Email: email, Name: name}, nil
}

// AuthMiddleware validates the token and resolves the app user. Routes
// behind it can read the internal user id from the context; /users/sync
// is the one route mounted with RequireIdentity instead, since it runs
// before the user row exists.
func AuthMiddleware(pool *pgxpool.Pool, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := ParseTokenFromRequest(r, jwtSecret)
			if err != nil {
				util.WriteError(w, http.StatusUnauthorized, util.KindUnauthorized, err.Error())
				return
			}

			user, err := db.GetUserByExternalID(r.Context(), pool, identity.ExternalID)
			if err != nil {
				util.WriteError(w, http.StatusUnauthorized, util.KindUnauthorized, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, ContextKeyExternalID, identity.ExternalID)
			ctx = context.WithValue(ctx, ContextKeyEmail, user.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity validates the token without touching the database.
func RequireIdentity(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := ParseTokenFromRequest(r, jwtSecret)
			if err != nil {
				util.WriteError(w, http.StatusUnauthorized, util.KindUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyExternalID, identity.ExternalID)
			ctx = context.WithValue(ctx, ContextKeyEmail, identity.Email)
			ctx = context.WithValue(ctx, ContextKeyName, identity.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID reads the resolved internal user id from the request context.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(ContextKeyUserID).(int64)
	return id
}
