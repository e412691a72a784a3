package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

var ErrUserNotFound = errors.New("user not found")

func GetUserByExternalID(ctx context.Context, pool *pgxpool.Pool, externalID string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, external_id, email, first_name, last_name, created_at
		FROM users
		WHERE external_id = $1
	`
	err := pool.QueryRow(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

// UpsertUser creates the application user for an external identity, or
// refreshes the profile fields if the row already exists.
func UpsertUser(ctx context.Context, pool *pgxpool.Pool, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (external_id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name
		RETURNING id, external_id, email, first_name, last_name, created_at
	`

	var saved models.User
	err := pool.QueryRow(ctx, query,
		user.ExternalID,
		user.Email,
		user.FirstName,
		user.LastName,
	).Scan(
		&saved.ID,
		&saved.ExternalID,
		&saved.Email,
		&saved.FirstName,
		&saved.LastName,
		&saved.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &saved, nil
}

// SeedGamification inserts the starting gamification row for a new user.
// Insert-or-skip so repeated syncs never reset progress.
func SeedGamification(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.Gamification, error) {
	query := `
		INSERT INTO user_gamification (user_id, points, level, streak)
		VALUES ($1, 0, 1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := pool.Exec(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("failed to seed gamification: %w", err)
	}

	var g models.Gamification
	err := pool.QueryRow(ctx, `
		SELECT user_id, points, level, streak, updated_at
		FROM user_gamification
		WHERE user_id = $1
	`, userID).Scan(&g.UserID, &g.Points, &g.Level, &g.Streak, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read gamification: %w", err)
	}
	return &g, nil
}
