package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func GetGoals(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, target_date = $3, updated_at = NOW()
		WHERE user_id = $4 AND id = $5
		RETURNING current_amount, created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, goal.Name, goal.TargetAmount, goal.TargetDate, goal.UserID, goal.ID).
		Scan(&goal.CurrentAmount, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// ContributeToGoal adds amount (a decimal string) to the goal's running
// total. Amounts are stored as text, so the addition runs through numeric.
func ContributeToGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64, amount string) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = (current_amount::numeric + $1::numeric)::text, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
		RETURNING id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
	`

	var goal models.Goal
	err := pool.QueryRow(ctx, query, amount, userID, goalID).
		Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64) (bool, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, goalID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
