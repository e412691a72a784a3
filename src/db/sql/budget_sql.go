package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category, amount, period)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, budget.UserID, budget.Category, budget.Amount, budget.Period).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func GetBudgets(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category, amount, period, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY category
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category = $1, amount = $2, period = $3, updated_at = NOW()
		WHERE user_id = $4 AND id = $5
		RETURNING created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, budget.Category, budget.Amount, budget.Period, budget.UserID, budget.ID).
		Scan(&budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) (bool, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userID, budgetID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
