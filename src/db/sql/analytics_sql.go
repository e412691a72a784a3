package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

// GetMonthlySpending aggregates expenses and income per calendar month
// over the trailing six months, oldest first.
func GetMonthlySpending(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.MonthlySpending, error) {
	query := `
		SELECT
			to_char(date_trunc('month', date), 'YYYY-MM'),
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'expense'), 0),
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'income'), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= date_trunc('month', NOW()) - INTERVAL '5 months'
		GROUP BY date_trunc('month', date)
		ORDER BY date_trunc('month', date)
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []models.MonthlySpending
	for rows.Next() {
		var m models.MonthlySpending
		if err := rows.Scan(&m.Month, &m.Spending, &m.Income); err != nil {
			return nil, err
		}
		months = append(months, m)
	}

	return months, rows.Err()
}

// GetTransactionStats computes the dashboard headline numbers. The
// monthly change compares this calendar month's spending with last
// month's, as a percentage.
func GetTransactionStats(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.TransactionStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'expense'), 0),
			COUNT(*),
			COALESCE(AVG(amount::numeric), 0),
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'expense' AND date >= date_trunc('month', NOW())), 0),
			COALESCE(SUM(amount::numeric) FILTER (WHERE type = 'expense' AND date >= date_trunc('month', NOW()) - INTERVAL '1 month' AND date < date_trunc('month', NOW())), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var stats models.TransactionStats
	var thisMonth, lastMonth float64
	err := pool.QueryRow(ctx, query, userID).Scan(
		&stats.TotalIncome,
		&stats.TotalExpenses,
		&stats.TransactionCount,
		&stats.AvgTransactionAmount,
		&thisMonth,
		&lastMonth,
	)
	if err != nil {
		return nil, err
	}

	stats.NetIncome = stats.TotalIncome - stats.TotalExpenses
	if lastMonth > 0 {
		stats.MonthlyChange = (thisMonth - lastMonth) / lastMonth * 100
	}
	return &stats, nil
}
