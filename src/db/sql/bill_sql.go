package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func CreateBill(ctx context.Context, pool *pgxpool.Pool, bill *models.Bill) (*models.Bill, error) {
	query := `
		INSERT INTO bills (user_id, name, amount, due_date, frequency, status, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, bill.UserID, bill.Name, bill.Amount, bill.DueDate, bill.Frequency, bill.Status, bill.Category).
		Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func GetBills(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, frequency, status, category, last_reminded_at, created_at, updated_at
		FROM bills
		WHERE user_id = $1
		ORDER BY due_date
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Frequency, &b.Status, &b.Category, &b.LastRemindedAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	return bills, rows.Err()
}

func UpdateBill(ctx context.Context, pool *pgxpool.Pool, bill *models.Bill) (*models.Bill, error) {
	query := `
		UPDATE bills
		SET name = $1, amount = $2, due_date = $3, frequency = $4, status = $5, category = $6, updated_at = NOW()
		WHERE user_id = $7 AND id = $8
		RETURNING last_reminded_at, created_at, updated_at
	`

	err := pool.QueryRow(ctx, query, bill.Name, bill.Amount, bill.DueDate, bill.Frequency, bill.Status, bill.Category, bill.UserID, bill.ID).
		Scan(&bill.LastRemindedAt, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func DeleteBill(ctx context.Context, pool *pgxpool.Pool, userID, billID int64) (bool, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM bills WHERE user_id = $1 AND id = $2`, userID, billID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func GetBillStats(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.BillStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'overdue'),
			COALESCE(SUM(amount::numeric), 0),
			COALESCE(SUM(amount::numeric) FILTER (WHERE status = 'pending'), 0),
			COUNT(*) FILTER (WHERE status = 'pending' AND due_date BETWEEN CURRENT_DATE AND CURRENT_DATE + 7)
		FROM bills
		WHERE user_id = $1
	`

	var stats models.BillStats
	err := pool.QueryRow(ctx, query, userID).Scan(
		&stats.TotalBills,
		&stats.PendingBills,
		&stats.PaidBills,
		&stats.OverdueBills,
		&stats.TotalAmount,
		&stats.PendingAmount,
		&stats.DueThisWeek,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// BillReminder joins a due bill with its owner's contact details for the
// reminder cron.
type BillReminder struct {
	Bill      models.Bill
	UserEmail string
	UserName  string
}

// GetBillsDueForReminder returns pending bills whose due date falls in
// the inclusive [start, end] range and that have not already been
// reminded today. The caller passes plain dates; due_date is a DATE, so
// comparing against NOW() here would silently drop bills due today.
func GetBillsDueForReminder(ctx context.Context, pool *pgxpool.Pool, start, end time.Time) ([]BillReminder, error) {
	query := `
		SELECT b.id, b.user_id, b.name, b.amount, b.due_date, b.frequency, b.status, b.category, b.last_reminded_at, b.created_at, b.updated_at,
			u.email, u.first_name
		FROM bills b
		JOIN users u ON u.id = b.user_id
		WHERE b.status = 'pending'
			AND b.due_date BETWEEN $1 AND $2
			AND (b.last_reminded_at IS NULL OR b.last_reminded_at < date_trunc('day', NOW()))
		ORDER BY b.due_date
	`

	rows, err := pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []BillReminder
	for rows.Next() {
		var r BillReminder
		err := rows.Scan(&r.Bill.ID, &r.Bill.UserID, &r.Bill.Name, &r.Bill.Amount, &r.Bill.DueDate, &r.Bill.Frequency, &r.Bill.Status, &r.Bill.Category, &r.Bill.LastRemindedAt, &r.Bill.CreatedAt, &r.Bill.UpdatedAt, &r.UserEmail, &r.UserName)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

func MarkBillReminded(ctx context.Context, pool *pgxpool.Pool, billID int64) error {
	_, err := pool.Exec(ctx, `UPDATE bills SET last_reminded_at = NOW() WHERE id = $1`, billID)
	return err
}
