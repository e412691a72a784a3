package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func GetTransactions(ctx context.Context, pool *pgxpool.Pool, userID int64, accountID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, COALESCE(external_transaction_id, ''), type, category, subcategory, merchant, amount, description, date, location, created_at
		FROM transactions
		WHERE user_id = $1 AND ($2 = 0 OR account_id = $2)
		ORDER BY date DESC, id DESC
	`

	rows, err := pool.Query(ctx, query, userID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(&txn.ID, &txn.UserID, &txn.AccountID, &txn.ExternalTransactionID, &txn.Type, &txn.Category, &txn.Subcategory, &txn.Merchant, &txn.Amount, &txn.Description, &txn.Date, &txn.Location, &txn.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// CreateTransaction inserts a manually-entered transaction.
func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, account_id, type, category, subcategory, merchant, amount, description, date, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := pool.QueryRow(ctx, query,
		txn.UserID,
		txn.AccountID,
		txn.Type,
		txn.Category,
		txn.Subcategory,
		txn.Merchant,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.Location,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// InsertTransactionIfNew writes one aggregator transaction with the
// idempotence guard on (user_id, external_transaction_id). Returns whether
// a row was actually written.
func InsertTransactionIfNew(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (user_id, account_id, external_transaction_id, type, category, subcategory, merchant, amount, description, date, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, external_transaction_id) DO NOTHING
	`

	tag, err := pool.Exec(ctx, query,
		txn.UserID,
		txn.AccountID,
		txn.ExternalTransactionID,
		txn.Type,
		txn.Category,
		txn.Subcategory,
		txn.Merchant,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.Location,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64, category string, subcategory *string, merchant, description string) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET category = $1, subcategory = $2, merchant = $3, description = $4
		WHERE user_id = $5 AND id = $6
		RETURNING id, user_id, account_id, COALESCE(external_transaction_id, ''), type, category, subcategory, merchant, amount, description, date, location, created_at
	`

	var txn models.Transaction
	err := pool.QueryRow(ctx, query, category, subcategory, merchant, description, userID, transactionID).Scan(
		&txn.ID, &txn.UserID, &txn.AccountID, &txn.ExternalTransactionID, &txn.Type, &txn.Category, &txn.Subcategory, &txn.Merchant, &txn.Amount, &txn.Description, &txn.Date, &txn.Location, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (bool, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, transactionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
