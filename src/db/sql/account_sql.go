package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func GetAccounts(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `
		SELECT id, user_id, COALESCE(external_account_id, ''), name, type, balance, currency, COALESCE(institution_id, ''), created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(&account.ID, &account.UserID, &account.ExternalAccountID, &account.Name, &account.Type, &account.Balance, &account.Currency, &account.InstitutionID, &account.CreatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// CreateAccount inserts a manually-created account (no aggregator id).
func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, name, type, balance, currency, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := pool.QueryRow(ctx, query,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.Currency,
		account.InstitutionID,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpsertAccount writes one aggregator-linked account, keyed on
// (user_id, external_account_id) so re-running a sync refreshes the
// balance snapshot instead of duplicating the row.
func UpsertAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (user_id, external_account_id, name, type, balance, currency, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, external_account_id) DO UPDATE SET
			name = EXCLUDED.name,
			balance = EXCLUDED.balance,
			currency = EXCLUDED.currency,
			institution_id = EXCLUDED.institution_id
		RETURNING id
	`

	var id int64
	err := pool.QueryRow(ctx, query,
		account.UserID,
		account.ExternalAccountID,
		account.Name,
		account.Type,
		account.Balance,
		account.Currency,
		account.InstitutionID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
