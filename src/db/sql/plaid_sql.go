package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

// SavePlaidItem stores the durable access credential for one bank link.
// Insert-or-skip on item_id so replaying an exchange is harmless.
func SavePlaidItem(ctx context.Context, pool *pgxpool.Pool, userID int64, itemID, accessToken string) error {
	query := `
		INSERT INTO plaid_items (user_id, item_id, access_token)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO NOTHING
	`

	_, err := pool.Exec(ctx, query, userID, itemID, accessToken)
	return err
}

func GetPlaidItems(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.PlaidItem, error) {
	query := `
		SELECT id, user_id, item_id, access_token, COALESCE(institution_id, ''), COALESCE(institution_name, ''), created_at
		FROM plaid_items
		WHERE user_id = $1
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PlaidItem
	for rows.Next() {
		var item models.PlaidItem
		err := rows.Scan(&item.ID, &item.UserID, &item.ItemID, &item.AccessToken, &item.InstitutionID, &item.InstitutionName, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
