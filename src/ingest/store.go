package ingest

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/Hardik8491/Gold-Coin-sub001/src/db/sql"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

// PgxStore backs the pipeline with the shared connection pool.
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) SavePlaidItem(ctx context.Context, userID int64, itemID, accessToken string) error {
	return db.SavePlaidItem(ctx, s.pool, userID, itemID, accessToken)
}

func (s *PgxStore) UpsertAccount(ctx context.Context, account *models.Account) (int64, error) {
	return db.UpsertAccount(ctx, s.pool, account)
}

func (s *PgxStore) InsertTransactionIfNew(ctx context.Context, txn *models.Transaction) (bool, error) {
	return db.InsertTransactionIfNew(ctx, s.pool, txn)
}
