package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ai"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

// syncWindowDays is how far back one sync reaches. Both window edges are
// inclusive.
const syncWindowDays = 30

// Aggregator pulls linked-bank data from the upstream provider.
type Aggregator interface {
	ExchangePublicToken(ctx context.Context, publicToken string) (accessToken, itemID string, err error)
	ListAccounts(ctx context.Context, accessToken string) ([]models.AccountSnapshot, error)
	ListTransactions(ctx context.Context, accessToken string, start, end time.Time) ([]models.TransactionSnapshot, error)
}

// Categorizer assigns a category to one transaction.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount float64, merchant string) (ai.Categorization, error)
}

// Store is the slice of the persistence layer the pipeline writes through.
type Store interface {
	SavePlaidItem(ctx context.Context, userID int64, itemID, accessToken string) error
	UpsertAccount(ctx context.Context, account *models.Account) (int64, error)
	InsertTransactionIfNew(ctx context.Context, txn *models.Transaction) (bool, error)
}

// Result summarizes one sync run. TransactionsInserted excludes rows
// skipped by the uniqueness guard, so a re-run of the same window reports
// zero inserts.
type Result struct {
	AccountsSynced       int
	TransactionsFetched  int
	TransactionsInserted int
}

type Pipeline struct {
	aggregator  Aggregator
	categorizer Categorizer
	store       Store
	now         func() time.Time
}

func NewPipeline(aggregator Aggregator, categorizer Categorizer, store Store) *Pipeline {
	return &Pipeline{
		aggregator:  aggregator,
		categorizer: categorizer,
		store:       store,
		now:         time.Now,
	}
}

// Window returns the inclusive fetch range ending today.
func (p *Pipeline) Window() (start, end time.Time) {
	now := p.now().UTC()
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -syncWindowDays)
	return start, end
}

// Sync turns one (userID, publicToken) pair into persisted accounts and
// transactions. Safe to re-run for the same window: accounts are upserted
// and transactions are insert-or-skip on their external id.
func (p *Pipeline) Sync(ctx context.Context, userID int64, publicToken string) (*Result, error) {
	accessToken, itemID, err := p.aggregator.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, fmt.Errorf("exchange public token: %w", err)
	}

	if err := p.store.SavePlaidItem(ctx, userID, itemID, accessToken); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	return p.syncItem(ctx, userID, accessToken)
}

// Refresh re-ingests one already linked item using its stored access
// token, so no widget token or exchange round trip is needed.
func (p *Pipeline) Refresh(ctx context.Context, userID int64, accessToken string) (*Result, error) {
	return p.syncItem(ctx, userID, accessToken)
}

func (p *Pipeline) syncItem(ctx context.Context, userID int64, accessToken string) (*Result, error) {
	snapshots, err := p.aggregator.ListAccounts(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	// External account id -> local account id, for resolving incoming
	// transactions without another round trip to the database.
	accountIDs := make(map[string]int64, len(snapshots))
	for _, snap := range snapshots {
		account := &models.Account{
			UserID:            userID,
			ExternalAccountID: snap.ExternalID,
			Name:              snap.Name,
			Type:              snap.Type,
			Balance:           snap.Balance.String(),
			Currency:          snap.Currency,
			InstitutionID:     snap.InstitutionID,
		}
		id, err := p.store.UpsertAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("upsert account %s: %w", snap.ExternalID, err)
		}
		accountIDs[snap.ExternalID] = id
	}

	start, end := p.Window()
	transactions, err := p.aggregator.ListTransactions(ctx, accessToken, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	result := &Result{
		AccountsSynced:      len(snapshots),
		TransactionsFetched: len(transactions),
	}

	for _, snap := range transactions {
		accountID, ok := accountIDs[snap.ExternalAccountID]
		if !ok {
			log.Printf("INFO: Skipping transaction %s for user %d: unknown account %s", snap.ExternalID, userID, snap.ExternalAccountID)
			continue
		}

		inserted, err := p.ingestOne(ctx, userID, accountID, snap)
		if err != nil {
			log.Printf("ERROR: Failed to persist transaction %s for user %d: %v", snap.ExternalID, userID, err)
			continue
		}
		if inserted {
			result.TransactionsInserted++
		}
	}

	return result, nil
}

func (p *Pipeline) ingestOne(ctx context.Context, userID, accountID int64, snap models.TransactionSnapshot) (bool, error) {
	// Aggregator sign convention: positive = money out.
	txnType := models.TransactionTypeExpense
	if snap.Amount.IsNegative() {
		txnType = models.TransactionTypeIncome
	}
	amount := snap.Amount.Abs()

	category := "Uncategorized"
	var subcategory *string
	cat, err := p.categorizer.Categorize(ctx, snap.Description, snap.Amount.InexactFloat64(), snap.Merchant)
	if err != nil {
		// One bad categorization must not sink the batch.
		log.Printf("ERROR: Categorization failed for transaction %s, falling back to Uncategorized: %v", snap.ExternalID, err)
	} else {
		category = cat.Category
		if cat.Subcategory != "" {
			subcategory = lo.ToPtr(cat.Subcategory)
		}
	}

	txn := &models.Transaction{
		UserID:                userID,
		AccountID:             accountID,
		ExternalTransactionID: snap.ExternalID,
		Type:                  txnType,
		Category:              category,
		Subcategory:           subcategory,
		Merchant:              snap.Merchant,
		Amount:                amount.String(),
		Description:           snap.Description,
		Date:                  snap.Date,
		Location:              snap.Location,
	}
	return p.store.InsertTransactionIfNew(ctx, txn)
}
