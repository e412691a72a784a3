package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ai"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

type fakeAggregator struct {
	exchangeErr  error
	accounts     []models.AccountSnapshot
	accountsErr  error
	transactions []models.TransactionSnapshot

	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeAggregator) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	if f.exchangeErr != nil {
		return "", "", f.exchangeErr
	}
	return "access-" + publicToken, "item-1", nil
}

func (f *fakeAggregator) ListAccounts(ctx context.Context, accessToken string) ([]models.AccountSnapshot, error) {
	if f.accountsErr != nil {
		return nil, f.accountsErr
	}
	return f.accounts, nil
}

func (f *fakeAggregator) ListTransactions(ctx context.Context, accessToken string, start, end time.Time) ([]models.TransactionSnapshot, error) {
	f.gotStart, f.gotEnd = start, end
	return f.transactions, nil
}

type fakeCategorizer struct {
	failFor map[string]bool
}

func (f *fakeCategorizer) Categorize(ctx context.Context, description string, amount float64, merchant string) (ai.Categorization, error) {
	if f.failFor[description] {
		return ai.Categorization{}, ai.ErrBadModelOutput
	}
	return ai.Categorization{Category: "Food & Dining", Subcategory: "Restaurants", Confidence: 0.9}, nil
}

// memStore mimics the database's uniqueness guarantees in memory.
type memStore struct {
	items        map[string]string
	accounts     map[string]*models.Account
	nextID       int64
	transactions map[string]*models.Transaction
	insertErrFor map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		items:        map[string]string{},
		accounts:     map[string]*models.Account{},
		transactions: map[string]*models.Transaction{},
		insertErrFor: map[string]bool{},
	}
}

func (s *memStore) SavePlaidItem(ctx context.Context, userID int64, itemID, accessToken string) error {
	if _, ok := s.items[itemID]; !ok {
		s.items[itemID] = accessToken
	}
	return nil
}

func (s *memStore) UpsertAccount(ctx context.Context, account *models.Account) (int64, error) {
	if existing, ok := s.accounts[account.ExternalAccountID]; ok {
		existing.Balance = account.Balance
		return existing.ID, nil
	}
	s.nextID++
	account.ID = s.nextID
	s.accounts[account.ExternalAccountID] = account
	return account.ID, nil
}

func (s *memStore) InsertTransactionIfNew(ctx context.Context, txn *models.Transaction) (bool, error) {
	if s.insertErrFor[txn.ExternalTransactionID] {
		return false, errors.New("constraint violation")
	}
	if _, ok := s.transactions[txn.ExternalTransactionID]; ok {
		return false, nil
	}
	s.transactions[txn.ExternalTransactionID] = txn
	return true, nil
}

func newTestPipeline(agg *fakeAggregator, cat *fakeCategorizer, store *memStore) *Pipeline {
	p := NewPipeline(agg, cat, store)
	p.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return p
}

func checkingSnapshot(externalID string) models.AccountSnapshot {
	return models.AccountSnapshot{
		ExternalID:    externalID,
		Name:          "Everyday Checking",
		Type:          models.AccountTypeChecking,
		Balance:       decimal.RequireFromString("1520.55"),
		Currency:      "USD",
		InstitutionID: "ins_1",
	}
}

func txnSnapshot(externalID, accountExternalID, amount string) models.TransactionSnapshot {
	return models.TransactionSnapshot{
		ExternalID:        externalID,
		ExternalAccountID: accountExternalID,
		Amount:            decimal.RequireFromString(amount),
		Merchant:          "Corner Cafe",
		Description:       "CORNER CAFE PURCHASE",
		Date:              time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestSync_Window(t *testing.T) {
	agg := &fakeAggregator{accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")}}
	p := newTestPipeline(agg, &fakeCategorizer{}, newMemStore())

	_, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), agg.gotStart)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), agg.gotEnd)
}

func TestSync_SignConvention(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-out", "ext-1", "25.00"),
			txnSnapshot("txn-in", "ext-1", "-25.00"),
		},
	}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)
	assert.Equal(t, 2, result.TransactionsInserted)

	out := store.transactions["txn-out"]
	require.NotNil(t, out)
	assert.Equal(t, models.TransactionTypeExpense, out.Type)
	assert.Equal(t, "25", out.Amount)

	in := store.transactions["txn-in"]
	require.NotNil(t, in)
	assert.Equal(t, models.TransactionTypeIncome, in.Type)
	assert.Equal(t, "25", in.Amount)
}

func TestSync_IdempotentAcrossRuns(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "12.00"),
			txnSnapshot("txn-2", "ext-1", "7.50"),
		},
	}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	first, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)
	assert.Equal(t, 2, first.TransactionsInserted)

	second, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)
	assert.Equal(t, 2, second.TransactionsFetched)
	assert.Equal(t, 0, second.TransactionsInserted)

	assert.Len(t, store.transactions, 2)
	assert.Len(t, store.accounts, 1)
}

func TestSync_SkipsUnmatchedAccount(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "5.00"),
			txnSnapshot("txn-orphan", "ext-unknown", "9.00"),
		},
	}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TransactionsFetched)
	assert.Equal(t, 1, result.TransactionsInserted)
	assert.Contains(t, store.transactions, "txn-1")
	assert.NotContains(t, store.transactions, "txn-orphan")
}

func TestSync_CategorizerFailureIsIsolated(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "5.00"),
			txnSnapshot("txn-2", "ext-1", "6.00"),
			txnSnapshot("txn-3", "ext-1", "7.00"),
		},
	}
	agg.transactions[1].Description = "OPAQUE MERCHANT 00291"
	store := newMemStore()
	cat := &fakeCategorizer{failFor: map[string]bool{"OPAQUE MERCHANT 00291": true}}
	p := newTestPipeline(agg, cat, store)

	result, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TransactionsInserted)

	fallback := store.transactions["txn-2"]
	require.NotNil(t, fallback)
	assert.Equal(t, "Uncategorized", fallback.Category)
	assert.Nil(t, fallback.Subcategory)

	assert.Equal(t, "Food & Dining", store.transactions["txn-1"].Category)
	assert.Equal(t, "Food & Dining", store.transactions["txn-3"].Category)
}

func TestSync_PersistFailureIsIsolated(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "5.00"),
			txnSnapshot("txn-2", "ext-1", "6.00"),
		},
	}
	store := newMemStore()
	store.insertErrFor["txn-1"] = true
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TransactionsInserted)
	assert.Contains(t, store.transactions, "txn-2")
}

func TestSync_ExchangeFailureAborts(t *testing.T) {
	agg := &fakeAggregator{exchangeErr: ErrUpstreamAuth}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Sync(context.Background(), 1, "expired-token")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUpstreamAuth)
	assert.Empty(t, store.accounts)
	assert.Empty(t, store.transactions)
}

func TestSync_AccountFetchFailureAborts(t *testing.T) {
	agg := &fakeAggregator{accountsErr: ErrUpstreamUnavailable}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Sync(context.Background(), 1, "public-token")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Empty(t, store.transactions)
}

func TestRefresh_UsesStoredTokenWithoutExchange(t *testing.T) {
	agg := &fakeAggregator{
		exchangeErr: ErrUpstreamAuth,
		accounts:    []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "5.00"),
		},
	}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	result, err := p.Refresh(context.Background(), 1, "access-stored")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AccountsSynced)
	assert.Equal(t, 1, result.TransactionsInserted)
	assert.Empty(t, store.items)
}

func TestRefresh_InsertsOnlyNewTransactions(t *testing.T) {
	agg := &fakeAggregator{
		accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")},
		transactions: []models.TransactionSnapshot{
			txnSnapshot("txn-1", "ext-1", "5.00"),
		},
	}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	_, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	agg.transactions = append(agg.transactions, txnSnapshot("txn-2", "ext-1", "8.00"))
	result, err := p.Refresh(context.Background(), 1, "access-public-token")
	require.NoError(t, err)

	assert.Equal(t, 2, result.TransactionsFetched)
	assert.Equal(t, 1, result.TransactionsInserted)
	assert.Len(t, store.transactions, 2)
}

func TestSync_RefreshesAccountBalance(t *testing.T) {
	agg := &fakeAggregator{accounts: []models.AccountSnapshot{checkingSnapshot("ext-1")}}
	store := newMemStore()
	p := newTestPipeline(agg, &fakeCategorizer{}, store)

	_, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	agg.accounts[0].Balance = decimal.RequireFromString("900.00")
	result, err := p.Sync(context.Background(), 1, "public-token")
	require.NoError(t, err)

	assert.Equal(t, 1, result.AccountsSynced)
	assert.Len(t, store.accounts, 1)
	assert.Equal(t, "900", store.accounts["ext-1"].Balance)
}
