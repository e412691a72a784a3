package plaid

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ingest"
	"github.com/Hardik8491/Gold-Coin-sub001/src/models"
)

func NewPlaidClient(clientID, secret, env string) *plaid.APIClient {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)

	switch env {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		log.Fatalf("Invalid Plaid environment: %s", env)
	}

	return plaid.NewAPIClient(configuration)
}

// Client adapts the Plaid API to the ingest.Aggregator contract. Every
// call runs under the configured timeout and maps Plaid failures onto the
// pipeline's upstream error taxonomy.
type Client struct {
	api     *plaid.APIClient
	timeout time.Duration
}

func NewClient(api *plaid.APIClient, timeout time.Duration) *Client {
	return &Client{api: api, timeout: timeout}
}

func (c *Client) CreateLinkToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: fmt.Sprintf("%d", userID),
	}
	request := plaid.NewLinkTokenCreateRequest(
		"Gold Coin",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
	)
	request.SetUser(user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", mapError(err)
	}
	return resp.GetLinkToken(), nil
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.GetAccessToken(), resp.GetItemId(), nil
}

func (c *Client) ListAccounts(ctx context.Context, accessToken string) ([]models.AccountSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := plaid.NewAccountsGetRequest(accessToken)
	resp, _, err := c.api.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, mapError(err)
	}

	item := resp.GetItem()
	institutionID := ""
	if item.InstitutionId.IsSet() {
		institutionID = *item.InstitutionId.Get()
	}

	return lo.Map(resp.GetAccounts(), func(acc plaid.AccountBase, _ int) models.AccountSnapshot {
		balances := acc.GetBalances()
		currency := balances.GetIsoCurrencyCode()
		if currency == "" {
			currency = "USD"
		}
		return models.AccountSnapshot{
			ExternalID:    acc.GetAccountId(),
			Name:          acc.GetName(),
			Type:          mapAccountType(string(acc.GetType()), string(acc.GetSubtype())),
			Balance:       decimal.NewFromFloat(balances.GetCurrent()),
			Currency:      currency,
			InstitutionID: institutionID,
		}
	}), nil
}

const transactionsPageSize = 100

func (c *Client) ListTransactions(ctx context.Context, accessToken string, start, end time.Time) ([]models.TransactionSnapshot, error) {
	var snapshots []models.TransactionSnapshot

	offset := int32(0)
	for {
		page, fetched, total, err := c.transactionsPage(ctx, accessToken, start, end, offset)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, page...)
		// Advance by rows fetched, not rows kept: a skipped row must
		// still move the cursor.
		offset += fetched
		if offset >= total || fetched == 0 {
			return snapshots, nil
		}
	}
}

func (c *Client) transactionsPage(ctx context.Context, accessToken string, start, end time.Time, offset int32) ([]models.TransactionSnapshot, int32, int32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := plaid.NewTransactionsGetRequest(accessToken, start.Format("2006-01-02"), end.Format("2006-01-02"))
	options := plaid.NewTransactionsGetRequestOptions()
	options.SetCount(transactionsPageSize)
	options.SetOffset(offset)
	request.SetOptions(*options)

	resp, _, err := c.api.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
	if err != nil {
		return nil, 0, 0, mapError(err)
	}

	snapshots := lo.FilterMap(resp.GetTransactions(), func(txn plaid.Transaction, _ int) (models.TransactionSnapshot, bool) {
		date, err := time.Parse("2006-01-02", txn.GetDate())
		if err != nil {
			log.Printf("ERROR: Unparseable date %q on transaction %s, skipping", txn.GetDate(), txn.GetTransactionId())
			return models.TransactionSnapshot{}, false
		}

		merchant := txn.GetMerchantName()
		if merchant == "" {
			merchant = txn.GetName()
		}

		return models.TransactionSnapshot{
			ExternalID:        txn.GetTransactionId(),
			ExternalAccountID: txn.GetAccountId(),
			Amount:            decimal.NewFromFloat(txn.GetAmount()),
			Merchant:          merchant,
			Description:       txn.GetName(),
			Date:              date,
			Location:          formatLocation(txn.GetLocation()),
		}, true
	})
	return snapshots, int32(len(resp.GetTransactions())), resp.GetTotalTransactions(), nil
}

func mapAccountType(plaidType, plaidSubtype string) string {
	switch plaidType {
	case "credit", "loan":
		return models.AccountTypeCredit
	case "investment", "brokerage":
		return models.AccountTypeInvestment
	case "depository":
		if plaidSubtype == "savings" {
			return models.AccountTypeSavings
		}
		return models.AccountTypeChecking
	default:
		return models.AccountTypeChecking
	}
}

func formatLocation(loc plaid.Location) *string {
	city := loc.GetCity()
	region := loc.GetRegion()
	switch {
	case city != "" && region != "":
		s := city + ", " + region
		return &s
	case city != "":
		return &city
	case region != "":
		return &region
	}
	return nil
}

// mapError folds Plaid failures into the pipeline's two upstream error
// classes. Token and item problems are auth errors; everything else,
// including timeouts, counts as the aggregator being unavailable.
func mapError(err error) error {
	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		switch string(plaidErr.GetErrorType()) {
		case "INVALID_INPUT", "INVALID_REQUEST", "ITEM_ERROR", "OAUTH_ERROR":
			return fmt.Errorf("%w: %s", ingest.ErrUpstreamAuth, plaidErr.GetErrorCode())
		}
	}
	return fmt.Errorf("%w: %v", ingest.ErrUpstreamUnavailable, err)
}
