package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is one linked account as reported by the aggregator.
type AccountSnapshot struct {
	ExternalID    string
	Name          string
	Type          string
	Balance       decimal.Decimal
	Currency      string
	InstitutionID string
}

// TransactionSnapshot is one money movement as reported by the aggregator.
// Amount is signed with the aggregator's convention: positive = money out.
type TransactionSnapshot struct {
	ExternalID        string
	ExternalAccountID string
	Amount            decimal.Decimal
	Merchant          string
	Description       string
	Date              time.Time
	Location          *string
}
