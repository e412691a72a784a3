package models

import "time"

// Account types accepted by validation and the schema check constraint.
const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCredit     = "credit"
	AccountTypeInvestment = "investment"
)

type Account struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	ExternalAccountID string    `json:"external_account_id,omitempty"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Balance           string    `json:"balance"`
	Currency          string    `json:"currency"`
	InstitutionID     string    `json:"institution_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
