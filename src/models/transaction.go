package models

import "time"

// Transaction types. Amount is always stored non-negative; the direction
// of the money movement is carried by Type.
const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

type Transaction struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	AccountID             int64     `json:"account_id"`
	ExternalTransactionID string    `json:"external_transaction_id,omitempty"`
	Type                  string    `json:"type"`
	Category              string    `json:"category"`
	Subcategory           *string   `json:"subcategory,omitempty"`
	Merchant              string    `json:"merchant"`
	Amount                string    `json:"amount"`
	Description           string    `json:"description"`
	Date                  time.Time `json:"date"`
	Location              *string   `json:"location,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type TransactionStats struct {
	TotalIncome          float64 `json:"totalIncome"`
	TotalExpenses        float64 `json:"totalExpenses"`
	NetIncome            float64 `json:"netIncome"`
	TransactionCount     int     `json:"transactionCount"`
	AvgTransactionAmount float64 `json:"avgTransactionAmount"`
	MonthlyChange        float64 `json:"monthlyChange"`
}

type MonthlySpending struct {
	Month    string  `json:"month"`
	Spending float64 `json:"spending"`
	Income   float64 `json:"income"`
}
