package util

import (
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateAccountType(accountType string) bool {
	switch accountType {
	case "checking", "savings", "credit", "investment":
		return true
	}
	return false
}

func ValidateTransactionType(transactionType string) bool {
	switch transactionType {
	case "income", "expense", "transfer":
		return true
	}
	return false
}

// ValidateAmount rejects NaN, infinities and negative values.
func ValidateAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

// NormalizeAmount renders a validated request amount as the canonical
// decimal string stored in the database.
func NormalizeAmount(amount float64) string {
	return decimal.NewFromFloat(amount).String()
}
