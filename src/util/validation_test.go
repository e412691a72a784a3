package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("sam@example.com"))
	assert.True(t, ValidateEmail("sam.doe+tag@sub.example.co"))
	assert.False(t, ValidateEmail("sam@"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateAccountType(t *testing.T) {
	for _, valid := range []string{"checking", "savings", "credit", "investment"} {
		assert.True(t, ValidateAccountType(valid), valid)
	}
	assert.False(t, ValidateAccountType("crypto"))
	assert.False(t, ValidateAccountType(""))
}

func TestValidateTransactionType(t *testing.T) {
	for _, valid := range []string{"income", "expense", "transfer"} {
		assert.True(t, ValidateTransactionType(valid), valid)
	}
	assert.False(t, ValidateTransactionType("refund"))
}

func TestValidateAmount(t *testing.T) {
	assert.True(t, ValidateAmount(0))
	assert.True(t, ValidateAmount(19.99))
	assert.False(t, ValidateAmount(-5))
	assert.False(t, ValidateAmount(math.NaN()))
	assert.False(t, ValidateAmount(math.Inf(1)))
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "19.99", NormalizeAmount(19.99))
	assert.Equal(t, "100", NormalizeAmount(100))
	assert.Equal(t, "45.5", NormalizeAmount(45.50))
	assert.Equal(t, "0", NormalizeAmount(0))
}
