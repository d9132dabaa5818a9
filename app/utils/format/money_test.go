package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$12.00", Money(12))
	assert.Equal(t, "$0.99", Money("0.99"))
	assert.Equal(t, "$0.00", Money("abc"))
	assert.Equal(t, "$0.00", Money(nil))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2024-03-09", Date(time.Date(2024, 3, 9, 15, 4, 0, 0, time.UTC)))
}
