package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of a cost date.
const DateLayout = "2006-01-02"

// Cost is a single expense entry. Entries are never updated once stored.
type Cost struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	UserID      string          `json:"userId"`
	Sum         decimal.Decimal `json:"sum"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
