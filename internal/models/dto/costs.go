package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/cost-manager/internal/models"
)

// AddCostRequest is the body of POST /api/add. UserID and Sum are kept raw so
// both JSON numbers and strings can be validated.
type AddCostRequest struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	UserID      json.RawMessage `json:"userId"`
	Sum         json.RawMessage `json:"sum"`
	Date        string          `json:"date"`
}

// ReportQuery carries the raw query parameters of GET /api/report.
type ReportQuery struct {
	ID    string
	Year  string
	Month string
}

type ReportResponse struct {
	UserID string        `json:"userId"`
	Year   string        `json:"year"`
	Month  string        `json:"month"`
	Costs  models.Report `json:"costs"`
}

type UserDetails struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
}

type Member struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
