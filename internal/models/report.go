package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportItem is one cost line inside a monthly report.
type ReportItem struct {
	Sum         decimal.Decimal `json:"sum"`
	Description string          `json:"description"`
	Day         int             `json:"day"`
}

// CategoryCosts is the list of report items for one category. An empty list
// is encoded as the number 0, which is the shape clients of the report
// endpoint expect.
type CategoryCosts []ReportItem

// MarshalJSON implements json.Marshaler.
func (c CategoryCosts) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("0"), nil
	}
	return json.Marshal([]ReportItem(c))
}

// UnmarshalJSON implements json.Unmarshaler and accepts both 0 and a list.
func (c *CategoryCosts) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("0")) || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	var items []ReportItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("decode category costs: %w", err)
	}
	*c = items
	return nil
}

// Report groups a month of costs by category.
type Report struct {
	Food      CategoryCosts `json:"Food"`
	Health    CategoryCosts `json:"Health"`
	Housing   CategoryCosts `json:"Housing"`
	Sport     CategoryCosts `json:"Sport"`
	Education CategoryCosts `json:"Education"`
}

// Add appends a cost to its category. Costs with an unknown category are
// ignored.
func (r *Report) Add(c Cost) {
	item := ReportItem{Sum: c.Sum, Description: c.Description, Day: c.Date.Day()}
	if slot := r.slot(c.Category); slot != nil {
		*slot = append(*slot, item)
	}
}

// Category returns the items recorded for name.
func (r *Report) Category(name string) CategoryCosts {
	if slot := r.slot(name); slot != nil {
		return *slot
	}
	return nil
}

func (r *Report) slot(name string) *CategoryCosts {
	switch name {
	case Food:
		return &r.Food
	case Health:
		return &r.Health
	case Housing:
		return &r.Housing
	case Sport:
		return &r.Sport
	case Education:
		return &r.Education
	}
	return nil
}

// PeriodKey formats the snapshot key for a calendar month, e.g. "2024-03".
func PeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
