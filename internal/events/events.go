// Package events announces stored costs to other systems.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/cost-manager/internal/models"
)

// RoutingKeyCostCreated is the routing key of CostCreated messages.
const RoutingKeyCostCreated = "cost.created"

// Publisher sends domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishCostCreated(ctx context.Context, cost models.Cost) error
	Close() error
}

// CostCreated is the payload published after a cost is stored.
type CostCreated struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Sum         decimal.Decimal `json:"sum"`
	Date        string          `json:"date"`
	PublishedAt time.Time       `json:"publishedAt"`
}

// NewCostCreated builds the message for cost.
func NewCostCreated(cost models.Cost, now time.Time) CostCreated {
	return CostCreated{
		ID:          cost.ID,
		UserID:      cost.UserID,
		Category:    cost.Category,
		Description: cost.Description,
		Sum:         cost.Sum,
		Date:        cost.Date.Format(models.DateLayout),
		PublishedAt: now.UTC(),
	}
}

// ToJSON encodes the message body.
func (m CostCreated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishCostCreated(context.Context, models.Cost) error { return nil }

func (Noop) Close() error { return nil }
