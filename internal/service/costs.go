package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongminglow/cost-manager/internal/apperr"
	"github.com/hongminglow/cost-manager/internal/events"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/models/dto"
	"github.com/hongminglow/cost-manager/internal/storage"
	"github.com/hongminglow/cost-manager/internal/validation"
)

// GraceDays is how many days into a month costs for the previous month are
// still accepted, and how long after month end a report stays live.
const GraceDays = 5

const msgOutsideWindow = "cost date must be current month or last month within grace period"

// CostService records new costs.
type CostService struct {
	costs     storage.CostStore
	publisher events.Publisher
	now       Clock
}

func NewCostService(costs storage.CostStore, publisher events.Publisher, now Clock) *CostService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &CostService{costs: costs, publisher: publisher, now: now}
}

// Add validates req, applies the month window and stores the cost.
func (s *CostService) Add(ctx context.Context, req dto.AddCostRequest) (models.Cost, error) {
	now := s.now()
	cost, err := validation.Cost(req, now.Location())
	if err != nil {
		return models.Cost{}, err
	}
	if !inSubmissionWindow(cost.Date, now) {
		return models.Cost{}, apperr.Validation(msgOutsideWindow)
	}

	created, err := s.costs.CreateCost(ctx, cost)
	if err != nil {
		return models.Cost{}, apperr.Unexpected(fmt.Errorf("create cost: %w", err))
	}

	if err := s.publisher.PublishCostCreated(ctx, created); err != nil {
		slog.WarnContext(ctx, "cost event not published", "cost_id", created.ID, "error", err)
	}
	return created, nil
}

// inSubmissionWindow accepts dates from the start of the current month up to
// now, and dates in the previous month while now is within the first
// GraceDays days of the current month.
func inSubmissionWindow(date, now time.Time) bool {
	currentStart := monthStart(now.Year(), now.Month(), now.Location())
	if !date.Before(currentStart) && !date.After(now) {
		return true
	}
	lastStart := currentStart.AddDate(0, -1, 0)
	return !date.Before(lastStart) && date.Before(currentStart) && now.Before(graceEnd(lastStart))
}
