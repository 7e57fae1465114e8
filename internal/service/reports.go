package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hongminglow/cost-manager/internal/apperr"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/models/dto"
	"github.com/hongminglow/cost-manager/internal/storage"
	"github.com/hongminglow/cost-manager/internal/validation"
)

const msgUserNotFound = "User not found"

// ReportService builds monthly reports. Once a month has been over for more
// than GraceDays days its first computed report is memoized and served from
// then on, even if costs for that month are added later.
type ReportService struct {
	users     storage.UserStore
	costs     storage.CostStore
	snapshots storage.SnapshotStore
	now       Clock
}

func NewReportService(users storage.UserStore, costs storage.CostStore, snapshots storage.SnapshotStore, now Clock) *ReportService {
	return &ReportService{users: users, costs: costs, snapshots: snapshots, now: now}
}

// Monthly returns the report for the user and month in q.
func (s *ReportService) Monthly(ctx context.Context, q dto.ReportQuery) (dto.ReportResponse, error) {
	now := s.now()
	params, err := validation.ReportQuery(q, now)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if _, err := s.users.FindUser(ctx, params.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.ReportResponse{}, apperr.NotFound(msgUserNotFound)
		}
		return dto.ReportResponse{}, apperr.Unexpected(fmt.Errorf("find user: %w", err))
	}

	resp := dto.ReportResponse{UserID: q.ID, Year: q.Year, Month: q.Month}
	period := models.PeriodKey(params.Year, params.Month)
	from := monthStart(params.Year, params.Month, now.Location())
	to := from.AddDate(0, 1, 0)
	memoize := !now.Before(graceEnd(from))

	if memoize {
		snapshot, err := s.snapshots.Snapshot(ctx, params.UserID, period)
		switch {
		case err == nil:
			resp.Costs = snapshot
			return resp, nil
		case !errors.Is(err, storage.ErrNotFound):
			return dto.ReportResponse{}, apperr.Unexpected(fmt.Errorf("load snapshot: %w", err))
		}
	}

	costs, err := s.costs.CostsBetween(ctx, params.UserID, from, to)
	if err != nil {
		return dto.ReportResponse{}, apperr.Unexpected(fmt.Errorf("list costs: %w", err))
	}
	resp.Costs = buildReport(costs)

	if memoize {
		if _, err := s.snapshots.PutSnapshotIfAbsent(ctx, params.UserID, period, resp.Costs); err != nil {
			slog.WarnContext(ctx, "report snapshot not stored",
				"user_id", params.UserID,
				"period", period,
				"error", err)
		}
	}
	return resp, nil
}

func buildReport(costs []models.Cost) models.Report {
	var report models.Report
	for _, c := range costs {
		report.Add(c)
	}
	return report
}
