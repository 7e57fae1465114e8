package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/cost-manager/internal/http/respond"
	"github.com/hongminglow/cost-manager/internal/models/dto"
)

type ReportBuilder interface {
	Monthly(ctx context.Context, q dto.ReportQuery) (dto.ReportResponse, error)
}

// ReportHandler serves monthly reports.
type ReportHandler struct {
	reports ReportBuilder
}

func NewReportHandler(reports ReportBuilder) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/report", handle(h.handleReport))
}

func (h *ReportHandler) handleReport(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	report, err := h.reports.Monthly(r.Context(), dto.ReportQuery{
		ID:    query.Get("id"),
		Year:  query.Get("year"),
		Month: query.Get("month"),
	})
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, report)
	return nil
}
