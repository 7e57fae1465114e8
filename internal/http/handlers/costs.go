package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hongminglow/cost-manager/internal/apperr"
	"github.com/hongminglow/cost-manager/internal/http/respond"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/models/dto"
)

const maxBodyBytes = 1 << 20

// CostAdder records a validated cost.
type CostAdder interface {
	Add(ctx context.Context, req dto.AddCostRequest) (models.Cost, error)
}

// CostHandler owns cost ingestion.
type CostHandler struct {
	costs CostAdder
}

func NewCostHandler(costs CostAdder) *CostHandler {
	return &CostHandler{costs: costs}
}

// Register attaches cost routes to the mux.
func (h *CostHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/add", handle(h.handleAdd))
}

func (h *CostHandler) handleAdd(w http.ResponseWriter, r *http.Request) error {
	var req dto.AddCostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return apperr.Validation("invalid JSON payload")
	}

	created, err := h.costs.Add(r.Context(), req)
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusCreated, created)
	return nil
}
