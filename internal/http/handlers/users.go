package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/cost-manager/internal/http/respond"
	"github.com/hongminglow/cost-manager/internal/models/dto"
)

type UserResolver interface {
	Details(ctx context.Context, id string) (dto.UserDetails, error)
}

// UserHandler serves user details with their lifetime total.
type UserHandler struct {
	users UserResolver
}

func NewUserHandler(users UserResolver) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users/{id}", handle(h.handleDetails))
}

func (h *UserHandler) handleDetails(w http.ResponseWriter, r *http.Request) error {
	details, err := h.users.Details(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, details)
	return nil
}
