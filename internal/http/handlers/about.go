package handlers

import (
	"net/http"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/http/respond"
	"github.com/hongminglow/cost-manager/internal/models/dto"
)

// AboutHandler lists the team behind the service.
type AboutHandler struct {
	members []dto.Member
}

func NewAboutHandler(team []config.Member) *AboutHandler {
	members := make([]dto.Member, 0, len(team))
	for _, m := range team {
		members = append(members, dto.Member{FirstName: m.FirstName, LastName: m.LastName})
	}
	return &AboutHandler{members: members}
}

func (h *AboutHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/about", h.handle)
}

func (h *AboutHandler) handle(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.members)
}
