package get_team_quota

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	"github.com/m04kA/GameRoom-ReservationService/internal/service/reservations"
)

const msgTeamNotFound = "команда не найдена"

type Handler struct {
	service QuotaService
	logger  Logger
}

func NewHandler(service QuotaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teams/{team}/quota
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]

	quota, err := h.service.GetQuota(r.Context(), team)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrTeamNotFound):
			h.logger.Warn("GET /teams/{team}/quota - Team not found: team=%q", team)
			handlers.RespondNotFound(w, msgTeamNotFound)

		default:
			h.logger.Error("GET /teams/{team}/quota - Failed to get quota: team=%q, error=%v", team, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teams/{team}/quota - team=%q used=%d", quota.Team, quota.Used)
	handlers.RespondJSON(w, http.StatusOK, quota)
}
