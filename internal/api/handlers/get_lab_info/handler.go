package get_lab_info

import (
	"errors"
	"net/http"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	"github.com/m04kA/GameRoom-ReservationService/internal/service/lab"
)

const msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"

type Handler struct {
	service LabService
	logger  Logger
}

func NewHandler(service LabService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lab?from=2025-03-10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")

	info, err := h.service.GetInfo(r.Context(), from)
	if err != nil {
		if errors.Is(err, lab.ErrInvalidInput) {
			h.logger.Warn("GET /lab - Invalid date: from=%q", from)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /lab - Failed to get lab info: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}
