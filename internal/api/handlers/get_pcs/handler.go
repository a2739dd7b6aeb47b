package get_pcs

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	getPCStatuses "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_pc_statuses"
)

const (
	msgUnavailable = "статусы ПК временно недоступны"
	msgPCNotFound  = "ПК не найден"
)

type Handler struct {
	useCase GetPCStatusesUseCase
	logger  Logger
}

func NewHandler(useCase GetPCStatusesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pcs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if errors.Is(err, getPCStatuses.ErrUnavailable) {
			h.logger.Warn("GET /pcs - Status feed unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
			return
		}
		h.logger.Error("GET /pcs - Failed to get statuses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pcs - Retrieved %d statuses", len(result.Statuses))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleOne GET /api/v1/pcs/{pc}
// pc принимает имя без учёта регистра или номер стола: "Desk 009", "desk 009", "9"
func (h *Handler) HandleOne(w http.ResponseWriter, r *http.Request) {
	pc := mux.Vars(r)["pc"]

	status, err := h.useCase.ExecuteOne(r.Context(), pc)
	if err != nil {
		switch {
		case errors.Is(err, getPCStatuses.ErrPCNotFound):
			h.logger.Warn("GET /pcs/{pc} - PC not found: pc=%q", pc)
			handlers.RespondNotFound(w, msgPCNotFound)

		case errors.Is(err, getPCStatuses.ErrUnavailable):
			h.logger.Warn("GET /pcs/{pc} - Status feed unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("GET /pcs/{pc} - Failed to get status: pc=%q, error=%v", pc, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pcs/{pc} - pc=%q state=%s", status.Name, status.State)
	handlers.RespondJSON(w, http.StatusOK, FromStatus(*status))
}
