package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	"github.com/m04kA/GameRoom-ReservationService/internal/api/middleware"
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/GameRoom-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidDate   = "некорректная дата, ожидается YYYY-MM-DD"
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	pool    ResourceLookup
	access  AccessChecker
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, pool ResourceLookup, access AccessChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		pool:    pool,
		access:  access,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2025-03-12
// Без date возвращается сегодняшний день; pending заполняется только для операторов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{UserID: userID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParse), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid date: date=%q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to build view: date=%q, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	operator := h.access.IsOperator(userID)
	h.logger.Info("GET /availability - date=%s closed=%t feed=%t pending=%d operator=%t",
		result.Date.Format(domain.DateFormat), result.Closed, result.View.FeedAvailable, len(result.View.Pending), operator)

	resp := FromUseCaseResponse(result, h.pool)
	if !operator {
		resp.Pending = []PendingResponse{}
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
