package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	"github.com/m04kA/GameRoom-ReservationService/internal/api/middleware"
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	createReservation "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "укажите команду, количество ПК, дату и время"
	msgParse              = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM или h:mm AM/PM"
	msgTeamNotFound       = "команда не найдена"
	msgForbidden          = "внешние брони доступны только операторам"
	msgTooShortNotice     = "бронировать нужно заранее"
	msgOutsideOpenHours   = "зал в это время закрыт"
	msgRangeInPast        = "нельзя забронировать прошедшее время"
	msgTooManyResources   = "зал не вмещает столько ПК"
	msgQuotaExceeded      = "команда исчерпала недельную квоту прайм-тайма"
	msgPolicyViolation    = "бронь нарушает правила зала"
	msgCapacityConflict   = "недостаточно свободных ПК на это время"
	msgAllocationRace     = "не удалось подобрать ПК, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		RespondUseCaseError(w, h.logger, "POST /reservations", userID, err)
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, team=%q",
		result.ID, userID, result.Team)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// RespondUseCaseError переводит ошибку бронирования в HTTP ответ
// Используется и при отправке черновика сессии
func RespondUseCaseError(w http.ResponseWriter, logger Logger, route string, userID int64, err error) {
	var (
		quotaErr    *domain.QuotaError
		conflictErr *domain.ConflictError
	)

	switch {
	case errors.Is(err, createReservation.ErrInvalidInput):
		logger.Warn("%s - Invalid input: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, domain.ErrParse):
		logger.Warn("%s - Parse error: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgParse)

	case errors.Is(err, createReservation.ErrTeamNotFound):
		logger.Warn("%s - Team not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgTeamNotFound)

	case errors.Is(err, createReservation.ErrAccessDenied):
		logger.Warn("%s - Access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.As(err, &quotaErr):
		logger.Warn("%s - Quota exceeded: user_id=%d, team=%q", route, userID, quotaErr.Team)
		handlers.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msgQuotaExceeded,
			QuotaDetails{Team: quotaErr.Team, Used: quotaErr.Used, Limit: quotaErr.Limit})

	case errors.Is(err, domain.ErrPolicyViolation):
		logger.Warn("%s - Policy violation: user_id=%d, error=%v", route, userID, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, policyMessage(err))

	case errors.As(err, &conflictErr):
		logger.Warn("%s - Capacity conflict: user_id=%d, reservation_id=%d", route, userID, conflictErr.ReservationID)
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgCapacityConflict, ConflictDetails{
			ReservationID: conflictErr.ReservationID,
			Team:          conflictErr.Team,
			ManagerID:     conflictErr.ManagerID,
		})

	case errors.Is(err, domain.ErrCapacityConflict):
		logger.Warn("%s - Capacity conflict: user_id=%d", route, userID)
		handlers.RespondError(w, http.StatusConflict, msgCapacityConflict)

	case errors.Is(err, domain.ErrAllocationRace):
		logger.Warn("%s - Allocation race: user_id=%d", route, userID)
		handlers.RespondError(w, http.StatusConflict, msgAllocationRace)

	default:
		logger.Error("%s - Failed to create reservation: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}

func policyMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooShortNotice):
		return msgTooShortNotice
	case errors.Is(err, domain.ErrOutsideOpenHours):
		return msgOutsideOpenHours
	case errors.Is(err, domain.ErrRangeInPast):
		return msgRangeInPast
	case errors.Is(err, domain.ErrTooManyResources):
		return msgTooManyResources
	}
	return msgPolicyViolation
}
