package booking_session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	createReservationHandler "github.com/m04kA/GameRoom-ReservationService/internal/api/handlers/create_reservation"
	"github.com/m04kA/GameRoom-ReservationService/internal/api/middleware"
	"github.com/m04kA/GameRoom-ReservationService/internal/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDraft       = "некорректные поля черновика"
	msgNotFound           = "черновик не найден или истёк"
	msgIncomplete         = "черновик заполнен не полностью: "
)

// Handler пошаговое бронирование: черновик заполняется несколькими запросами и отправляется одним
type Handler struct {
	store   DraftStore
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(store DraftStore, useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		store:   store,
		useCase: useCase,
		logger:  logger,
	}
}

// Create POST /api/v1/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DraftRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /sessions - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	draft, err := h.store.Create(userID, req.ToPatch())
	if err != nil {
		h.logger.Warn("POST /sessions - Invalid draft: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidDraft)
		return
	}

	h.logger.Info("POST /sessions - Draft created: session_id=%s, user_id=%d", draft.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft))
}

// Update PATCH /api/v1/sessions/{sessionId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.store.Update(userID, sessionID, req.ToPatch())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			h.logger.Warn("PATCH /sessions/{id} - Draft not found: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id} - Invalid draft: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidDraft)

		default:
			h.logger.Error("PATCH /sessions/{id} - Failed to update draft: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft))
}

// Submit POST /api/v1/sessions/{sessionId}/submit
// Черновик удаляется только после успешной брони, чтобы его можно было поправить и отправить снова
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	draft, err := h.store.Get(userID, sessionID)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/submit - Draft not found: session_id=%s, user_id=%d", sessionID, userID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	if missing := missingFields(draft); len(missing) > 0 {
		h.logger.Warn("POST /sessions/{id}/submit - Incomplete draft: session_id=%s, missing=%v", sessionID, missing)
		handlers.RespondBadRequest(w, msgIncomplete+strings.Join(missing, ", "))
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(draft))
	if err != nil {
		createReservationHandler.RespondUseCaseError(w, h.logger, "POST /sessions/{id}/submit", userID, err)
		return
	}

	h.store.Delete(userID, sessionID)

	h.logger.Info("POST /sessions/{id}/submit - Reservation created: reservation_id=%d, session_id=%s",
		result.ID, sessionID)
	handlers.RespondJSON(w, http.StatusCreated, createReservationHandler.FromUseCaseResponse(result))
}
