package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/api/handlers"
	"github.com/m04kA/GameRoom-ReservationService/internal/api/middleware"
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	createReservation "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doRequest(t *testing.T, h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	start := time.Date(2025, 3, 12, 18, 15, 0, 0, loc)
	uc := &stubUseCase{resp: &createReservation.Response{
		ID:          7,
		Kind:        domain.KindTeam,
		Team:        "Apex White",
		Resources:   []domain.Resource{{ID: 11, Name: "Desk 011", Zone: domain.ZoneMain, Block: 3}},
		Start:       start,
		End:         start.Add(2 * time.Hour),
		IsPrimeTime: true,
		QuotaUsed:   2,
		QuotaLimit:  3,
		CreatedAt:   start.Add(-48 * time.Hour),
	}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(t, h, `{"team":"apex white","count":1,"date":"2025-03-12","startTime":"6:15 PM","endTime":"8:15 PM"}`, 42)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, "6:15 PM", uc.got.StartTime)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "18:15", resp.StartTime)
	assert.Equal(t, "Desk 011", resp.Resources[0].Name)
	require.NotNil(t, resp.Quota)
	assert.Equal(t, 2, resp.Quota.Used)
	require.NotNil(t, resp.Quota.Limit)
	assert.Equal(t, 3, *resp.Quota.Limit)
}

func TestHandle_MissingUser(t *testing.T) {
	rec := doRequest(t, NewHandler(&stubUseCase{}, nopLogger{}), `{}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_BadBody(t *testing.T) {
	rec := doRequest(t, NewHandler(&stubUseCase{}, nopLogger{}), `{"team":`, 42)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, NewHandler(&stubUseCase{}, nopLogger{}), `{"unknown":1}`, 42)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid input", fmt.Errorf("%w: count", createReservation.ErrInvalidInput), http.StatusBadRequest, msgInvalidInput},
		{"parse", fmt.Errorf("%w: start time", domain.ErrParse), http.StatusBadRequest, msgParse},
		{"unknown team", createReservation.ErrTeamNotFound, http.StatusNotFound, msgTeamNotFound},
		{"not operator", createReservation.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"short notice", domain.ErrTooShortNotice, http.StatusUnprocessableEntity, msgTooShortNotice},
		{"closed", domain.ErrOutsideOpenHours, http.StatusUnprocessableEntity, msgOutsideOpenHours},
		{"past", domain.ErrRangeInPast, http.StatusUnprocessableEntity, msgRangeInPast},
		{"too many", domain.ErrTooManyResources, http.StatusUnprocessableEntity, msgTooManyResources},
		{"quota", &domain.QuotaError{Team: "Apex White", Used: 3, Limit: 3}, http.StatusUnprocessableEntity, msgQuotaExceeded},
		{"conflict", &domain.ConflictError{ReservationID: 3, Team: "Valorant Blue", ManagerID: 9}, http.StatusConflict, msgCapacityConflict},
		{"race", domain.ErrAllocationRace, http.StatusConflict, msgAllocationRace},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			rec := doRequest(t, h, `{"team":"Apex White","count":1,"date":"2025-03-12","startTime":"18:00","endTime":"19:00"}`, 42)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

func TestHandle_ConflictDetails(t *testing.T) {
	h := NewHandler(&stubUseCase{err: &domain.ConflictError{ReservationID: 3, Team: "Valorant Blue", ManagerID: 9}}, nopLogger{})
	rec := doRequest(t, h, `{"team":"Apex White","count":1,"date":"2025-03-12","startTime":"18:00","endTime":"19:00"}`, 42)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp struct {
		Details ConflictDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ConflictDetails{ReservationID: 3, Team: "Valorant Blue", ManagerID: 9}, resp.Details)
}
