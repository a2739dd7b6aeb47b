package booking_session

import (
	"context"

	"github.com/m04kA/GameRoom-ReservationService/internal/session"
	createReservation "github.com/m04kA/GameRoom-ReservationService/internal/usecase/create_reservation"
)

type DraftStore interface {
	Create(userID int64, p session.Patch) (session.Draft, error)
	Get(userID int64, id string) (session.Draft, error)
	Update(userID int64, id string, p session.Patch) (session.Draft, error)
	Delete(userID int64, id string)
}

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
