package ack_reservation

import "context"

type ReservationService interface {
	Acknowledge(ctx context.Context, id int64, operatorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
