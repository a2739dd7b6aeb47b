package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrTeamNotFound возвращается, когда команда не зарегистрирована
	ErrTeamNotFound = errors.New("create_reservation: team not found")

	// ErrAccessDenied внешние брони доступны только операторам
	ErrAccessDenied = errors.New("create_reservation: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
