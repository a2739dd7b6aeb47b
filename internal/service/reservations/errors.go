package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrTeamNotFound возвращается, когда команда не зарегистрирована
	ErrTeamNotFound = errors.New("reservations: team not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrCannotCancel возвращается, когда бронь уже началась
	ErrCannotCancel = errors.New("reservations: reservation has already started")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
