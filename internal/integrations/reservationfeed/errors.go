package reservationfeed

import (
	"errors"
	"fmt"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

var (
	// ErrUnavailable фид не ответил после всех попыток; совместима с domain.ErrUpstreamUnavailable
	ErrUnavailable = fmt.Errorf("reservationfeed client: %w", domain.ErrUpstreamUnavailable)

	// ErrInvalidResponse возвращается при некорректном ответе от фида
	ErrInvalidResponse = errors.New("reservationfeed client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("reservationfeed client: internal error")
)
