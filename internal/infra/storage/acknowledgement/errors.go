package acknowledgement

import "errors"

var (
	// ErrReservationNotFound возвращается, когда подтверждаемой брони нет (нарушение внешнего ключа)
	ErrReservationNotFound = errors.New("acknowledgement.repository: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("acknowledgement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("acknowledgement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("acknowledgement.repository: failed to scan row")
)
