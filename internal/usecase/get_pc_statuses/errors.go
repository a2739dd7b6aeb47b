package get_pc_statuses

import "errors"

var (
	// ErrUnavailable возвращается, когда фид статусов недоступен
	ErrUnavailable = errors.New("get_pc_statuses: status feed unavailable")

	// ErrPCNotFound машина не из пула или фид о ней не сообщает
	ErrPCNotFound = errors.New("get_pc_statuses: pc not found")
)
