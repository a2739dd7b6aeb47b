package primetime

import "errors"

var (
	// ErrInternal возвращается, когда не удалось посчитать использование квоты
	ErrInternal = errors.New("primetime: internal error")
)
