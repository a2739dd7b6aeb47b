package reservationfeed

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache кэш тел ответов (Redis); может отсутствовать
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// MetricsRecorder учёт обращений к фиду
type MetricsRecorder interface {
	FeedFetched(endpoint, result string)
}
