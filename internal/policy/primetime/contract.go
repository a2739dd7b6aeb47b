package primetime

import (
	"context"
	"time"
)

// UsageCounter считает прайм-тайм брони команды, начинающиеся в окне [from, to)
type UsageCounter interface {
	CountPrimeTime(ctx context.Context, team string, from, to time.Time) (int, error)
}

// QuotaSource недельная квота команды
type QuotaSource interface {
	QuotaOf(team string) (int, error)
}
