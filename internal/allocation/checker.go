package allocation

import (
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Conflict результат проверки вместимости
// При Found == true поля описывают первую бронь, мешающую запросу (если она есть)
type Conflict struct {
	Found         bool
	ReservationID int64
	Team          string
	ManagerID     int64
}

// Err ошибка для вызывающего; nil, если конфликта нет
func (c Conflict) Err() error {
	if !c.Found {
		return nil
	}
	return &domain.ConflictError{ReservationID: c.ReservationID, Team: c.Team, ManagerID: c.ManagerID}
}

// Checker проверяет, что потолки зон не превышаются ни в один момент диапазона
type Checker struct {
	pool *domain.ResourcePool
}

func NewChecker(pool *domain.ResourcePool) *Checker {
	return &Checker{pool: pool}
}

// HasConflict проверяет запрос на count ПК; kind external занимает весь зал
// и конфликтует с любой пересекающейся бронью
func (c *Checker) HasConflict(r domain.TimeRange, count int, kind domain.ReservationKind, existing []domain.Reservation) Conflict {
	if kind == domain.KindExternal {
		overlapping := overlappingSorted(r, existing)
		if len(overlapping) == 0 {
			return Conflict{}
		}
		return conflictWith(overlapping[0])
	}

	backSuppressed := c.pool.IsSuppressed(domain.ZoneBack, r.Start.Weekday())
	mainSuppressed := c.pool.IsSuppressed(domain.ZoneMain, r.Start.Weekday())

	for _, seg := range sweep(c.pool, r, existing) {
		residual := 0
		if !mainSuppressed {
			residual += max0(c.pool.CeilingOf(domain.ZoneMain) - seg.main)
		}
		if !backSuppressed {
			residual += max0(c.pool.CeilingOf(domain.ZoneBack) - seg.back)
		}
		if residual >= count {
			continue
		}
		if len(seg.active) == 0 {
			return Conflict{Found: true}
		}
		return conflictWith(seg.active[0])
	}

	return Conflict{}
}

func conflictWith(res domain.Reservation) Conflict {
	return Conflict{
		Found:         true,
		ReservationID: res.ID,
		Team:          res.Team,
		ManagerID:     res.ManagerID,
	}
}
