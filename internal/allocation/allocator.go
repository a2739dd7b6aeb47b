package allocation

import (
	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Allocator детерминированно выбирает конкретные ПК для запроса
type Allocator struct {
	pool *domain.ResourcePool
}

func NewAllocator(pool *domain.ResourcePool) *Allocator {
	return &Allocator{pool: pool}
}

// Allocate возвращает count ПК, свободных на всём диапазоне, или nil
//
// Порядок: задний зал в настроенном порядке (если не закрыт в этот день),
// затем основной зал: первый блок, который целиком вмещает остаток, иначе блоки по порядку.
// Внешняя бронь получает весь зал, если с ней ничего не пересекается.
func (a *Allocator) Allocate(r domain.TimeRange, count int, kind domain.ReservationKind, existing []domain.Reservation) []domain.ResourceID {
	if kind == domain.KindExternal {
		if len(overlappingSorted(r, existing)) > 0 {
			return nil
		}
		return a.pool.IDs()
	}
	if count <= 0 {
		return nil
	}

	busy := make(map[domain.ResourceID]bool)
	for _, res := range overlappingSorted(r, existing) {
		for _, id := range res.Resources {
			busy[id] = true
		}
	}

	selected := make([]domain.ResourceID, 0, count)
	day := r.Start.Weekday()

	if !a.pool.IsSuppressed(domain.ZoneBack, day) {
		for _, id := range a.pool.BackOrder() {
			if len(selected) == count {
				break
			}
			if !busy[id] {
				selected = append(selected, id)
			}
		}
	}

	remaining := count - len(selected)
	if remaining > 0 && !a.pool.IsSuppressed(domain.ZoneMain, day) {
		selected = append(selected, a.pickMain(busy, remaining)...)
	}

	if len(selected) < count {
		return nil
	}

	main, _ := a.pool.CountByZone(selected)
	if main > 0 && main+a.peakMainUsage(r, existing) > a.pool.CeilingOf(domain.ZoneMain) {
		return nil
	}

	return selected
}

func (a *Allocator) pickMain(busy map[domain.ResourceID]bool, remaining int) []domain.ResourceID {
	blocks := a.pool.MainBlocks()
	free := make([][]domain.ResourceID, len(blocks))
	for i, block := range blocks {
		for _, id := range block {
			if !busy[id] {
				free[i] = append(free[i], id)
			}
		}
	}

	for _, ids := range free {
		if len(ids) >= remaining {
			return ids[:remaining]
		}
	}

	var out []domain.ResourceID
	for _, ids := range free {
		for _, id := range ids {
			if len(out) == remaining {
				return out
			}
			out = append(out, id)
		}
	}
	return out
}

// peakMainUsage наибольшее число занятых ПК основного зала на диапазоне
func (a *Allocator) peakMainUsage(r domain.TimeRange, existing []domain.Reservation) int {
	peak := 0
	for _, seg := range sweep(a.pool, r, existing) {
		if seg.main > peak {
			peak = seg.main
		}
	}
	return peak
}
