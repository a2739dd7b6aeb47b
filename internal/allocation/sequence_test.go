package allocation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

const sampleStep = 15 * time.Minute

// bookSequence прогоняет случайные запросы через Checker и Allocator так же, как use case создания брони
func bookSequence(pool *domain.ResourcePool, rng *rand.Rand, day time.Time, requests int) []domain.Reservation {
	checker := NewChecker(pool)
	allocator := NewAllocator(pool)

	var booked []domain.Reservation
	for i := 0; i < requests; i++ {
		start := day.Add(12*time.Hour + time.Duration(rng.Intn(40))*sampleStep)
		r := domain.TimeRange{Start: start, End: start.Add(time.Duration(1+rng.Intn(12)) * sampleStep)}

		kind := domain.KindTeam
		count := 1 + rng.Intn(6)
		if rng.Intn(10) == 0 {
			kind = domain.KindExternal
			count = 0
		}

		if checker.HasConflict(r, count, kind, booked).Found {
			continue
		}
		ids := allocator.Allocate(r, count, kind, booked)
		if ids == nil {
			continue
		}
		booked = append(booked, domain.Reservation{
			ID:        int64(i + 1),
			Kind:      kind,
			Team:      "Team",
			Resources: ids,
			Range:     r,
		})
	}
	return booked
}

func assertNoSharedResources(t *testing.T, booked []domain.Reservation) {
	t.Helper()
	for i := range booked {
		for j := i + 1; j < len(booked); j++ {
			a, b := booked[i], booked[j]
			if !a.Range.Overlaps(b.Range) {
				continue
			}
			for _, id := range a.Resources {
				assert.False(t, b.Holds(id), "reservations %d and %d both hold %d", a.ID, b.ID, id)
			}
		}
	}
}

func assertMainCeiling(t *testing.T, pool *domain.ResourcePool, booked []domain.Reservation, day time.Time) {
	t.Helper()
	ceiling := pool.CeilingOf(domain.ZoneMain)
	for at := day.Add(12 * time.Hour); at.Before(day.Add(26 * time.Hour)); at = at.Add(sampleStep) {
		used := 0
		for _, res := range booked {
			if res.Kind != domain.KindTeam || !res.Range.Contains(at) {
				continue
			}
			main, _ := pool.CountByZone(res.Resources)
			used += main
		}
		assert.LessOrEqual(t, used, ceiling, "main room over ceiling at %s", at.Format("15:04"))
	}
}

func TestBookingSequence_NoDoubleBookingWithinCeilings(t *testing.T) {
	pools := map[string]*domain.ResourcePool{
		"lab":       labPool(t),
		"main only": mainOnlyPool(t),
	}
	days := map[string]time.Time{
		"wednesday":           time.Date(2025, 3, 12, 0, 0, 0, 0, loc),
		"tuesday back closed": time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
	}

	for poolName, pool := range pools {
		for dayName, day := range days {
			t.Run(poolName+"/"+dayName, func(t *testing.T) {
				var total int
				for seed := int64(1); seed <= 300; seed++ {
					booked := bookSequence(pool, rand.New(rand.NewSource(seed)), day, 30)
					total += len(booked)

					assertNoSharedResources(t, booked)
					assertMainCeiling(t, pool, booked, day)
					if t.Failed() {
						t.Logf("seed=%d", seed)
						return
					}
				}
				require.Positive(t, total)
			})
		}
	}
}

func TestBookingSequence_BackRoomUnusedWhenSuppressed(t *testing.T) {
	pool := labPool(t)
	tuesday := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)

	for seed := int64(1); seed <= 100; seed++ {
		for _, res := range bookSequence(pool, rand.New(rand.NewSource(seed)), tuesday, 30) {
			if res.Kind != domain.KindTeam {
				continue
			}
			_, back := pool.CountByZone(res.Resources)
			require.Zero(t, back, "seed=%d reservation=%d", seed, res.ID)
		}
	}
}
