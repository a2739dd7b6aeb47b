package allocation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

var loc = time.FixedZone("CST", -6*3600)

// 2025-03-12 среда, 2025-03-11 вторник
func wed(h1, m1, h2, m2 int) domain.TimeRange {
	return domain.TimeRange{
		Start: time.Date(2025, 3, 12, h1, m1, 0, 0, loc),
		End:   time.Date(2025, 3, 12, h2, m2, 0, 0, loc),
	}
}

func tue(h1, m1, h2, m2 int) domain.TimeRange {
	return domain.TimeRange{
		Start: time.Date(2025, 3, 11, h1, m1, 0, 0, loc),
		End:   time.Date(2025, 3, 11, h2, m2, 0, 0, loc),
	}
}

func mainDesks(n int) []domain.Resource {
	var out []domain.Resource
	for i := 1; i <= n; i++ {
		block := 1
		if i > 5 {
			block = 2
		}
		out = append(out, domain.Resource{ID: domain.ResourceID(i), Name: fmt.Sprintf("Desk %03d", i), Zone: domain.ZoneMain, Block: block})
	}
	return out
}

// mainOnlyPool 10 ПК основного зала, одновременно заняты могут быть не больше 5
func mainOnlyPool(t *testing.T) *domain.ResourcePool {
	t.Helper()
	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: mainDesks(10), MainCeiling: 5})
	require.NoError(t, err)
	return pool
}

// wideCeilingPool 10 ПК основного зала без отдельного потолка
func wideCeilingPool(t *testing.T) *domain.ResourcePool {
	t.Helper()
	pool, err := domain.NewResourcePool(domain.PoolOptions{Resources: mainDesks(10), MainCeiling: 10})
	require.NoError(t, err)
	return pool
}

// labPool основной зал плюс задний (11, 12, стрим 13), задний зал закрыт по вторникам
func labPool(t *testing.T) *domain.ResourcePool {
	t.Helper()
	resources := append(mainDesks(10),
		domain.Resource{ID: 11, Name: "Desk 011", Zone: domain.ZoneBack},
		domain.Resource{ID: 12, Name: "Desk 012", Zone: domain.ZoneBack},
		domain.Resource{ID: 13, Name: "Desk 000 - Streaming", Zone: domain.ZoneBack, Streaming: true},
	)
	pool, err := domain.NewResourcePool(domain.PoolOptions{
		Resources:   resources,
		MainCeiling: 5,
		BackOrder:   []domain.ResourceID{12, 11, 13},
		Suppressed:  map[time.Weekday][]domain.Zone{time.Tuesday: {domain.ZoneBack}},
	})
	require.NoError(t, err)
	return pool
}

func reservation(id int64, team string, r domain.TimeRange, ids ...domain.ResourceID) domain.Reservation {
	return domain.Reservation{
		ID:        id,
		Kind:      domain.KindTeam,
		Team:      team,
		Resources: ids,
		Range:     r,
		ManagerID: 1000 + id,
	}
}
