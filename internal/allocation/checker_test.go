package allocation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

func TestHasConflict_MainCeiling(t *testing.T) {
	checker := NewChecker(mainOnlyPool(t))
	existing := []domain.Reservation{
		reservation(1, "Team A", wed(14, 0, 16, 0), 1, 2, 3, 4, 5),
	}

	conflict := checker.HasConflict(wed(15, 0, 15, 30), 1, domain.KindTeam, existing)

	require.True(t, conflict.Found)
	assert.Equal(t, "Team A", conflict.Team)
	assert.Equal(t, int64(1001), conflict.ManagerID)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(conflict.Err(), &conflictErr))
	assert.ErrorIs(t, conflict.Err(), domain.ErrCapacityConflict)
	assert.Equal(t, int64(1), conflictErr.ReservationID)
}

func TestHasConflict_BoundaryNonConflict(t *testing.T) {
	checker := NewChecker(mainOnlyPool(t))
	existing := []domain.Reservation{
		reservation(1, "Team A", wed(14, 0, 16, 0), 1, 2, 3, 4, 5),
	}

	assert.False(t, checker.HasConflict(wed(16, 0, 18, 0), 5, domain.KindTeam, existing).Found)
	assert.False(t, checker.HasConflict(wed(12, 0, 14, 0), 5, domain.KindTeam, existing).Found)
}

func TestHasConflict_SubIntervalSweep(t *testing.T) {
	checker := NewChecker(mainOnlyPool(t))
	// A и B не пересекаются друг с другом, поэтому на любом подынтервале занято не больше 3
	existing := []domain.Reservation{
		reservation(1, "Team A", wed(14, 0, 15, 0), 1, 2, 3),
		reservation(2, "Team B", wed(15, 0, 16, 0), 4, 5, 6),
	}

	assert.False(t, checker.HasConflict(wed(14, 0, 16, 0), 2, domain.KindTeam, existing).Found)

	conflict := checker.HasConflict(wed(14, 0, 16, 0), 3, domain.KindTeam, existing)
	require.True(t, conflict.Found)
	assert.Equal(t, "Team A", conflict.Team, "first failing sub-interval names the earliest reservation")

	conflict = checker.HasConflict(wed(14, 30, 16, 0), 3, domain.KindTeam, []domain.Reservation{
		reservation(7, "Team C", wed(15, 0, 16, 0), 1, 2, 3),
		reservation(3, "Team D", wed(15, 0, 16, 0), 4),
	})
	require.True(t, conflict.Found)
	assert.Equal(t, "Team D", conflict.Team, "ties on start are broken by id")
}

func TestHasConflict_BackRoomAndSuppression(t *testing.T) {
	checker := NewChecker(labPool(t))

	existingWed := []domain.Reservation{reservation(1, "Team A", wed(14, 0, 16, 0), 1, 2, 3, 4, 5)}
	assert.False(t, checker.HasConflict(wed(15, 0, 16, 0), 3, domain.KindTeam, existingWed).Found, "back room still has 3")
	assert.True(t, checker.HasConflict(wed(15, 0, 16, 0), 4, domain.KindTeam, existingWed).Found)

	existingTue := []domain.Reservation{reservation(1, "Team A", tue(14, 0, 16, 0), 1, 2, 3, 4, 5)}
	assert.True(t, checker.HasConflict(tue(15, 0, 16, 0), 1, domain.KindTeam, existingTue).Found, "back room is closed on tuesdays")

	conflict := checker.HasConflict(tue(15, 0, 16, 0), 6, domain.KindTeam, nil)
	assert.True(t, conflict.Found)
	assert.Empty(t, conflict.Team)
}

func TestHasConflict_External(t *testing.T) {
	checker := NewChecker(labPool(t))
	existing := []domain.Reservation{reservation(4, "Team A", wed(14, 0, 15, 0), 11)}

	assert.True(t, checker.HasConflict(wed(14, 30, 18, 0), 0, domain.KindExternal, existing).Found)
	assert.False(t, checker.HasConflict(wed(15, 0, 18, 0), 0, domain.KindExternal, existing).Found)
}
