package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/GameRoom-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"kind",
	"team",
	"resources",
	"start_at",
	"end_at",
	"manager_id",
	"is_prime_time",
	"created_at",
}

// Repository реестр подтверждённых броней
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает репозиторий; времена из БД приводятся к зоне зала loc
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// Create сохраняет бронь и заполняет ID и CreatedAt
// Вызывается внутри serializable транзакции вместе с GetOverlapping
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"kind",
			"team",
			"resources",
			"start_at",
			"end_at",
			"manager_id",
			"is_prime_time",
		).
		Values(
			string(res.Kind),
			res.Team,
			pq.Array(toInt64s(res.Resources)),
			res.Range.Start,
			res.Range.End,
			res.ManagerID,
			res.IsPrimeTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.In(r.loc)

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetOverlapping брони, пересекающие [span.Start, span.End), по началу и id
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetOverlapping(ctx context.Context, span domain.TimeRange) ([]domain.Reservation, error) {
	selectBuilder := r.overlappingQuery(span)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "GetOverlapping", selectBuilder)
}

// ListByRange брони, пересекающие [from, to), без блокировок (для чтения)
func (r *Repository) ListByRange(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	return r.list(ctx, "ListByRange", r.overlappingQuery(domain.TimeRange{Start: from, End: to}))
}

// ListByManager будущие брони менеджера
func (r *Repository) ListByManager(ctx context.Context, managerID int64, from time.Time) ([]domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"manager_id": managerID}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC", "id ASC")

	return r.list(ctx, "ListByManager", selectBuilder)
}

func (r *Repository) overlappingQuery(span domain.TimeRange) squirrel.SelectBuilder {
	// Полуинтервалы: касающиеся брони не пересекаются
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"start_at": span.End}).
		Where(squirrel.Gt{"end_at": span.Start}).
		OrderBy("start_at ASC", "id ASC")
}

// CountPrimeTime число прайм-тайм броней команды с началом в [from, to)
func (r *Repository) CountPrimeTime(ctx context.Context, team string, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"team": team, "is_prime_time": true}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountPrimeTime - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPrimeTime - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountPrimeTimeByTeam число прайм-тайм броней каждой команды с началом в [from, to)
func (r *Repository) CountPrimeTimeByTeam(ctx context.Context, from, to time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("team", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"is_prime_time": true}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		GroupBy("team").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountPrimeTimeByTeam - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountPrimeTimeByTeam - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var team string
		var count int
		if err := rows.Scan(&team, &count); err != nil {
			return nil, fmt.Errorf("%w: CountPrimeTimeByTeam - scan row: %v", ErrScanRow, err)
		}
		counts[team] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountPrimeTimeByTeam - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Delete удаляет бронь, если она ещё не началась к моменту now
// Условие по start_at проверяется в самом запросе
func (r *Repository) Delete(ctx context.Context, id int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"start_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Отличаем отсутствующую бронь от уже начавшейся
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrCannotCancel
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		kind      string
		resources []int64
		startAt   time.Time
		endAt     time.Time
		createdAt time.Time
	)

	err := row.Scan(
		&res.ID,
		&kind,
		&res.Team,
		pq.Array(&resources),
		&startAt,
		&endAt,
		&res.ManagerID,
		&res.IsPrimeTime,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	res.Kind = domain.ReservationKind(kind)
	res.Resources = make([]domain.ResourceID, 0, len(resources))
	for _, id := range resources {
		res.Resources = append(res.Resources, domain.ResourceID(id))
	}
	res.Range = domain.TimeRange{Start: startAt.In(r.loc), End: endAt.In(r.loc)}
	res.CreatedAt = createdAt.In(r.loc)

	return &res, nil
}

func toInt64s(ids []domain.ResourceID) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
