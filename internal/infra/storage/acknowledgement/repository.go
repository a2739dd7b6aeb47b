package acknowledgement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/GameRoom-ReservationService/pkg/psqlbuilder"
)

const (
	table = "reservation_acks"

	// foreignKeyViolation SQLSTATE нарушения внешнего ключа
	foreignKeyViolation = "23503"
)

// Repository журнал подтверждений операторов (только вставка)
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// Acknowledge записывает подтверждение; повторное подтверждение той же брони ничего не меняет
func (r *Repository) Acknowledge(ctx context.Context, reservationID, operatorID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("reservation_id", "operator_id", "acknowledged_at").
		Values(reservationID, operatorID, at).
		Suffix("ON CONFLICT (reservation_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Acknowledge - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: Acknowledge - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByReservations подтверждения для набора броней, по ID брони
func (r *Repository) ListByReservations(ctx context.Context, reservationIDs []int64) (map[int64]domain.Acknowledgement, error) {
	acks := make(map[int64]domain.Acknowledgement, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return acks, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_id", "operator_id", "acknowledged_at").
		From(table).
		Where(squirrel.Expr("reservation_id = ANY(?)", pq.Array(reservationIDs))).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ack domain.Acknowledgement
		if err := rows.Scan(&ack.ReservationID, &ack.OperatorID, &ack.AcknowledgedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByReservations - scan row: %v", ErrScanRow, err)
		}
		ack.AcknowledgedAt = ack.AcknowledgedAt.In(r.loc)
		acks[ack.ReservationID] = ack
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservations - rows error: %v", ErrScanRow, err)
	}

	return acks, nil
}
