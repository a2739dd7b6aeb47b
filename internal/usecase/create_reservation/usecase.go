package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/primetime"
)

// UseCase use case создания брони: проверки, подбор ПК и запись в журнал одной транзакцией
type UseCase struct {
	reservationRepo ReservationRepository
	teams           TeamRegistry
	pool            ResourceDirectory
	timePolicy      TimePolicy
	primePolicy     PrimeTimePolicy
	checker         ConflictChecker
	allocator       Allocator
	access          AccessChecker
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	tracer          trace.Tracer
	logger          Logger
}

// Deps зависимости use case
type Deps struct {
	ReservationRepo ReservationRepository
	Teams           TeamRegistry
	Pool            ResourceDirectory
	TimePolicy      TimePolicy
	PrimePolicy     PrimeTimePolicy
	Checker         ConflictChecker
	Allocator       Allocator
	Access          AccessChecker
	TxManager       TransactionManager
	Metrics         MetricsRecorder
	Logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		reservationRepo: d.ReservationRepo,
		teams:           d.Teams,
		pool:            d.Pool,
		timePolicy:      d.TimePolicy,
		primePolicy:     d.PrimePolicy,
		checker:         d.Checker,
		allocator:       d.Allocator,
		access:          d.Access,
		txManager:       d.TxManager,
		metrics:         d.Metrics,
		timeProvider:    &RealTimeProvider{},
		tracer:          otel.Tracer("create_reservation"),
		logger:          d.Logger,
	}
}

// Execute выполняет use case создания брони
// Порядок: проверка вместимости -> подбор ПК -> квота -> запись, всё в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, team=%q, count=%d, date=%s, time=%s-%s, external=%t",
		req.UserID, req.Team, req.Count, req.Date, req.StartTime, req.EndTime, req.External)

	ctx, span := uc.tracer.Start(ctx, "CreateReservation", trace.WithAttributes(
		attribute.String("team", req.Team),
		attribute.Int("count", req.Count),
		attribute.Bool("external", req.External),
	))
	defer span.End()

	result, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create reservation")
		if reason := rejectionReason(err); reason != "" && uc.metrics != nil {
			uc.metrics.ReservationRejected(reason)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("reservation.id", result.ID))
	if uc.metrics != nil {
		uc.metrics.ReservationCreated(result.Team, string(result.Kind), result.IsPrimeTime)
	}
	return result, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	kind := domain.KindTeam
	if req.External {
		kind = domain.KindExternal
	}

	// 2. Внешние брони делает только оператор
	if kind == domain.KindExternal && !uc.access.IsOperator(req.UserID) {
		uc.logger.Warn("CreateReservation: user=%d is not an operator", req.UserID)
		return nil, ErrAccessDenied
	}

	// 3. Команда: каноническое имя из справочника
	team := strings.TrimSpace(req.Team)
	if kind == domain.KindTeam {
		registered, err := uc.teams.Get(team)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownTeam) {
				uc.logger.Warn("CreateReservation: team=%q not found", req.Team)
				return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, req.Team)
			}
			return nil, fmt.Errorf("%w: get team: %v", ErrInternal, err)
		}
		team = registered.Name
	}

	// 4. Количество ПК не больше, чем может принять зал
	if kind == domain.KindTeam && req.Count > uc.pool.MaxRequest() {
		uc.logger.Warn("CreateReservation: count=%d exceeds max=%d", req.Count, uc.pool.MaxRequest())
		return nil, fmt.Errorf("%w: requested %d, at most %d", domain.ErrTooManyResources, req.Count, uc.pool.MaxRequest())
	}

	// 5. Разбор и проверка диапазона
	span, err := uc.timePolicy.Parse(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateReservation: parse failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := uc.timePolicy.Validate(span, now, kind); err != nil {
		uc.logger.Warn("CreateReservation: policy check failed for %s: %v", span.Start.Format(domain.TimeFormat), err)
		return nil, err
	}

	var (
		created *domain.Reservation
		quota   primetime.Quota
	)

	// 6. Проверка, подбор и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Брони, пересекающие диапазон (FOR UPDATE)
		existing, err := uc.reservationRepo.GetOverlapping(txCtx, span)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get overlapping reservations: %v", err)
			return fmt.Errorf("%w: get overlapping: %v", ErrInternal, err)
		}

		// 6.2. Вместимость зала
		if conflict := uc.checker.HasConflict(span, req.Count, kind, existing); conflict.Found {
			uc.logger.Warn("CreateReservation: capacity conflict with reservation id=%d team=%q",
				conflict.ReservationID, conflict.Team)
			return conflict.Err()
		}

		// 6.3. Конкретные ПК
		resources := uc.allocator.Allocate(span, req.Count, kind, existing)
		if len(resources) == 0 {
			uc.logger.Warn("CreateReservation: allocation failed for count=%d", req.Count)
			return domain.ErrAllocationRace
		}

		// 6.4. Прайм-тайм и квота; внешние брони квоту не расходуют
		isPrime := kind == domain.KindTeam && uc.primePolicy.Classify(span, resources)
		quota, err = uc.primePolicy.Enforce(txCtx, team, span, isPrime)
		if err != nil {
			var quotaErr *domain.QuotaError
			if errors.As(err, &quotaErr) {
				uc.logger.Warn("CreateReservation: quota exceeded for team=%q: %d/%d", team, quotaErr.Used, quotaErr.Limit)
				return err
			}
			uc.logger.Error("CreateReservation: failed to check quota: %v", err)
			return fmt.Errorf("%w: check quota: %v", ErrInternal, err)
		}

		// 6.5. Запись
		res := &domain.Reservation{
			Kind:        kind,
			Team:        team,
			Resources:   resources,
			Range:       span,
			ManagerID:   req.UserID,
			IsPrimeTime: isPrime,
		}
		created, err = uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: create reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d resources=%v prime=%t",
		created.ID, created.Resources, created.IsPrimeTime)

	return uc.toResponse(created, quota), nil
}

func (uc *UseCase) toResponse(res *domain.Reservation, quota primetime.Quota) *Response {
	resources := make([]domain.Resource, 0, len(res.Resources))
	for _, id := range res.Resources {
		if r, ok := uc.pool.Get(id); ok {
			resources = append(resources, r)
		}
	}

	resp := &Response{
		ID:          res.ID,
		Kind:        res.Kind,
		Team:        res.Team,
		Resources:   resources,
		Start:       res.Range.Start,
		End:         res.Range.End,
		IsPrimeTime: res.IsPrimeTime,
		CreatedAt:   res.CreatedAt,
	}
	if res.IsPrimeTime {
		resp.QuotaUsed = quota.Used + 1
		resp.QuotaLimit = quota.Limit
	}
	return resp
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Team) == "" {
		return fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	if !req.External && req.Count <= 0 {
		return fmt.Errorf("%w: count must be positive", ErrInvalidInput)
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return fmt.Errorf("%w: date, startTime and endTime are required", ErrInvalidInput)
	}
	return nil
}

// rejectionReason метка метрики отказов; пустая строка для внутренних ошибок
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrTooShortNotice):
		return "too_short_notice"
	case errors.Is(err, domain.ErrOutsideOpenHours):
		return "outside_open_hours"
	case errors.Is(err, domain.ErrRangeInPast):
		return "range_in_past"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrTooManyResources):
		return "too_many_resources"
	case errors.Is(err, domain.ErrCapacityConflict):
		return "capacity_conflict"
	case errors.Is(err, domain.ErrAllocationRace):
		return "allocation_race"
	case errors.Is(err, ErrTeamNotFound):
		return "unknown_team"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return ""
	}
}
