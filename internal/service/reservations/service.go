package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	ackRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/acknowledgement"
	reservationRepo "github.com/m04kA/GameRoom-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/GameRoom-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронями журнала
type Service struct {
	reservationRepo ReservationRepository
	ackRepo         AcknowledgementRepository
	quotas          QuotaChecker
	teams           TeamRegistry
	pool            ResourceDirectory
	access          AccessChecker
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	ackRepo AcknowledgementRepository,
	quotas QuotaChecker,
	teams TeamRegistry,
	pool ResourceDirectory,
	access AccessChecker,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		ackRepo:         ackRepo,
		quotas:          quotas,
		teams:           teams,
		pool:            pool,
		access:          access,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Видеть бронь может менеджер, который её создал, или оператор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !s.canManage(res, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res, s.pool), nil
}

// ListUpcoming брони менеджера, которые ещё не закончились
func (s *Service) ListUpcoming(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListUpcoming: fetching reservations for user=%d", userID)

	list, err := s.reservationRepo.ListByManager(ctx, userID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListUpcoming: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcoming: successfully fetched %d reservations for user=%d", len(list), userID)
	return models.FromDomainReservationList(list, s.pool), nil
}

// Cancel удаляет бронь до её начала
// Отменить может менеджер, который её создал, или оператор
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, userID)

	res, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !s.canManage(res, userID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", userID, id)
		return ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if res.HasStarted(now) {
		s.logger.Warn("Cancel: reservation id=%d has already started", id)
		return ErrCannotCancel
	}

	// Условие start_at > now повторяется в запросе: бронь могла начаться между чтением и удалением
	if err := s.reservationRepo.Delete(ctx, id, now); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Cancel: reservation id=%d not found during delete", id)
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrCannotCancel):
			s.logger.Warn("Cancel: reservation id=%d started during delete", id)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d team=%q", id, res.Team)
	return nil
}

// Acknowledge оператор отмечает, что бронь перенесена в систему учёта вручную
func (s *Service) Acknowledge(ctx context.Context, id int64, operatorID int64) error {
	s.logger.Info("Acknowledge: reservation id=%d by user=%d", id, operatorID)

	if !s.access.IsOperator(operatorID) {
		s.logger.Warn("Acknowledge: user=%d is not an operator", operatorID)
		return ErrAccessDenied
	}

	if err := s.ackRepo.Acknowledge(ctx, id, operatorID, s.timeProvider.Now()); err != nil {
		if errors.Is(err, ackRepo.ErrReservationNotFound) {
			s.logger.Warn("Acknowledge: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Acknowledge: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Acknowledge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Acknowledge: successfully acknowledged reservation id=%d", id)
	return nil
}

// GetQuota использование прайм-тайма командой за текущую неделю
func (s *Service) GetQuota(ctx context.Context, team string) (*models.QuotaResponse, error) {
	s.logger.Info("GetQuota: team=%q", team)

	t, err := s.teams.Get(team)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTeam) {
			s.logger.Warn("GetQuota: team=%q not found", team)
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: GetQuota - team lookup: %v", ErrInternal, err)
	}

	q, err := s.quotas.CheckQuota(ctx, t.Name, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetQuota: failed to check quota for team=%q: %v", t.Name, err)
		return nil, fmt.Errorf("%w: GetQuota - check quota: %v", ErrInternal, err)
	}

	return models.FromQuota(q), nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

// canManage менеджер брони или оператор
func (s *Service) canManage(res *domain.Reservation, userID int64) bool {
	return res.ManagerID == userID || s.access.IsOperator(userID)
}
