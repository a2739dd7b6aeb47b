package get_availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/timerange"
)

// UseCase use case сетки занятости: журнал + система учёта
type UseCase struct {
	reservationRepo ReservationRepository
	ackRepo         AcknowledgementRepository
	feed            Feed
	reconciler      Reconciler
	hours           HoursPolicy
	slot            time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	ackRepo AcknowledgementRepository,
	feed Feed,
	reconciler Reconciler,
	hours HoursPolicy,
	slot time.Duration,
	logger Logger,
) *UseCase {
	if slot <= 0 {
		slot = domain.DefaultSlotDuration
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		ackRepo:         ackRepo,
		feed:            feed,
		reconciler:      reconciler,
		hours:           hours,
		slot:            slot,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: user=%d, date=%s", req.UserID, req.Date)

	// 1. Разбор даты; без даты показываем сегодняшний день
	if strings.TrimSpace(req.Date) == "" {
		return uc.View(ctx, uc.today())
	}
	date, err := timerange.ParseDate(req.Date, uc.hours.Location())
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q: %v", req.Date, err)
		return nil, err
	}

	return uc.View(ctx, date)
}

// View сетка занятости на календарную дату
func (uc *UseCase) View(ctx context.Context, date time.Time) (*Response, error) {
	date = date.In(uc.hours.Location())

	// 1. Окно работы зала
	window, err := uc.hours.HoursOn(date).Window(date, uc.hours.Location())
	if err != nil {
		uc.logger.Info("GetAvailability: lab is closed on %s", date.Format(domain.DateFormat))
		return &Response{Date: date, Closed: true, View: domain.MergedView{FeedAvailable: true}}, nil
	}

	// 2. Брони журнала за окно
	ledger, err := uc.reservationRepo.ListByRange(ctx, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	// 3. Снимок системы учёта (деградирует при ошибке)
	snapshot := uc.feed.Snapshot(ctx, date)

	// 4. Сведение
	view := uc.reconciler.Merge(snapshot, ledger, domain.Grid{Window: window, Slot: uc.slot})

	// 5. Отметки операторов по ожидающим броням
	acks := map[int64]domain.Acknowledgement{}
	if len(view.Pending) > 0 {
		ids := make([]int64, 0, len(view.Pending))
		for _, p := range view.Pending {
			ids = append(ids, p.ReservationID)
		}
		acks, err = uc.ackRepo.ListByReservations(ctx, ids)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list acknowledgements: %v", err)
			return nil, fmt.Errorf("%w: list acknowledgements: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("GetAvailability: date=%s reservations=%d pending=%d feed=%t",
		date.Format(domain.DateFormat), len(ledger), len(view.Pending), view.FeedAvailable)

	return &Response{
		Date:         date,
		View:         view,
		Acknowledged: acks,
	}, nil
}

// today полночь текущих суток в зоне зала
func (uc *UseCase) today() time.Time {
	loc := uc.hours.Location()
	y, m, d := uc.timeProvider.Now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
