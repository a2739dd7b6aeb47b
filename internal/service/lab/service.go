package lab

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/internal/policy/timerange"
	"github.com/m04kA/GameRoom-ReservationService/internal/service/lab/models"
)

// scheduleDays сколько дней расписания отдаётся начиная с запрошенной даты
const scheduleDays = 7

// Service справочная информация о зале: ПК, команды, часы работы, правила
type Service struct {
	pool          ResourcePool
	teams         TeamRegistry
	hours         HoursTable
	rule          domain.PrimeTimeRule
	advanceNotice int
	games         map[string][]string
	loc           *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	pool ResourcePool,
	teams TeamRegistry,
	hours HoursTable,
	rule domain.PrimeTimeRule,
	advanceNoticeDays int,
	games map[string][]string,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		pool:          pool,
		teams:         teams,
		hours:         hours,
		rule:          rule,
		advanceNotice: advanceNoticeDays,
		games:         games,
		loc:           loc,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetInfo описание зала с расписанием на неделю начиная с from ("" = сегодня)
func (s *Service) GetInfo(ctx context.Context, from string) (*models.LabResponse, error) {
	s.logger.Info("GetInfo: from=%q", from)

	start := s.timeProvider.Now().In(s.loc)
	if from != "" {
		parsed, err := timerange.ParseDate(from, s.loc)
		if err != nil {
			s.logger.Warn("GetInfo: invalid date %q: %v", from, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		start = parsed
	}

	resources := s.pool.Resources()
	resp := &models.LabResponse{
		Resources:         make([]models.ResourceResponse, 0, len(resources)),
		MainCeiling:       s.pool.CeilingOf(domain.ZoneMain),
		BackCeiling:       s.pool.CeilingOf(domain.ZoneBack),
		PrimeTime:         models.FromPrimeTimeRule(s.rule),
		AdvanceNoticeDays: s.advanceNotice,
		Games:             models.FromGames(s.games),
	}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, models.FromDomainResource(r))
	}
	for _, t := range s.teams.All() {
		resp.Teams = append(resp.Teams, models.FromDomainTeam(t))
	}
	for i := 0; i < scheduleDays; i++ {
		resp.Schedule = append(resp.Schedule, s.day(start.AddDate(0, 0, i)))
	}

	return resp, nil
}

func (s *Service) day(date time.Time) models.DayResponse {
	h := s.hours.For(date)
	d := models.DayResponse{
		Date:     date.Format(domain.DateFormat),
		Weekday:  date.Weekday().String(),
		Closed:   h.Closed,
		Adjusted: s.hours.IsOverridden(date),
	}
	if !h.Closed {
		d.Open = h.Open.String()
		d.Close = h.Close.String()
	}
	for _, z := range []domain.Zone{domain.ZoneMain, domain.ZoneBack} {
		if s.pool.IsSuppressed(z, date.Weekday()) {
			d.SuppressedZones = append(d.SuppressedZones, string(z))
		}
	}
	return d
}
