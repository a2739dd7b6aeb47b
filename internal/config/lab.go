package config

import (
	"fmt"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
	"github.com/m04kA/GameRoom-ReservationService/pkg/types"
)

// Lab доменные объекты зала, построенные из конфигурации один раз при старте
type Lab struct {
	Location          *time.Location
	Pool              *domain.ResourcePool
	Teams             *domain.TeamRegistry
	Hours             *domain.OpenHours
	PrimeTime         domain.PrimeTimeRule
	AdvanceNoticeDays int
	SlotDuration      time.Duration
	MatchTolerance    time.Duration
	Games             map[string][]string
}

// BuildLab строит и валидирует доменные объекты
func (c *Config) BuildLab() (*Lab, error) {
	loc, err := time.LoadLocation(c.Lab.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Lab.Timezone, err)
	}

	pool, err := c.Pool.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	teams := make([]domain.Team, 0, len(c.Teams))
	for _, t := range c.Teams {
		teams = append(teams, domain.Team{Name: t.Name, Quota: t.Quota})
	}
	registry, err := domain.NewTeamRegistry(teams)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	hours, err := c.Hours.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	rule := domain.PrimeTimeRule{
		WeekdayStartHour: c.Lab.WeekdayPrimeHour,
		WeekendStartHour: c.Lab.WeekendPrimeHour,
	}
	for _, name := range c.Lab.WeekendDays {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: weekend day %q", ErrInvalidConfig, name)
		}
		rule.WeekendDays = append(rule.WeekendDays, day)
	}

	return &Lab{
		Location:          loc,
		Pool:              pool,
		Teams:             registry,
		Hours:             hours,
		PrimeTime:         rule,
		AdvanceNoticeDays: c.Lab.AdvanceNoticeDays,
		SlotDuration:      time.Duration(c.Lab.SlotMinutes) * time.Minute,
		MatchTolerance:    time.Duration(c.Lab.ToleranceMinutes) * time.Minute,
		Games:             c.Lab.Games,
	}, nil
}

func (p PoolConfig) build() (*domain.ResourcePool, error) {
	opts := domain.PoolOptions{
		MainCeiling: p.MainCeiling,
		Suppressed:  make(map[time.Weekday][]domain.Zone),
	}
	for _, r := range p.Resources {
		opts.Resources = append(opts.Resources, domain.Resource{
			ID:        domain.ResourceID(r.ID),
			Name:      r.Name,
			Zone:      domain.Zone(r.Zone),
			Block:     r.Block,
			Streaming: r.Streaming,
		})
	}
	for _, id := range p.BackOrder {
		opts.BackOrder = append(opts.BackOrder, domain.ResourceID(id))
	}
	for name, zones := range p.Suppressed {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("suppressed: unknown weekday %q", name)
		}
		for _, z := range zones {
			opts.Suppressed[day] = append(opts.Suppressed[day], domain.Zone(z))
		}
	}
	return domain.NewResourcePool(opts)
}

func (h HoursConfig) build() (*domain.OpenHours, error) {
	weekly := make(map[time.Weekday]domain.DayHours, len(h.Weekly))
	for name, dh := range h.Weekly {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("hours: unknown weekday %q", name)
		}
		weekly[day] = domain.DayHours{
			Closed: dh.Closed,
			Open:   types.TimeString(dh.Open),
			Close:  types.TimeString(dh.Close),
		}
	}

	overrides := make(map[string]domain.DayHours, len(h.Overrides))
	for _, o := range h.Overrides {
		overrides[o.Date] = domain.DayHours{
			Closed: o.Closed,
			Open:   types.TimeString(o.Open),
			Close:  types.TimeString(o.Close),
		}
	}

	return domain.NewOpenHours(weekly, overrides)
}
