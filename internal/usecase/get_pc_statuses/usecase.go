package get_pc_statuses

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Response статусы ПК зала; машины вне пула отброшены
type Response struct {
	Statuses []Status
	Summary  map[domain.PCState]int
}

// Status статус одной машины пула
type Status struct {
	domain.PCStatus
	Zone      domain.Zone
	Streaming bool
}

// UseCase use case живой сетки ПК
type UseCase struct {
	feed   StatusFeed
	pool   ResourceLookup
	logger Logger
}

func NewUseCase(feed StatusFeed, pool ResourceLookup, logger Logger) *UseCase {
	return &UseCase{feed: feed, pool: pool, logger: logger}
}

// Execute получает статусы и сопоставляет их с пулом; стриминговая станция идёт последней
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	statuses, err := uc.feed.GetStatuses(ctx)
	if err != nil {
		uc.logger.Error("GetPCStatuses: failed to get statuses: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp := &Response{Summary: make(map[domain.PCState]int)}
	for _, st := range statuses {
		id, ok := uc.pool.LookupByName(st.Name)
		if !ok {
			uc.logger.Warn("GetPCStatuses: skip machine %q: not in pool", st.Name)
			continue
		}
		res, _ := uc.pool.Get(id)

		st.Resource = id
		resp.Statuses = append(resp.Statuses, Status{PCStatus: st, Zone: res.Zone, Streaming: res.Streaming})
		resp.Summary[st.State]++
	}

	sort.SliceStable(resp.Statuses, func(i, j int) bool {
		a, b := resp.Statuses[i], resp.Statuses[j]
		if a.Streaming != b.Streaming {
			return !a.Streaming
		}
		return a.Resource < b.Resource
	})

	uc.logger.Info("GetPCStatuses: machines=%d", len(resp.Statuses))
	return resp, nil
}

// ExecuteOne статус одной машины; pc это имя без учёта регистра или номер стола
func (uc *UseCase) ExecuteOne(ctx context.Context, pc string) (*Status, error) {
	// 1. Сопоставляем запрос с пулом до обращения к фиду
	id, ok := uc.pool.LookupByName(pc)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPCNotFound, pc)
	}
	res, _ := uc.pool.Get(id)

	// 2. Получаем статусы
	statuses, err := uc.feed.GetStatuses(ctx)
	if err != nil {
		uc.logger.Error("GetPCStatus: failed to get statuses: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// 3. Ищем машину в ответе фида
	for _, st := range statuses {
		if got, ok := uc.pool.LookupByName(st.Name); !ok || got != id {
			continue
		}
		st.Resource = id
		uc.logger.Info("GetPCStatus: pc=%q state=%s", st.Name, st.State)
		return &Status{PCStatus: st, Zone: res.Zone, Streaming: res.Streaming}, nil
	}

	uc.logger.Warn("GetPCStatus: pc=%q is not reported by the feed", res.Name)
	return nil, fmt.Errorf("%w: %q not reported", ErrPCNotFound, res.Name)
}
