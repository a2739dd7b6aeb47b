package reconcile

import (
	"sort"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// Reconciler сводит локальный реестр броней с внешней системой учёта в одну сетку
// Чистая функция: входные данные не изменяются, результат детерминирован
type Reconciler struct {
	pool      *domain.ResourcePool
	tolerance time.Duration
}

func NewReconciler(pool *domain.ResourcePool, tolerance time.Duration) *Reconciler {
	return &Reconciler{pool: pool, tolerance: tolerance}
}

// feedHit запись фида, привязанная к конкретному ПК пула
type feedHit struct {
	resource domain.ResourceID
	entry    domain.FeedEntry
	matched  bool
}

// priority при наложении состояний побеждает большее
var priority = map[domain.CellState]int{
	domain.CellFree:      0,
	domain.CellConfirmed: 1,
	domain.CellUnknown:   2,
	domain.CellPending:   3,
}

// Merge строит сетку grid × ресурсы пула
//
// Командная бронь подтверждена по ресурсу, если в фиде есть запись с этим ресурсом,
// начало и конец которой совпадают с бронью с точностью до tolerance; иначе ресурс pending.
// Внешние брони подтверждены всегда. Записи фида без пары в реестре считаются подтверждёнными.
// Если фид недоступен, ресурсы командных броней получают состояние unknown.
func (r *Reconciler) Merge(feed domain.FeedSnapshot, ledger []domain.Reservation, grid domain.Grid) domain.MergedView {
	ids := r.pool.IDs()
	slots := grid.Slots()
	row := make(map[domain.ResourceID]int, len(ids))

	view := domain.MergedView{
		Grid:          grid,
		Resources:     ids,
		Cells:         make([][]domain.Cell, len(ids)),
		FeedAvailable: feed.Available,
	}
	for i, id := range ids {
		row[id] = i
		view.Cells[i] = make([]domain.Cell, len(slots))
		for j, s := range slots {
			view.Cells[i][j] = domain.Cell{Resource: id, SlotStart: s, State: domain.CellFree}
		}
	}

	var hits []*feedHit
	if feed.Available {
		hits = r.resolveFeed(feed.Entries)
	}

	for _, res := range sortedLedger(ledger, grid.Window) {
		var pending []domain.ResourceID

		for _, id := range res.Resources {
			i, ok := row[id]
			if !ok {
				continue
			}

			state := domain.CellConfirmed
			if res.Kind != domain.KindExternal {
				switch {
				case !feed.Available:
					state = domain.CellUnknown
				case r.match(hits, id, res.Range):
					state = domain.CellConfirmed
				default:
					state = domain.CellPending
					pending = append(pending, id)
				}
			}

			paint(view.Cells[i], grid.Slot, res.Range, domain.Cell{
				State:         state,
				ReservationID: res.ID,
				Team:          res.Team,
			})
		}

		if len(pending) > 0 {
			view.Pending = append(view.Pending, domain.PendingItem{
				ReservationID: res.ID,
				Team:          res.Team,
				Resources:     pending,
				Range:         res.Range,
				ManagerID:     res.ManagerID,
				CreatedAt:     res.CreatedAt,
			})
		}
	}

	for _, hit := range hits {
		if hit.matched {
			continue
		}
		paint(view.Cells[row[hit.resource]], grid.Slot, domain.TimeRange{Start: hit.entry.Start, End: hit.entry.End}, domain.Cell{
			State: domain.CellConfirmed,
			Team:  hit.entry.Name,
		})
	}

	return view
}

// resolveFeed раскладывает записи фида по ПК пула; неизвестные машины пропускаются
func (r *Reconciler) resolveFeed(entries []domain.FeedEntry) []*feedHit {
	var hits []*feedHit
	for _, e := range entries {
		if !e.Start.Before(e.End) {
			continue
		}
		for _, machine := range e.Machines {
			id, ok := r.pool.LookupByName(machine)
			if !ok {
				continue
			}
			hits = append(hits, &feedHit{resource: id, entry: e})
		}
	}
	return hits
}

func (r *Reconciler) match(hits []*feedHit, id domain.ResourceID, span domain.TimeRange) bool {
	found := false
	for _, hit := range hits {
		if hit.resource != id {
			continue
		}
		if within(hit.entry.Start, span.Start, r.tolerance) && within(hit.entry.End, span.End, r.tolerance) {
			hit.matched = true
			found = true
		}
	}
	return found
}

func within(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// paint накладывает состояние на ячейки слотов, пересекающих span
func paint(cells []domain.Cell, slot time.Duration, span domain.TimeRange, c domain.Cell) {
	for j := range cells {
		slotRange := domain.TimeRange{Start: cells[j].SlotStart, End: cells[j].SlotStart.Add(slot)}
		if !slotRange.Overlaps(span) {
			continue
		}
		if priority[c.State] <= priority[cells[j].State] {
			continue
		}
		cells[j].State = c.State
		cells[j].ReservationID = c.ReservationID
		cells[j].Team = c.Team
	}
}

// sortedLedger копия броней, пересекающих окно, по началу, затем по id
func sortedLedger(ledger []domain.Reservation, window domain.TimeRange) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(ledger))
	for _, res := range ledger {
		if res.Range.Overlaps(window) {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Range.Start.Equal(out[j].Range.Start) {
			return out[i].Range.Start.Before(out[j].Range.Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
