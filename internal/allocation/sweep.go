package allocation

import (
	"sort"
	"time"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

// segment элементарный подынтервал кандидата и активные на нём брони
type segment struct {
	span   domain.TimeRange
	active []domain.Reservation
	main   int
	back   int
}

// sweep режет кандидата по границам пересекающихся броней
// Активные брони каждого сегмента отсортированы по началу, затем по id
func sweep(pool *domain.ResourcePool, r domain.TimeRange, existing []domain.Reservation) []segment {
	overlapping := overlappingSorted(r, existing)

	bounds := []time.Time{r.Start, r.End}
	for _, res := range overlapping {
		if res.Range.Start.After(r.Start) && res.Range.Start.Before(r.End) {
			bounds = append(bounds, res.Range.Start)
		}
		if res.Range.End.After(r.Start) && res.Range.End.Before(r.End) {
			bounds = append(bounds, res.Range.End)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].Before(bounds[j]) })

	segments := make([]segment, 0, len(bounds))
	for i := 0; i+1 < len(bounds); i++ {
		if !bounds[i].Before(bounds[i+1]) {
			continue
		}
		seg := segment{span: domain.TimeRange{Start: bounds[i], End: bounds[i+1]}}
		for _, res := range overlapping {
			if !res.Range.Overlaps(seg.span) {
				continue
			}
			seg.active = append(seg.active, res)
			m, b := pool.CountByZone(res.Resources)
			seg.main += m
			seg.back += b
		}
		segments = append(segments, seg)
	}
	return segments
}

// overlappingSorted брони, пересекающие r, по началу, затем по id
func overlappingSorted(r domain.TimeRange, existing []domain.Reservation) []domain.Reservation {
	var out []domain.Reservation
	for _, res := range existing {
		if res.Range.Overlaps(r) {
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

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
