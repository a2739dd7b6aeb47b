package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidPool is returned when the pool definition is inconsistent
var ErrInvalidPool = errors.New("domain: invalid resource pool")

// ignoredFeedNames machines the feed reports that are not part of the bookable pool
var ignoredFeedNames = []string{"sait test"}

// ResourcePool static definition of the lab: resources, zones, ceilings and weekday suppressions.
// Immutable after NewResourcePool.
type ResourcePool struct {
	resources  []Resource
	byID       map[ResourceID]Resource
	byName     map[string]ResourceID
	backOrder  []ResourceID
	ceilings   map[Zone]int
	suppressed map[time.Weekday]map[Zone]bool
	mainBlocks []int
	maxRequest int
}

// PoolOptions input for NewResourcePool
type PoolOptions struct {
	Resources   []Resource
	MainCeiling int
	// BackOrder allocation order of the back room; resources missing from it follow in pool order
	BackOrder  []ResourceID
	Suppressed map[time.Weekday][]Zone
}

// NewResourcePool validates the definition and builds the pool
func NewResourcePool(opts PoolOptions) (*ResourcePool, error) {
	if len(opts.Resources) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrInvalidPool)
	}

	p := &ResourcePool{
		byID:       make(map[ResourceID]Resource, len(opts.Resources)),
		byName:     make(map[string]ResourceID, len(opts.Resources)),
		ceilings:   make(map[Zone]int, 2),
		suppressed: make(map[time.Weekday]map[Zone]bool),
	}

	mainCount, backCount := 0, 0
	blocks := make(map[int]bool)
	for _, r := range opts.Resources {
		if err := r.Zone.Validate(); err != nil {
			return nil, fmt.Errorf("%w: resource %d: %v", ErrInvalidPool, r.ID, err)
		}
		if _, dup := p.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate resource id %d", ErrInvalidPool, r.ID)
		}
		name := normalizeName(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: resource %d has no name", ErrInvalidPool, r.ID)
		}
		if _, dup := p.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate resource name %q", ErrInvalidPool, r.Name)
		}

		switch r.Zone {
		case ZoneMain:
			mainCount++
			if r.Block <= 0 {
				return nil, fmt.Errorf("%w: main-room resource %d needs a block", ErrInvalidPool, r.ID)
			}
			blocks[r.Block] = true
		case ZoneBack:
			backCount++
		}

		p.resources = append(p.resources, r)
		p.byID[r.ID] = r
		p.byName[name] = r.ID
	}

	if opts.MainCeiling <= 0 || opts.MainCeiling > mainCount {
		opts.MainCeiling = mainCount
	}
	p.ceilings[ZoneMain] = opts.MainCeiling
	p.ceilings[ZoneBack] = backCount
	p.maxRequest = p.ceilings[ZoneMain] + p.ceilings[ZoneBack]

	seen := make(map[ResourceID]bool)
	for _, id := range opts.BackOrder {
		r, ok := p.byID[id]
		if !ok || r.Zone != ZoneBack {
			return nil, fmt.Errorf("%w: back order names %d which is not a back-room resource", ErrInvalidPool, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		p.backOrder = append(p.backOrder, id)
	}
	for _, r := range p.resources {
		if r.Zone == ZoneBack && !seen[r.ID] {
			p.backOrder = append(p.backOrder, r.ID)
		}
	}

	for day, zones := range opts.Suppressed {
		for _, z := range zones {
			if err := z.Validate(); err != nil {
				return nil, fmt.Errorf("%w: suppression on %s: %v", ErrInvalidPool, day, err)
			}
			if p.suppressed[day] == nil {
				p.suppressed[day] = make(map[Zone]bool)
			}
			p.suppressed[day][z] = true
		}
	}

	for b := range blocks {
		p.mainBlocks = append(p.mainBlocks, b)
	}
	sort.Ints(p.mainBlocks)

	return p, nil
}

// Resources returns the pool in configured order
func (p *ResourcePool) Resources() []Resource {
	out := make([]Resource, len(p.resources))
	copy(out, p.resources)
	return out
}

// Get returns the resource by id
func (p *ResourcePool) Get(id ResourceID) (Resource, bool) {
	r, ok := p.byID[id]
	return r, ok
}

// ZoneOf returns the zone of the resource; ok is false for unknown ids
func (p *ResourcePool) ZoneOf(id ResourceID) (Zone, bool) {
	r, ok := p.byID[id]
	return r.Zone, ok
}

// CeilingOf maximum number of concurrently occupied units of the zone
func (p *ResourcePool) CeilingOf(z Zone) int {
	return p.ceilings[z]
}

// IsSuppressed reports whether the zone cannot be booked on the weekday
func (p *ResourcePool) IsSuppressed(z Zone, day time.Weekday) bool {
	return p.suppressed[day][z]
}

// MaxRequest largest count a single team request may ask for
func (p *ResourcePool) MaxRequest() int {
	return p.maxRequest
}

// BackOrder back-room allocation order
func (p *ResourcePool) BackOrder() []ResourceID {
	out := make([]ResourceID, len(p.backOrder))
	copy(out, p.backOrder)
	return out
}

// MainBlocks main-room resources grouped by block, blocks ascending, ids in pool order
func (p *ResourcePool) MainBlocks() [][]ResourceID {
	out := make([][]ResourceID, 0, len(p.mainBlocks))
	for _, b := range p.mainBlocks {
		var ids []ResourceID
		for _, r := range p.resources {
			if r.Zone == ZoneMain && r.Block == b {
				ids = append(ids, r.ID)
			}
		}
		out = append(out, ids)
	}
	return out
}

// IDs all resource ids in pool order
func (p *ResourcePool) IDs() []ResourceID {
	out := make([]ResourceID, 0, len(p.resources))
	for _, r := range p.resources {
		out = append(out, r.ID)
	}
	return out
}

// LookupByName resolves a feed machine name ("Desk 009", "desk 9", "Desk 000 - Streaming").
// Exact match wins, then the desk number.
func (p *ResourcePool) LookupByName(name string) (ResourceID, bool) {
	norm := normalizeName(name)
	if norm == "" {
		return 0, false
	}
	for _, ignored := range ignoredFeedNames {
		if strings.Contains(norm, ignored) {
			return 0, false
		}
	}

	if id, ok := p.byName[norm]; ok {
		return id, true
	}

	num, ok := deskNumber(norm)
	if !ok {
		return 0, false
	}
	for _, r := range p.resources {
		if n, ok := deskNumber(normalizeName(r.Name)); ok && n == num {
			return r.ID, true
		}
	}
	return 0, false
}

// CountByZone counts the resources of the set per zone; unknown ids are skipped
func (p *ResourcePool) CountByZone(ids []ResourceID) (main, back int) {
	for _, id := range ids {
		switch z, _ := p.ZoneOf(id); z {
		case ZoneMain:
			main++
		case ZoneBack:
			back++
		}
	}
	return main, back
}

// HasZone reports whether any resource of the set belongs to the zone
func (p *ResourcePool) HasZone(ids []ResourceID, z Zone) bool {
	for _, id := range ids {
		if zz, ok := p.ZoneOf(id); ok && zz == z {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// deskNumber first run of digits in the name
func deskNumber(name string) (int, bool) {
	start := strings.IndexFunc(name, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
