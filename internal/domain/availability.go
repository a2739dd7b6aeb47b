package domain

import "time"

// CellState state of a (resource, slot) cell of the merged view
type CellState string

const (
	CellFree      CellState = "free"
	CellPending   CellState = "pending"
	CellConfirmed CellState = "confirmed"
	CellUnknown   CellState = "unknown"
)

// FeedEntry reservation reported by the external system of record
type FeedEntry struct {
	Name     string
	Machines []string
	Start    time.Time
	End      time.Time
}

// FeedSnapshot result of a feed fetch; Available is false when the feed could not be read
type FeedSnapshot struct {
	Available bool
	Entries   []FeedEntry
}

// Grid display grid of a day: the open window cut into slots
type Grid struct {
	Window TimeRange
	Slot   time.Duration
}

// Slots start instants of every slot of the grid
func (g Grid) Slots() []time.Time {
	if g.Slot <= 0 {
		return nil
	}
	var out []time.Time
	for t := g.Window.Start; t.Before(g.Window.End); t = t.Add(g.Slot) {
		out = append(out, t)
	}
	return out
}

// Cell state of a resource over one slot
type Cell struct {
	Resource      ResourceID
	SlotStart     time.Time
	State         CellState
	ReservationID int64 // ledger reservation occupying the cell, 0 otherwise
	Team          string
}

// PendingItem ledger reservation resources not yet reflected in the system of record
type PendingItem struct {
	ReservationID int64
	Team          string
	Resources     []ResourceID
	Range         TimeRange
	ManagerID     int64
	CreatedAt     time.Time
}

// MergedView canonical availability of a day
type MergedView struct {
	Grid          Grid
	Resources     []ResourceID
	Cells         [][]Cell // Cells[i][j]: Resources[i] over slot j
	Pending       []PendingItem
	FeedAvailable bool
}

// Cell returns the cell of the resource over the slot starting at slotStart
func (v MergedView) Cell(id ResourceID, slotStart time.Time) (Cell, bool) {
	for i, res := range v.Resources {
		if res != id {
			continue
		}
		for _, c := range v.Cells[i] {
			if c.SlotStart.Equal(slotStart) {
				return c, true
			}
		}
	}
	return Cell{}, false
}

// PCState live state of a PC from the uptime feed
type PCState string

const (
	PCAvailable PCState = "available"
	PCInUse     PCState = "in_use"
	PCOffline   PCState = "offline"
	PCUnknown   PCState = "unknown"
)

// PCStatus live status of a machine
type PCStatus struct {
	Name     string
	Resource ResourceID // 0 when the machine is not part of the pool
	State    PCState
	Uptime   time.Duration
}
