package domain

import "fmt"

// ResourceID identifier of a single PC in the lab
type ResourceID int

// Zone partition of the lab with its own capacity ceiling
type Zone string

const (
	ZoneMain Zone = "main"
	ZoneBack Zone = "back"
)

// Validate checks that the zone is known
func (z Zone) Validate() error {
	switch z {
	case ZoneMain, ZoneBack:
		return nil
	}
	return fmt.Errorf("unknown zone %q", string(z))
}

// Resource a PC of the pool
type Resource struct {
	ID        ResourceID
	Name      string // display name used by the external feed, e.g. "Desk 009"
	Zone      Zone
	Block     int  // main-room block number, 0 for the back room
	Streaming bool // the streaming station of the back room
}
