package domain

import "time"

// ReservationKind origin of a reservation
type ReservationKind string

const (
	// KindTeam ordinary team booking, mirrored to the system of record by operators
	KindTeam ReservationKind = "team"
	// KindExternal whole-pool booking made by an operator, already present in the system of record
	KindExternal ReservationKind = "external"
)

// Reservation a confirmed booking stored in the ledger
type Reservation struct {
	ID          int64
	Kind        ReservationKind
	Team        string
	Resources   []ResourceID
	Range       TimeRange
	ManagerID   int64
	IsPrimeTime bool
	CreatedAt   time.Time
}

// HasStarted reports whether the reservation can no longer be cancelled
func (r *Reservation) HasStarted(now time.Time) bool {
	return !now.Before(r.Range.Start)
}

// Holds reports whether the resource belongs to the reservation
func (r *Reservation) Holds(id ResourceID) bool {
	for _, res := range r.Resources {
		if res == id {
			return true
		}
	}
	return false
}

// Acknowledgement operator confirmation that a pending reservation was mirrored by hand
type Acknowledgement struct {
	ReservationID  int64
	OperatorID     int64
	AcknowledgedAt time.Time
}
