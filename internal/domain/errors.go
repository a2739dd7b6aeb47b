package domain

import (
	"errors"
	"fmt"
)

// Booking rejection taxonomy shared by the policy, allocation and use case layers
var (
	// ErrParse malformed date or time input
	ErrParse = errors.New("malformed date or time")

	// ErrPolicyViolation parent of every business-rule rejection
	ErrPolicyViolation = errors.New("policy violation")

	ErrTooShortNotice   = fmt.Errorf("%w: not enough advance notice", ErrPolicyViolation)
	ErrOutsideOpenHours = fmt.Errorf("%w: outside open hours", ErrPolicyViolation)
	ErrQuotaExceeded    = fmt.Errorf("%w: weekly prime-time quota exceeded", ErrPolicyViolation)
	ErrRangeInPast      = fmt.Errorf("%w: range is in the past", ErrPolicyViolation)
	ErrTooManyResources = fmt.Errorf("%w: more PCs than the lab can host", ErrPolicyViolation)

	// ErrCapacityConflict the requested count does not fit next to existing reservations
	ErrCapacityConflict = errors.New("capacity conflict")

	// ErrAllocationRace capacity looked sufficient but no concrete set of PCs could be assigned
	ErrAllocationRace = errors.New("allocation failed, try again")

	// ErrUpstreamUnavailable the external system of record could not be read
	ErrUpstreamUnavailable = errors.New("upstream feed unavailable")
)

// QuotaError details of ErrQuotaExceeded
type QuotaError struct {
	Team  string
	Used  int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%v: team %q used %d of %d", ErrQuotaExceeded, e.Team, e.Used, e.Limit)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// ConflictError details of ErrCapacityConflict: the reservation that blocks the request
type ConflictError struct {
	ReservationID int64
	Team          string
	ManagerID     int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: held by team %q (manager %d)", ErrCapacityConflict, e.Team, e.ManagerID)
}

func (e *ConflictError) Unwrap() error {
	return ErrCapacityConflict
}
