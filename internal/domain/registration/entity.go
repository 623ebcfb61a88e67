package registration

import (
	"fmt"
	"time"
)

// Type classifies what a registration records. Every type except Work and
// Transportation is an absence type.
type Type string

const (
	TypeWork           Type = "Work"
	TypeTransportation Type = "Transportation"
	TypeVacation       Type = "Vacation"
	TypeSickness       Type = "Sickness"
	TypeLeave          Type = "Leave"
)

// ParseType parses a registration type string. Unknown values fail
// explicitly, never default.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeWork, TypeTransportation, TypeVacation, TypeSickness, TypeLeave:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// IsAbsence reports whether the type is an absence type.
func (t Type) IsAbsence() bool {
	return t != TypeWork && t != TypeTransportation
}

// Status is the workflow state of a registration. The workflow is linear:
// Ongoing -> Open -> Awaiting -> Approved/Rejected -> Settled, with Rejected
// allowed back to Awaiting after the employee amends the record.
type Status string

const (
	StatusOngoing  Status = "Ongoing"
	StatusOpen     Status = "Open"
	StatusAwaiting Status = "Awaiting"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusSettled  Status = "Settled"
)

// ParseStatus parses a status string. Unknown values fail explicitly.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOngoing, StatusOpen, StatusAwaiting, StatusApproved, StatusRejected, StatusSettled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

var statusTransitions = map[Status][]Status{
	StatusOngoing:  {StatusOpen},
	StatusOpen:     {StatusAwaiting},
	StatusAwaiting: {StatusApproved, StatusRejected},
	StatusRejected: {StatusAwaiting},
	StatusApproved: {StatusSettled},
	StatusSettled:  {},
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Registration is a single time-tracking record: a work shift, a
// transportation trip, or an absence period.
type Registration struct {
	ID         string
	EmployeeID string
	CreatorID  string
	Type       Type

	// Amount is the registered duration in minutes. It is nil while a
	// Work or Transportation registration is still ongoing.
	Amount *int
	Start  time.Time
	End    *time.Time

	// ClientID is required for Transportation, optional for Work.
	ClientID *string

	CreationTime  time.Time
	Status        Status
	FirstComment  *string
	SecondComment *string

	// CorrectionOfID points at the registration this record amends. A
	// correction is itself never further correctable.
	CorrectionOfID *string
}

// IsOngoing reports whether the registration has not been ended yet.
func (r Registration) IsOngoing() bool {
	return r.End == nil
}

// IsCorrection reports whether the registration amends another one.
func (r Registration) IsCorrection() bool {
	return r.CorrectionOfID != nil
}

// Minutes returns the registered amount, treating nil as zero.
func (r Registration) Minutes() int {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}
