package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a lifecycle rule forbids the requested action.
	ErrInvalidTransition = errors.New("domain: invalid booking transition")

	// ErrActionNotPermitted is returned when the actor's role may not perform the action.
	ErrActionNotPermitted = errors.New("domain: action not permitted for actor")

	// ErrUnknownAction is returned for an action name outside the lifecycle table.
	ErrUnknownAction = errors.New("domain: unknown booking action")
)

// Role of the party triggering a transition.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
	RoleSystem   Role = "system"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin || r == RoleSystem
}

// BookingAction names a lifecycle transition.
type BookingAction string

const (
	ActionAccept   BookingAction = "accept"
	ActionDecline  BookingAction = "decline"
	ActionDepart   BookingAction = "depart"
	ActionArrive   BookingAction = "arrive"
	ActionStart    BookingAction = "start"
	ActionComplete BookingAction = "complete"
	ActionCancel   BookingAction = "cancel"
)

// transitionRule describes one row of the lifecycle table.
type transitionRule struct {
	from   []BookingStatus
	to     BookingStatus
	actors []Role
}

// nonTerminalStatuses every status that still reserves staff time.
var nonTerminalStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOnWay,
	StatusArrived,
	StatusInProgress,
}

var transitions = map[BookingAction]transitionRule{
	ActionAccept:   {from: []BookingStatus{StatusPending}, to: StatusConfirmed, actors: []Role{RoleStaff}},
	ActionDecline:  {from: []BookingStatus{StatusPending}, to: StatusDeclined, actors: []Role{RoleStaff}},
	ActionDepart:   {from: []BookingStatus{StatusConfirmed}, to: StatusOnWay, actors: []Role{RoleStaff}},
	ActionArrive:   {from: []BookingStatus{StatusOnWay}, to: StatusArrived, actors: []Role{RoleStaff}},
	ActionStart:    {from: []BookingStatus{StatusArrived}, to: StatusInProgress, actors: []Role{RoleStaff}},
	ActionComplete: {from: []BookingStatus{StatusInProgress}, to: StatusCompleted, actors: []Role{RoleStaff}},
	ActionCancel:   {from: nonTerminalStatuses, to: StatusCancelled, actors: []Role{RoleCustomer, RoleAdmin, RoleSystem}},
}

// NonTerminalStatuses returns a copy of the statuses that reserve staff time.
func NonTerminalStatuses() []BookingStatus {
	out := make([]BookingStatus, len(nonTerminalStatuses))
	copy(out, nonTerminalStatuses)
	return out
}

// TerminalStatuses returns the statuses that free staff time.
func TerminalStatuses() []BookingStatus {
	return []BookingStatus{StatusCompleted, StatusCancelled, StatusDeclined}
}

// ParseBookingAction converts a string into a known action.
func ParseBookingAction(s string) (BookingAction, error) {
	a := BookingAction(s)
	if _, ok := transitions[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Target returns the status the action leads to.
func (a BookingAction) Target() (BookingStatus, error) {
	rule, ok := transitions[a]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}
	return rule.to, nil
}

// AllowedFor reports whether the role may perform the action at all.
func (a BookingAction) AllowedFor(role Role) bool {
	rule, ok := transitions[a]
	if !ok {
		return false
	}
	for _, r := range rule.actors {
		if r == role {
			return true
		}
	}
	return false
}

// NextStatus validates the action against the current status and role and
// returns the resulting status. Cancelling an already cancelled booking
// returns noop=true with no error.
func NextStatus(current BookingStatus, action BookingAction, role Role) (next BookingStatus, noop bool, err error) {
	rule, ok := transitions[action]
	if !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}

	// A terminal booking rejects everything except a repeated cancel.
	if current.IsTerminal() {
		if action == ActionCancel && current == StatusCancelled && action.AllowedFor(role) {
			return StatusCancelled, true, nil
		}
		return "", false, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, current)
	}

	if !action.AllowedFor(role) {
		return "", false, fmt.Errorf("%w: %s cannot %s", ErrActionNotPermitted, role, action)
	}

	for _, from := range rule.from {
		if from == current {
			return rule.to, false, nil
		}
	}

	return "", false, fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, action, current)
}
