package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusOnWay      BookingStatus = "on_way"
	StatusArrived    BookingStatus = "arrived"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusDeclined   BookingStatus = "declined"
)

// PaymentMethod how the customer intends to pay.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
)

// PaymentStatus recorded payment state. Capture itself happens outside this service.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking is a customer's reservation of a staff member's time.
// Bookings are never deleted; they end in a terminal status.
type Booking struct {
	ID              uuid.UUID
	ServiceID       uuid.UUID
	StaffID         uuid.UUID // lead staff member for team services
	CustomerID      uuid.UUID
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Addons          []string
	TotalPrice      decimal.Decimal
	StaffRequired   int

	CustomerName  string
	CustomerEmail *string
	CustomerPhone string
	Location      string
	Notes         *string

	Status        BookingStatus
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking no longer reserves staff time.
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// Interval returns the booking's [start, end) span in minutes from midnight.
func (b *Booking) Interval() (Interval, error) {
	return NewInterval(b.StartTime, b.DurationMinutes, IntervalBooking)
}

// BookingsFilter filter for booking queries.
type BookingsFilter struct {
	StaffIDs        []uuid.UUID    // optional, empty = any staff
	CustomerID      *uuid.UUID     // optional
	ParticipantID   *uuid.UUID     // optional, matches either customer or staff
	StartDate       *time.Time     // optional, inclusive
	EndDate         *time.Time     // optional, inclusive
	Status          *BookingStatus // optional, exact status
	IncludeTerminal bool           // include completed/cancelled/declined
}

// IsValid reports whether the status is one of the known statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOnWay, StatusArrived, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeclined
}

func (s BookingStatus) String() string {
	return string(s)
}

// IsValid reports whether the payment method is supported.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentTransfer || m == PaymentCard
}
