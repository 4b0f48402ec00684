package notifier

import (
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// BookingEvent полезная нагрузка события
type BookingEvent struct {
	BookingID       string    `json:"booking_id"`
	ServiceID       string    `json:"service_id"`
	StaffID         string    `json:"staff_id"`
	CustomerID      string    `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   *string   `json:"customer_email,omitempty"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPrice      string    `json:"total_price"`
	PreviousStatus  string    `json:"previous_status,omitempty"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func newBookingEvent(b *domain.Booking, from, to domain.BookingStatus) BookingEvent {
	return BookingEvent{
		BookingID:       b.ID.String(),
		ServiceID:       b.ServiceID.String(),
		StaffID:         b.StaffID.String(),
		CustomerID:      b.CustomerID.String(),
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		Date:            b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice.StringFixed(2),
		PreviousStatus:  string(from),
		Status:          string(to),
		OccurredAt:      time.Now().UTC(),
	}
}
