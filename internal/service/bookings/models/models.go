package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("invalid date period")
)

// Actor участник запроса (из заголовков авторизации)
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Actor           Actor
	StaffID         *uuid.UUID // только для admin
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeTerminal bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный запрос терминального статуса включает терминальные записи
		if status.IsTerminal() {
			filter.IncludeTerminal = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	ServiceID       uuid.UUID       `json:"serviceId"`
	StaffID         uuid.UUID       `json:"staffId"`
	CustomerID      uuid.UUID       `json:"customerId"`
	BookingDate     string          `json:"bookingDate"` // "2025-10-15"
	StartTime       string          `json:"startTime"`   // "14:00"
	EndTime         string          `json:"endTime,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Addons          []string        `json:"addons"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	StaffRequired   int             `json:"staffRequired"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone string  `json:"customerPhone"`
	Location      string  `json:"location"`
	Notes         *string `json:"notes,omitempty"`

	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	addons := b.Addons
	if addons == nil {
		addons = []string{}
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		CustomerID:      b.CustomerID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Addons:          addons,
		TotalPrice:      b.TotalPrice,
		StaffRequired:   b.StaffRequired,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		Location:        b.Location,
		Notes:           b.Notes,
		Status:          string(b.Status),
		PaymentMethod:   string(b.PaymentMethod),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конец интервала считаем, только если он в пределах суток
	if end, err := b.StartTime.AddMinutes(b.DurationMinutes); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}
