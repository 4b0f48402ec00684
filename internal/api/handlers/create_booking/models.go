package create_booking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	bookingModels "github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID       uuid.UUID        `json:"serviceId"`
	StaffID         uuid.UUID        `json:"staffId"`
	BookingDate     string           `json:"bookingDate"` // "2025-10-15"
	StartTime       string           `json:"startTime"`   // "14:00"
	DurationMinutes int              `json:"durationMinutes"`
	Addons          []string         `json:"addons,omitempty"`
	TotalPrice      *decimal.Decimal `json:"totalPrice,omitempty"` // только для сверки
	CustomerName    string           `json:"customerName"`
	CustomerEmail   *string          `json:"customerEmail,omitempty"`
	CustomerPhone   string           `json:"customerPhone"`
	Location        string           `json:"location"`
	Notes           *string          `json:"notes,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	*bookingModels.BookingResponse
	PriceCorrected bool `json:"priceCorrected"`
}

// parseError ошибка разбора даты или времени с сообщением для клиента
type parseError struct {
	msg string
	err error
}

func (e *parseError) Error() string { return e.err.Error() }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID uuid.UUID) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, &parseError{msg: msgInvalidDate, err: err}
	}

	// Парсим время
	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, &parseError{msg: msgInvalidTime, err: err}
	}

	return &createBooking.Request{
		CustomerID:      customerID,
		ServiceID:       r.ServiceID,
		StaffID:         r.StaffID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Addons:          r.Addons,
		ClientTotal:     r.TotalPrice,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Location:        r.Location,
		Notes:           r.Notes,
		PaymentMethod:   r.PaymentMethod,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: bookingModels.FromDomainBooking(resp.Booking),
		PriceCorrected:  resp.PriceCorrected,
	}
}
