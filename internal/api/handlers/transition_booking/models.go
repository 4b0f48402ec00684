package transition_booking

import (
	bookingModels "github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Action string `json:"action"` // accept | decline | depart | arrive | start | complete | cancel
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	*bookingModels.BookingResponse
	Noop bool `json:"noop"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *transitionBooking.Response) *TransitionResponse {
	return &TransitionResponse{
		BookingResponse: bookingModels.FromDomainBooking(resp.Booking),
		Noop:            resp.Noop,
	}
}
