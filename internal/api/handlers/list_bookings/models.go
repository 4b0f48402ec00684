package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// date задает один день; startDate/endDate задают период.
func ToServiceRequest(actor models.Actor, query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Actor: actor}

	if date := query.Get("date"); date != "" {
		d, err := handlers.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.StartDate, req.EndDate = &d, &d
	}
	if start := query.Get("startDate"); start != "" {
		d, err := handlers.ParseDate(start)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		req.StartDate = &d
	}
	if end := query.Get("endDate"); end != "" {
		d, err := handlers.ParseDate(end)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		req.EndDate = &d
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if include := query.Get("includeTerminal"); include != "" {
		v, err := strconv.ParseBool(include)
		if err != nil {
			return nil, fmt.Errorf("includeTerminal: %w", err)
		}
		req.IncludeTerminal = v
	}

	if staff := query.Get("staffId"); staff != "" {
		id, err := uuid.Parse(staff)
		if err != nil {
			return nil, fmt.Errorf("staffId: %w", err)
		}
		req.StaffID = &id
	}

	return req, nil
}
