package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит свои бронирования, мастер назначенные ему, админ все.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for %s=%s", id, actor.Role, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	if !canView(booking, actor) {
		s.logger.Warn("GetByID: access denied for %s=%s to booking id=%s", actor.Role, actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования участника с фильтрацией.
// Без includeTerminal завершенные и отмененные бронирования не возвращаются.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for %s=%s", req.Actor.Role, req.Actor.ID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Ограничиваем выборку ролью
	switch req.Actor.Role {
	case domain.RoleCustomer:
		filter.CustomerID = &req.Actor.ID
	case domain.RoleStaff:
		filter.StaffIDs = []uuid.UUID{req.Actor.ID}
	case domain.RoleAdmin, domain.RoleSystem:
		if req.StaffID != nil {
			filter.StaffIDs = []uuid.UUID{*req.StaffID}
		}
	default:
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d bookings for %s=%s", len(bookings), req.Actor.Role, req.Actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

func canView(booking *domain.Booking, actor models.Actor) bool {
	switch actor.Role {
	case domain.RoleCustomer:
		return booking.CustomerID == actor.ID
	case domain.RoleStaff:
		return booking.StaffID == actor.ID
	case domain.RoleAdmin, domain.RoleSystem:
		return true
	}
	return false
}
