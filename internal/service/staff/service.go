package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
)

// Service сервис управления мастерами
type Service struct {
	staffRepo StaffRepository
	cache     CacheInvalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(staffRepo StaffRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		cache:     cache,
		logger:    logger,
	}
}

// List возвращает мастеров. Админ видит всех, остальные только верифицированных.
func (s *Service) List(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error) {
	filter := domain.StaffFilter{
		Skill:        req.Skill,
		VerifiedOnly: req.Actor.Role != domain.RoleAdmin,
	}

	members, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d staff members for %s", len(members), req.Actor.Role)
	return models.FromDomainStaffList(members), nil
}

// Update меняет флаги мастера
func (s *Service) Update(ctx context.Context, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: staff=%s by %s=%s", req.StaffID, req.Actor.Role, req.Actor.ID)

	// 1. Валидация и права
	if req.Available == nil && req.Verified == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Available != nil && !(req.Actor.Role == domain.RoleStaff && req.Actor.ID == req.StaffID) && req.Actor.Role != domain.RoleAdmin {
		s.logger.Warn("Update: %s=%s cannot toggle availability of staff=%s", req.Actor.Role, req.Actor.ID, req.StaffID)
		return nil, ErrAccessDenied
	}
	if req.Verified != nil && req.Actor.Role != domain.RoleAdmin {
		s.logger.Warn("Update: %s=%s cannot verify staff=%s", req.Actor.Role, req.Actor.ID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 2. Применяем изменения
	if req.Available != nil {
		if err := s.staffRepo.SetAvailable(ctx, req.StaffID, *req.Available); err != nil {
			return nil, s.mapRepoError("SetAvailable", err)
		}
	}
	if req.Verified != nil {
		if err := s.staffRepo.SetVerified(ctx, req.StaffID, *req.Verified); err != nil {
			return nil, s.mapRepoError("SetVerified", err)
		}
	}

	// 3. Флаги влияют на выдачу по всем датам
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Update: failed to invalidate availability cache: %v", err)
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}

	s.logger.Info("Update: staff=%s available=%t verified=%t", member.ID, member.Available, member.Verified)
	return models.FromDomainStaff(member), nil
}

func (s *Service) mapRepoError(method string, err error) error {
	if errors.Is(err, staffRepo.ErrStaffNotFound) {
		return ErrStaffNotFound
	}
	s.logger.Error("Update: %s failed: %v", method, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, method, err)
}
