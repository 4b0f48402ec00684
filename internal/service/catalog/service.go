package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/service/catalog/models"
)

// Service сервис справочника услуг и правил бронирования
type Service struct {
	catalogRepo CatalogRepository
	policy      domain.BookingPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(catalogRepo CatalogRepository, policy domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		policy:      policy,
		logger:      logger,
	}
}

// ListServices возвращает услуги с вариантами длительности и ценами
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// Policy возвращает сетку слотов и окно бронирования
func (s *Service) Policy() *models.PolicyResponse {
	return models.FromDomainPolicy(s.policy)
}
