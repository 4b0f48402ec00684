package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/psqlbuilder"
)

// Repository справочник услуг, цен и дополнений. Только чтение.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу вместе с сеткой цен по длительностям
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "category", "required_skill", "staff_required").
		From("services").
		Where(squirrel.Eq{"id": psqlbuilder.UUID(id)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Title,
		&service.Category,
		&service.RequiredSkill,
		&service.StaffRequired,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	prices, err := r.getPrices(ctx, executor, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	service.Prices = prices[id]
	if service.Prices == nil {
		service.Prices = map[int]decimal.Decimal{}
	}

	return &service, nil
}

// ListServices возвращает все услуги справочника
func (r *Repository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "category", "required_skill", "staff_required").
		From("services").
		OrderBy("category ASC", "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(&service.ID, &service.Title, &service.Category, &service.RequiredSkill, &service.StaffRequired); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &service)
		ids = append(ids, service.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	prices, err := r.getPrices(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, service := range services {
		service.Prices = prices[service.ID]
		if service.Prices == nil {
			service.Prices = map[int]decimal.Decimal{}
		}
	}

	return services, nil
}

// GetAddons получает дополнения по идентификаторам. Неизвестные ID просто отсутствуют в ответе.
func (r *Repository) GetAddons(ctx context.Context, ids []string) (map[string]*domain.Addon, error) {
	result := make(map[string]*domain.Addon, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "price", "valid_for").
		From("addons").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddons - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var addon domain.Addon
		var validFor pq.StringArray
		if err := rows.Scan(&addon.ID, &addon.Title, &addon.Price, &validFor); err != nil {
			return nil, fmt.Errorf("%w: GetAddons - scan row: %v", ErrScanRow, err)
		}
		for _, c := range validFor {
			addon.ValidFor = append(addon.ValidFor, domain.ServiceCategory(c))
		}
		result[addon.ID] = &addon
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddons - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) getPrices(ctx context.Context, executor dbmetrics.DBExecutor, serviceIDs []uuid.UUID) (map[uuid.UUID]map[int]decimal.Decimal, error) {
	result := make(map[uuid.UUID]map[int]decimal.Decimal, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return result, nil
	}

	query, args, err := psqlbuilder.Select("service_id", "duration_minutes", "price").
		From("service_prices").
		Where(squirrel.Eq{"service_id": psqlbuilder.UUIDs(serviceIDs)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getPrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPrices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var serviceID uuid.UUID
		var duration int
		var price decimal.Decimal
		if err := rows.Scan(&serviceID, &duration, &price); err != nil {
			return nil, fmt.Errorf("%w: getPrices - scan row: %v", ErrScanRow, err)
		}
		if result[serviceID] == nil {
			result[serviceID] = make(map[int]decimal.Decimal)
		}
		result[serviceID][duration] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPrices - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
