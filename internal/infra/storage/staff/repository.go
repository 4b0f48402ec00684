package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var staffColumns = []string{
	"id",
	"name",
	"skills",
	"rating",
	"review_count",
	"available",
	"verified",
	"location_base",
}

// Repository репозиторий мастеров и их ручных блокировок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает мастеров по фильтру, лучшие по рейтингу первыми
func (r *Repository) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(staffColumns...).
		From("staff").
		OrderBy("rating DESC", "review_count DESC")

	if filter.Skill != nil {
		selectBuilder = selectBuilder.Where("? = ANY(skills)", *filter.Skill)
	}
	if filter.VerifiedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"verified": true})
	}
	if filter.AvailableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": psqlbuilder.UUID(id)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	return member, nil
}

// GetBlocks возвращает ручные блокировки мастеров на дату, сгруппированные по мастеру
func (r *Repository) GetBlocks(ctx context.Context, staffIDs []uuid.UUID, date time.Time) (map[uuid.UUID][]domain.BlockedSlot, error) {
	result := make(map[uuid.UUID][]domain.BlockedSlot, len(staffIDs))
	if len(staffIDs) == 0 {
		return result, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "block_date", "start_time").
		From("staff_blocked_slots").
		Where(squirrel.Eq{"staff_id": psqlbuilder.UUIDs(staffIDs)}).
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID uuid.UUID
		var block domain.BlockedSlot
		if err := rows.Scan(&staffID, &block.Date, &block.StartTime); err != nil {
			return nil, fmt.Errorf("%w: GetBlocks - scan row: %v", ErrScanRow, err)
		}
		result[staffID] = append(result[staffID], block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// SetBlock добавляет или снимает блокировку слота.
// Возвращает true, если состояние изменилось.
func (r *Repository) SetBlock(ctx context.Context, staffID uuid.UUID, date time.Time, start types.TimeString, blocked bool) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		query string
		args  []interface{}
		err   error
	)
	if blocked {
		query, args, err = psqlbuilder.Insert("staff_blocked_slots").
			Columns("staff_id", "block_date", "start_time").
			Values(staffID, date, start).
			Suffix("ON CONFLICT (staff_id, block_date, start_time) DO NOTHING").
			ToSql()
	} else {
		query, args, err = psqlbuilder.Delete("staff_blocked_slots").
			Where(squirrel.Eq{"staff_id": psqlbuilder.UUID(staffID), "block_date": date, "start_time": start}).
			ToSql()
	}
	if err != nil {
		return false, fmt.Errorf("%w: SetBlock - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: SetBlock - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetBlock - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetAvailable переключает глобальную доступность мастера
func (r *Repository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	return r.setFlag(ctx, "SetAvailable", id, "available", available)
}

// SetVerified переключает признак верификации мастера
func (r *Repository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.setFlag(ctx, "SetVerified", id, "verified", verified)
}

func (r *Repository) setFlag(ctx context.Context, method string, id uuid.UUID, column string, value bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": psqlbuilder.UUID(id)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.StaffMember, error) {
	var member domain.StaffMember
	var skills pq.StringArray
	var locationBase sql.NullString

	err := row.Scan(
		&member.ID,
		&member.Name,
		&skills,
		&member.Rating,
		&member.ReviewCount,
		&member.Available,
		&member.Verified,
		&locationBase,
	)
	if err != nil {
		return nil, err
	}

	member.Skills = []string(skills)
	member.LocationBase = locationBase.String
	return &member, nil
}
