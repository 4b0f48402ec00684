package booking

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
)

// Коды ошибок PostgreSQL, означающие что слот занят конкурентной записью
const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

var bookingColumns = []string{
	"id",
	"service_id",
	"staff_id",
	"customer_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"addons",
	"total_price",
	"staff_required",
	"customer_name",
	"customer_email",
	"customer_phone",
	"location",
	"notes",
	"status",
	"payment_method",
	"payment_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockStaffDay берет advisory lock на пару (мастер, дата) до конца транзакции.
// Все записи, меняющие календарь мастера на эту дату, сериализуются через этот lock.
// Вне транзакции lock бессмысленен, поэтому возвращается ошибка.
func (r *Repository) LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: LockStaffDay - called outside of transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	key := fmt.Sprintf("staff-day:%s:%s", staffID, date.Format(domain.DateFormat))
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return nil, fmt.Errorf("%w: LockStaffDay - acquire lock: %v", ErrExecQuery, err)
	}

	// Lock снимается вместе с транзакцией
	return func() {}, nil
}

// Create создает новое бронирование.
// Exclusion constraint на (staff_id, slot_range) - вторая линия защиты от двойной записи:
// нарушение превращается в ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"service_id",
			"staff_id",
			"customer_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"addons",
			"total_price",
			"staff_required",
			"customer_name",
			"customer_email",
			"customer_phone",
			"location",
			"notes",
			"status",
			"payment_method",
			"payment_status",
		).
		Values(
			booking.ID,
			booking.ServiceID,
			booking.StaffID,
			booking.CustomerID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			pq.Array(booking.Addons),
			booking.TotalPrice,
			booking.StaffRequired,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Location,
			booking.Notes,
			booking.Status,
			booking.PaymentMethod,
			booking.PaymentStatus,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if isSlotConflict(err) {
		return nil, fmt.Errorf("%w: Create - %v", ErrSlotNotAvailable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы переходы статуса не гонялись.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": psqlbuilder.UUID(id)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Мастерам (StaffIDs)
// - Клиенту (CustomerID) или участнику (ParticipantID - клиент или мастер)
// - Периоду (StartDate, EndDate)
// - Статусу (Status), по умолчанию только активные
//
// Пример - календарь мастера на дату:
//
//	filter := domain.BookingsFilter{StaffIDs: []uuid.UUID{staffID}, StartDate: &date, EndDate: &date}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if len(filter.StaffIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": psqlbuilder.UUIDs(filter.StaffIDs)})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": psqlbuilder.UUID(*filter.CustomerID)})
	}
	if filter.ParticipantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"customer_id": psqlbuilder.UUID(*filter.ParticipantID)},
			squirrel.Eq{"staff_id": psqlbuilder.UUID(*filter.ParticipantID)},
		})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		terminal := domain.TerminalStatuses()
		terminalStrings := make([]string, len(terminal))
		for i, s := range terminal {
			terminalStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - %q", ErrInvalidStatus, status)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": psqlbuilder.UUID(id)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isSlotConflict(err) {
		return fmt.Errorf("%w: UpdateStatus - %v", ErrSlotNotAvailable, err)
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var addons pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.StaffID,
		&booking.CustomerID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&addons,
		&booking.TotalPrice,
		&booking.StaffRequired,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Location,
		&booking.Notes,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Addons = []string(addons)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// isSlotConflict распознает нарушение exclusion constraint и конфликт сериализации
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgExclusionViolation || pqErr.Code == pgSerializationFailure
}
