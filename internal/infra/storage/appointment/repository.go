package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/dbmetrics"
	"github.com/glowdesk/GD-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий записей клиентов (только чтение).
// Записи создаёт и отменяет BookingService; здесь они нужны для
// проверки конфликтов при fallback-расчёте слотов.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListForDate получает активные записи бизнеса на дату.
// Если указан professionalID, возвращает записи этого мастера плюс записи
// уровня бизнеса (professional_id IS NULL) - они блокируют всех мастеров.
func (r *Repository) ListForDate(ctx context.Context, businessID int64, professionalID *int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"business_id",
		"service_id",
		"professional_id",
		"appointment_date",
		"start_time",
		"duration_minutes",
		"status",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("start_time")

	if professionalID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"professional_id": *professionalID},
			squirrel.Eq{"professional_id": nil},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err = rows.Scan(
			&appt.ID,
			&appt.BusinessID,
			&appt.ServiceID,
			&appt.ProfessionalID,
			&appt.Date,
			&appt.StartTime,
			&appt.DurationMinutes,
			&appt.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForDate - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time
		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDate - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// ListProfessionals получает ID мастеров бизнеса, выполняющих услугу.
// Используется политикой доступности для запросов без указанного мастера.
func (r *Repository) ListProfessionals(ctx context.Context, businessID, serviceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("p.id").
		From("professionals p").
		Join("professional_services ps ON ps.professional_id = p.id").
		Where(squirrel.Eq{"p.business_id": businessID}).
		Where(squirrel.Eq{"ps.service_id": serviceID}).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan row: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}
