package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	"github.com/glowdesk/GD-AvailabilityService/pkg/dbmetrics"
	"github.com/glowdesk/GD-AvailabilityService/pkg/psqlbuilder"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

// Repository репозиторий расписаний бизнесов и мастеров (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessSchedule получает расписание работы бизнеса: недельную сетку
// интервалов и настроенный шаг слотов
func (r *Repository) GetBusinessSchedule(ctx context.Context, businessID int64) (*domain.BusinessSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_step_minutes").
		From("businesses").
		Where(squirrel.Eq{"id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessSchedule - build business query: %v", ErrBuildQuery, err)
	}

	schedule := &domain.BusinessSchedule{BusinessID: businessID}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.SlotStepMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("%w: GetBusinessSchedule - execute business query: %v", ErrExecQuery, err)
	}

	week, err := r.loadWeek(ctx, executor, "business_hours", "business_id", businessID)
	if err != nil {
		return nil, fmt.Errorf("GetBusinessSchedule - load hours: %w", err)
	}
	schedule.Week = *week

	return schedule, nil
}

// GetProfessionalSchedule получает индивидуальное расписание мастера.
// Возвращает ErrScheduleNotFound, если у мастера нет индивидуальных
// интервалов (мастер наследует расписание бизнеса), и
// ErrProfessionalNotFound, если мастер не существует.
func (r *Repository) GetProfessionalSchedule(ctx context.Context, professionalID int64) (*domain.ProfessionalSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("business_id").
		From("professionals").
		Where(squirrel.Eq{"id": professionalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalSchedule - build professional query: %v", ErrBuildQuery, err)
	}

	schedule := &domain.ProfessionalSchedule{ProfessionalID: professionalID}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.BusinessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("%w: GetProfessionalSchedule - execute professional query: %v", ErrExecQuery, err)
	}

	week, err := r.loadWeek(ctx, executor, "professional_hours", "professional_id", professionalID)
	if err != nil {
		return nil, fmt.Errorf("GetProfessionalSchedule - load hours: %w", err)
	}

	if isEmptyWeek(week) {
		return nil, ErrScheduleNotFound
	}
	schedule.Week = *week

	return schedule, nil
}

// loadWeek читает интервалы недельной сетки из таблицы часов.
// Сортировка по (weekday, open_time) обеспечивает инвариант упорядоченности
// интервалов внутри дня.
func (r *Repository) loadWeek(ctx context.Context, executor DBExecutor, table, ownerColumn string, ownerID int64) (*domain.WeekSchedule, error) {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From(table).
		Where(squirrel.Eq{ownerColumn: ownerID}).
		OrderBy("weekday", "open_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadWeek - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := &domain.WeekSchedule{}
	intervals := make(map[time.Weekday][]domain.TimeInterval)

	for rows.Next() {
		var weekday int
		var open, close types.TimeString

		if err := rows.Scan(&weekday, &open, &close); err != nil {
			return nil, fmt.Errorf("%w: loadWeek - scan row: %v", ErrScanRow, err)
		}

		day := time.Weekday(weekday)
		intervals[day] = append(intervals[day], domain.TimeInterval{Open: open, Close: close})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadWeek - rows error: %v", ErrScanRow, err)
	}

	for day, list := range intervals {
		week.SetIntervals(day, list)
	}

	return week, nil
}

func isEmptyWeek(w *domain.WeekSchedule) bool {
	return len(w.Monday) == 0 && len(w.Tuesday) == 0 && len(w.Wednesday) == 0 &&
		len(w.Thursday) == 0 && len(w.Friday) == 0 && len(w.Saturday) == 0 && len(w.Sunday) == 0
}
