package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено.
	// Для мастера означает отсутствие индивидуального расписания:
	// в этом случае мастер наследует расписание бизнеса.
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrProfessionalNotFound возвращается, когда мастер не существует
	ErrProfessionalNotFound = errors.New("schedule.repository: professional not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
