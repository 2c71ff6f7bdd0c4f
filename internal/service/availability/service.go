package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// Service сервис для управления закешированной доступностью.
// Вызывается при изменении записей клиентов: создание, перенос, отмена.
type Service struct {
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(cache Cache, logger Logger) *Service {
	return &Service{
		cache:  cache,
		logger: logger,
	}
}

// Invalidate сбрасывает все закешированные результаты бизнеса на дату.
// Сбрасывается вся группа (бизнес, дата): запись мастера влияет и на
// агрегированные результаты без указанного мастера.
func (s *Service) Invalidate(ctx context.Context, businessID int64, date string) error {
	s.logger.Info("Invalidate: business=%d, date=%s", businessID, date)

	if businessID <= 0 {
		s.logger.Warn("Invalidate: invalid business id=%d", businessID)
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		s.logger.Warn("Invalidate: invalid date=%s: %v", date, err)
		return fmt.Errorf("%w: date must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	if err := s.cache.Invalidate(ctx, businessID, date); err != nil {
		s.logger.Error("Invalidate: cache error for business=%d, date=%s: %v", businessID, date, err)
		return fmt.Errorf("%w: Invalidate - cache error: %v", ErrInternal, err)
	}

	s.logger.Info("Invalidate: dropped cached availability for business=%d, date=%s", businessID, date)
	return nil
}
