package slotengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент движка расчёта слотов (primary path резолвера).
// Таймаут HTTP-клиента ограничивает весь primary path: без него fallback
// терял бы смысл.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента движка
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ComputeSlots запрашивает у движка расчёт доступных слотов.
// Ответ нормализуется к тому же виду, что выдаёт локальный расчёт:
// сортировка по возрастанию начала, дедупликация, заполненный EndTime.
func (c *Client) ComputeSlots(ctx context.Context, query *domain.SlotQuery) ([]domain.Slot, error) {
	params := url.Values{}
	params.Set("serviceId", strconv.FormatInt(query.ServiceID, 10))
	params.Set("date", query.Date.Format(domain.DateFormat))
	if query.ProfessionalID != nil {
		params.Set("professionalId", strconv.FormatInt(*query.ProfessionalID, 10))
	}

	requestURL := fmt.Sprintf("%s/internal/v1/businesses/%d/computed-slots?%s",
		c.baseURL, query.BusinessID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты - повод для fallback
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrEngineUnavailable, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload computeSlotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return c.normalize(query, payload.Slots)
}

// normalize приводит слоты движка к каноническому виду локального расчёта.
// Эквивалентность primary и fallback путей - требование корректности, поэтому
// недоверенный ответ движка либо нормализуется, либо отклоняется.
func (c *Client) normalize(query *domain.SlotQuery, engineSlots []engineSlot) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(engineSlots))

	for _, es := range engineSlots {
		if es.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: slot %s has non-positive duration %d",
				ErrInvalidResponse, es.StartTime, es.DurationMinutes)
		}

		end, err := es.StartTime.AddMinutes(es.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %s runs past end of day", ErrInvalidResponse, es.StartTime)
		}

		slots = append(slots, domain.Slot{
			StartTime:       es.StartTime,
			EndTime:         end,
			DurationMinutes: es.DurationMinutes,
			ProfessionalID:  query.ProfessionalID,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	// Дедупликация по времени начала
	deduped := slots[:0]
	for i, slot := range slots {
		if i > 0 && slot.StartTime.Equal(slots[i-1].StartTime) {
			continue
		}
		deduped = append(deduped, slot)
	}

	return deduped, nil
}
