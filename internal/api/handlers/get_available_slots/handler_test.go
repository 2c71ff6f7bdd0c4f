package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
	resolveAvailability "github.com/glowdesk/GD-AvailabilityService/internal/usecase/resolve_availability"
	"github.com/glowdesk/GD-AvailabilityService/pkg/types"
)

type fakeUseCase struct {
	req  *resolveAvailability.Request
	resp *resolveAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func perform(t *testing.T, uc *fakeUseCase, url string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/businesses/{businessId}/available-slots", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		resp: &resolveAvailability.Response{
			Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			BusinessID: 10,
			ServiceID:  20,
			Slots: []domain.Slot{
				{StartTime: ts(t, "09:00"), EndTime: ts(t, "09:30"), DurationMinutes: 30},
				{StartTime: ts(t, "09:30"), EndTime: ts(t, "10:00"), DurationMinutes: 30},
			},
		},
	}

	rec := perform(t, uc, "/api/v1/businesses/10/available-slots?serviceId=20&date=2025-06-02")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02", body.Date)
	assert.Equal(t, int64(10), body.BusinessID)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "09:00", body.Slots[0].StartTime)
	assert.Equal(t, "09:30", body.Slots[0].EndTime)

	// Запрос пробросился в use case как есть
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(10), uc.req.BusinessID)
	assert.Equal(t, int64(20), uc.req.ServiceID)
	assert.Nil(t, uc.req.ProfessionalID)
}

func TestHandle_ProfessionalPassedThrough(t *testing.T) {
	uc := &fakeUseCase{resp: &resolveAvailability.Response{}}

	rec := perform(t, uc, "/api/v1/businesses/10/available-slots?serviceId=20&date=2025-06-02&professionalId=3")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req.ProfessionalID)
	assert.Equal(t, int64(3), *uc.req.ProfessionalID)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "invalid business id", url: "/api/v1/businesses/abc/available-slots?serviceId=20&date=2025-06-02"},
		{name: "missing service id", url: "/api/v1/businesses/10/available-slots?date=2025-06-02"},
		{name: "invalid service id", url: "/api/v1/businesses/10/available-slots?serviceId=abc&date=2025-06-02"},
		{name: "missing date", url: "/api/v1/businesses/10/available-slots?serviceId=20"},
		{name: "invalid date", url: "/api/v1/businesses/10/available-slots?serviceId=20&date=02.06.2025"},
		{name: "invalid professional id", url: "/api/v1/businesses/10/available-slots?serviceId=20&date=2025-06-02&professionalId=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := perform(t, uc, tt.url)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// До use case дело не дошло
			assert.Nil(t, uc.req)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid query", err: resolveAvailability.ErrInvalidQuery, wantStatus: http.StatusBadRequest},
		{name: "data missing", err: resolveAvailability.ErrDataMissing, wantStatus: http.StatusNotFound},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := perform(t, uc, "/api/v1/businesses/10/available-slots?serviceId=20&date=2025-06-02")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
