package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, business_id, name, duration_minutes FROM services")).
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name", "duration_minutes"}).
			AddRow(20, 10, "Стрижка", 30))

	service, err := repo.GetService(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, int64(20), service.ID)
	assert.Equal(t, int64(10), service.BusinessID)
	assert.Equal(t, "Стрижка", service.Name)
	assert.Equal(t, 30, service.DurationMinutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetService_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT .+ FROM services").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name", "duration_minutes"}))

	_, err = repo.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetService_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT .+ FROM services").
		WithArgs(int64(20)).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetService(context.Background(), 20)
	assert.ErrorIs(t, err, ErrExecQuery)

	assert.NoError(t, mock.ExpectationsWereMet())
}
