package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"rideshare/internal/domain"
)

var rideColumns = []string{"id", "user_id", "pickup_location", "drop_location", "date_time", "status"}

func TestRideRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRideRepository(db)
	at := time.Date(2024, 5, 1, 9, 0, 0, 123000, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rides (user_id, pickup_location, drop_location, date_time, status)")).
		WithArgs(int64(3), "Airport", "Downtown", at, "CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	ride := &domain.Ride{UserID: 3, PickupLocation: "Airport", DropLocation: "Downtown", DateTime: at, Status: domain.RideStatusConfirmed}
	require.NoError(t, repo.Create(context.Background(), ride))
	require.Equal(t, int64(11), ride.ID)
}

func TestRideRepository_CreateDefaultsToConfirmed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRideRepository(db)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rides")).
		WithArgs(int64(3), "", "", at, "CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	require.NoError(t, repo.Create(context.Background(), &domain.Ride{UserID: 3, DateTime: at}))
}

func TestRideRepository_ListByUserIDNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRideRepository(db)
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	later := time.Date(2024, 5, 2, 11, 0, 0, 0, plus2)
	earlier := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE user_id = \$1\s+ORDER BY date_time DESC, id DESC`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(rideColumns).
			AddRow(int64(9), int64(3), "C", "D", later, "CONFIRMED").
			AddRow(int64(8), int64(3), "A", "B", earlier, "CONFIRMED"))

	rides, err := repo.ListByUserID(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rides, 2)

	require.Equal(t, int64(9), rides[0].ID)
	require.Equal(t, "C", rides[0].PickupLocation)
	require.Equal(t, "D", rides[0].DropLocation)
	require.Equal(t, domain.RideStatusConfirmed, rides[0].Status)
	require.Equal(t, time.UTC, rides[0].DateTime.Location())
	require.True(t, rides[0].DateTime.Equal(later))

	require.Equal(t, int64(8), rides[1].ID)
	require.Equal(t, int64(3), rides[1].UserID)
}

func TestRideRepository_ListByUserIDEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRideRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(rideColumns))

	rides, err := repo.ListByUserID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, rides)
	require.Empty(t, rides)
}

func TestRideRepository_ListByUserIDRowError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRideRepository(db)
	rowErr := errors.New("connection lost")

	mock.ExpectQuery(regexp.QuoteMeta("FROM rides")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(rideColumns).
			AddRow(int64(9), int64(3), "C", "D", time.Now(), "CONFIRMED").
			RowError(0, rowErr))

	_, err := repo.ListByUserID(context.Background(), 3)
	require.ErrorIs(t, err, rowErr)
}
