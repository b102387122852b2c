package postgres_test

import (
	"context"
	"testing"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestBookingRepository_HasConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("OverlapFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		conflict, err := repo.HasConflict(ctx, 7, start, end)
		assert.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		conflict, err := repo.HasConflict(ctx, 7, start, end)
		assert.NoError(t, err)
		assert.False(t, conflict)
	})
}

func TestBookingRepository_Accept(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("PendingRowMatches", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int32(3), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Accept(ctx, 3, nil, now)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("StatusAlreadyMoved", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int32(3), now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Accept(ctx, 3, nil, now)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("WithDriverAssignment", func(t *testing.T) {
		assignment := &domain.DriverAssignment{Name: "Ravi", Phone: "+911234567890", License: "DL-0420"}
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int32(3), now, assignment.Name, assignment.Phone, assignment.License).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Accept(ctx, 3, assignment, now)
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestBookingRepository_CompleteTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("InProgressRowMatches", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int32(9), now, 42.5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.CompleteTrip(ctx, 9, 42.5, now)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NotInProgress", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(int32(9), now, 42.5).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.CompleteTrip(ctx, 9, 42.5, now)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
