package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGetBranchByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "restaurant_id", "name", "timezone"}).
			AddRow(1, 7, "Downtown", "Europe/Lisbon")

		mock.ExpectQuery(`SELECT (.+) FROM "branches" WHERE`).
			WillReturnRows(rows)

		branch, err := repo.GetBranchByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, uint(7), branch.RestaurantID)
		assert.Equal(t, "Europe/Lisbon", branch.Timezone)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM "branches" WHERE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetBranchByID(context.Background(), 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOverrideForDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	date := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("missing override is not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM "booking_overrides" WHERE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ov, err := repo.GetOverrideForDate(context.Background(), 1, date)
		require.NoError(t, err)
		assert.Nil(t, ov)
	})

	t.Run("closed day", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "branch_id", "closed"}).
			AddRow(3, 1, true)

		mock.ExpectQuery(`SELECT (.+) FROM "booking_overrides" WHERE`).
			WillReturnRows(rows)

		ov, err := repo.GetOverrideForDate(context.Background(), 1, date)
		require.NoError(t, err)
		require.NotNil(t, ov)
		assert.True(t, ov.Closed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSlotsForDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	dayStart := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "branch_id", "start_time", "end_time", "booked_seats", "booked_tables"}).
		AddRow(1, 1, "12:00", "13:30", 10, 3).
		AddRow(2, 1, "13:30", "15:00", 40, 10)

	mock.ExpectQuery(`SELECT (.+) FROM "time_slots" WHERE`).
		WillReturnRows(rows)

	slots, err := repo.ListSlotsForDay(context.Background(), 1, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "12:00", slots[0].StartTime)
	assert.Equal(t, 40, slots[1].BookedSeats)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingReservingSlotFull(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	// slot row exists and is already at capacity
	slotRows := sqlmock.NewRows([]string{
		"id", "branch_id", "start_time", "end_time",
		"max_seats", "booked_seats", "max_tables", "booked_tables",
	}).AddRow(5, 1, "13:30", "15:00", 40, 38, 10, 10)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "time_slots" WHERE (.+) FOR UPDATE`).
		WillReturnRows(slotRows)
	mock.ExpectRollback()

	date := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	b := &models.Booking{Reference: "ref-1", BranchID: 1, PartySize: 4, Status: "pending"}
	err := repo.CreateBookingReservingSlot(context.Background(), b, domain.SlotRequest{
		BranchID:  1,
		Date:      date,
		StartTime: "13:30",
		EndTime:   "15:00",
		MaxSeats:  40,
		MaxTables: 10,
		PartySize: 4,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_full"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingReservingSlotHonorsLoweredCapacity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	// the row was created when the day allowed 40 seats; settings
	// have since lowered the effective capacity to 10
	slotRows := sqlmock.NewRows([]string{
		"id", "branch_id", "start_time", "end_time",
		"max_seats", "booked_seats", "max_tables", "booked_tables",
	}).AddRow(5, 1, "13:30", "15:00", 40, 20, 10, 5)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "time_slots" WHERE (.+) FOR UPDATE`).
		WillReturnRows(slotRows)
	mock.ExpectRollback()

	date := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	b := &models.Booking{Reference: "ref-2", BranchID: 1, PartySize: 4, Status: "pending"}
	err := repo.CreateBookingReservingSlot(context.Background(), b, domain.SlotRequest{
		BranchID:  1,
		Date:      date,
		StartTime: "13:30",
		EndTime:   "15:00",
		MaxSeats:  10,
		MaxTables: 10,
		PartySize: 4,
	})
	assert.True(t, httperr.IsBusiness(err, "slot_full"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingReservingSlotConcurrentFirstBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingGormRepository(db)

	// no row to lock yet; by the time this transaction inserts, a
	// concurrent booking created the slot and the unique index fires
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "time_slots" WHERE (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "time_slots"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_slot_branch_start"})
	mock.ExpectRollback()

	date := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

	b := &models.Booking{Reference: "ref-3", BranchID: 1, PartySize: 2, Status: "pending"}
	err := repo.CreateBookingReservingSlot(context.Background(), b, domain.SlotRequest{
		BranchID:  1,
		Date:      date,
		StartTime: "12:00",
		EndTime:   "13:30",
		MaxSeats:  40,
		MaxTables: 10,
		PartySize: 2,
	})
	assert.True(t, httperr.IsUniqueViolation(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
