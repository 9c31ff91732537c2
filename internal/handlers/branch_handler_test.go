package handlers

import (
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/middleware"
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

// midnightTodayArg matches a timestamp at today's branch-local
// midnight, the cutoff the active-booking guard must use.
type midnightTodayArg struct {
	loc *time.Location
}

func (a midnightTodayArg) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if !ok {
		return false
	}

	now := time.Now().In(a.loc)
	local := ts.In(a.loc)

	return local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 &&
		local.Year() == now.Year() && local.YearDay() == now.YearDay()
}

func deleteBranchContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/branch/1", nil)
	c.Set(middleware.ContextRestaurantID, uint(7))
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	return c, w
}

func TestDeleteBranchBlockedByTodayBooking(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewBranchHandler(db, nil, nil, nil, nil)

	branchRows := sqlmock.NewRows([]string{"id", "restaurant_id", "name", "timezone"}).
		AddRow(1, 7, "Downtown", "UTC")
	mock.ExpectQuery(`SELECT (.+) FROM "branches" WHERE`).
		WillReturnRows(branchRows)

	// a pending booking dated today must count, so the cutoff is the
	// start of today rather than the current instant
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(int64(1), "pending", "confirmed", midnightTodayArg{loc: time.UTC}).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c, w := deleteBranchContext(t)
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "branch_has_active_bookings")

	// the DELETE statement was never reached
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBranchWithoutActiveBookings(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewBranchHandler(db, nil, nil, nil, nil)

	branchRows := sqlmock.NewRows([]string{"id", "restaurant_id", "name", "timezone"}).
		AddRow(1, 7, "Downtown", "UTC")
	mock.ExpectQuery(`SELECT (.+) FROM "branches" WHERE`).
		WillReturnRows(branchRows)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(int64(1), "pending", "confirmed", midnightTodayArg{loc: time.UTC}).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "branches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, w := deleteBranchContext(t)
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
