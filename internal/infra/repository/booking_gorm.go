package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Branch
// --------------------------------------------------

func (r *BookingGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *BookingGormRepository) GetBranchForRestaurant(
	ctx context.Context,
	branchID uint,
	restaurantID uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", branchID, restaurantID).
		First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// --------------------------------------------------
// Override
// --------------------------------------------------

func (r *BookingGormRepository) GetOverrideForDate(
	ctx context.Context,
	branchID uint,
	date time.Time,
) (*models.BookingOverride, error) {

	var ov models.BookingOverride
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		First(&ov).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *BookingGormRepository) ListSlotsForDay(
	ctx context.Context,
	branchID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where(
			"branch_id = ? AND date >= ? AND date < ?",
			branchID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// --------------------------------------------------
// Booking (create / release)
// --------------------------------------------------

// CreateBookingReservingSlot locks the slot row, checks the remaining
// capacity and writes the booking, all in one transaction.
func (r *BookingGormRepository) CreateBookingReservingSlot(
	ctx context.Context,
	b *models.Booking,
	req domain.SlotRequest,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"branch_id = ? AND date = ? AND start_time = ?",
				req.BranchID, req.Date, req.StartTime,
			).
			First(&slot).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			slot = models.TimeSlot{
				BranchID:  req.BranchID,
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				MaxSeats:  req.MaxSeats,
				MaxTables: req.MaxTables,
			}
			// a concurrent first booking of this interval inserts
			// the row first and the unique index fires; the caller
			// surfaces that as a retryable conflict
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// settings or overrides may have changed the day capacity
		// since the row was created; the request carries the
		// effective caps and the row follows them
		slot.MaxSeats = req.MaxSeats
		slot.MaxTables = req.MaxTables

		if slot.BookedSeats+req.PartySize > slot.MaxSeats {
			return httperr.ErrBusiness("slot_full")
		}
		if slot.BookedTables+1 > slot.MaxTables {
			return httperr.ErrBusiness("slot_full")
		}

		slot.BookedSeats += req.PartySize
		slot.BookedTables++

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		b.TimeSlotID = slot.ID
		b.Date = slot.Date

		return tx.Create(b).Error
	})
}

// CancelBookingReleasingSlot saves the cancelled booking and returns
// its seats and table to the slot in one transaction.
func (r *BookingGormRepository) CancelBookingReleasingSlot(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, b.TimeSlotID).Error; err != nil {
			return err
		}

		slot.BookedSeats -= b.PartySize
		if slot.BookedSeats < 0 {
			slot.BookedSeats = 0
		}
		slot.BookedTables--
		if slot.BookedTables < 0 {
			slot.BookedTables = 0
		}

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		return tx.Save(b).Error
	})
}

// UpdateBookingPartySize moves the seat counters by the size delta
// under the same slot lock used at creation.
func (r *BookingGormRepository) UpdateBookingPartySize(
	ctx context.Context,
	b *models.Booking,
	newSize int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, b.TimeSlotID).Error; err != nil {
			return err
		}

		delta := newSize - b.PartySize
		if slot.BookedSeats+delta > slot.MaxSeats {
			return httperr.ErrBusiness("slot_full")
		}

		slot.BookedSeats += delta
		if slot.BookedSeats < 0 {
			slot.BookedSeats = 0
		}

		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		b.PartySize = newSize
		return tx.Save(b).Error
	})
}

// --------------------------------------------------
// Booking (lookup / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("TimeSlot").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("TimeSlot").
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingForRestaurant(
	ctx context.Context,
	bookingID uint,
	restaurantID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Joins("JOIN branches ON branches.id = bookings.branch_id").
		Where("bookings.id = ? AND branches.restaurant_id = ?", bookingID, restaurantID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForBranchDay(
	ctx context.Context,
	branchID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("TimeSlot").
		Where(
			"branch_id = ? AND date >= ? AND date < ?",
			branchID, dayStart, dayEnd,
		).
		Order("date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
