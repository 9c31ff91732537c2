package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/restobook/booking-api/internal/domain/booking"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/httpresp"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
	ucBooking "github.com/restobook/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC       *ucBooking.CreateBooking
	updateUC       *ucBooking.UpdateBooking
	cancelUC       *ucBooking.CancelBooking
	changeStatusUC *ucBooking.ChangeStatus
	listByBranchUC *ucBooking.ListBookingsByBranchDate
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	updateUC *ucBooking.UpdateBooking,
	cancelUC *ucBooking.CancelBooking,
	changeStatusUC *ucBooking.ChangeStatus,
	listByBranchUC *ucBooking.ListBookingsByBranchDate,
) *BookingHandler {
	return &BookingHandler{
		db:             db,
		createUC:       createUC,
		updateUC:       updateUC,
		cancelUC:       cancelUC,
		changeStatusUC: changeStatusUC,
		listByBranchUC: listByBranchUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BranchID  uint   `json:"branch_id" binding:"required"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type GuestBookingRequest struct {
	BranchID   uint   `json:"branch_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone" binding:"required"`
	PartySize  int    `json:"party_size" binding:"required,min=1"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateBookingRequest struct {
	PartySize *int    `json:"party_size"`
	Notes     *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func writeBookingError(c *gin.Context, err error) {
	if code, ok := httperr.IsAnyBusiness(err); ok {
		switch code {
		case "booking_not_found", "branch_not_found":
			httperr.NotFound(c, code, "Not found.")
		case "slot_full":
			httperr.Conflict(c, code, "The selected time slot is fully booked.")
		case "invalid_state":
			httperr.BadRequest(c, code, "The booking cannot change to that state.")
		default:
			httperr.BadRequest(c, code, "Invalid booking request.")
		}
		return
	}

	if httperr.IsExclusionConflict(err) || httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "slot_conflict", "The selected time slot was just taken.")
		return
	}

	httperr.Internal(c, "booking_error", "Failed to process booking.")
}

// ======================================================
// DINER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BranchID:  req.BranchID,
		UserID:    &userID,
		PartySize: req.PartySize,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Branch").
		Preload("TimeSlot").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var b models.Booking
	if err := h.db.
		Preload("Branch").
		Preload("TimeSlot").
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), uint(id), userID, ucBooking.UpdateBookingInput{
		PartySize: req.PartySize,
		Notes:     req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.ExecuteForUser(c.Request.Context(), uint(id), userID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// GUEST
// ======================================================

func (h *BookingHandler) CreateGuest(c *gin.Context) {
	var req GuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BranchID:   req.BranchID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		PartySize:  req.PartySize,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) CancelGuest(c *gin.Context) {
	reference := c.Param("reference")

	b, err := h.cancelUC.ExecuteForGuest(c.Request.Context(), reference)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// OPERATOR
// ======================================================

func (h *BookingHandler) ListByBranch(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	branchID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid branch id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND restaurant_id = ?", branchID, restaurantID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	date, err := parseDateInBranch(&branch, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listByBranchUC.Execute(c.Request.Context(), restaurantID, uint(branchID), date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.changeStatusUC.Execute(
		c.Request.Context(),
		restaurantID,
		uint(id),
		domain.Status(req.Status),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
