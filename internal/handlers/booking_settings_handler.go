package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/cache"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BookingSettingsHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewBookingSettingsHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *BookingSettingsHandler {
	return &BookingSettingsHandler{
		db:    db,
		audit: auditDispatcher,
		cache: availCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingSettingsResponse struct {
	BranchID uint `json:"branch_id"`

	OpeningTime            string `json:"opening_time"`
	ClosingTime            string `json:"closing_time"`
	ReservationDurationMin int    `json:"reservation_duration_min"`

	TablesCount int `json:"tables_count"`
	SeatsCount  int `json:"seats_count"`
}

type UpdateBookingSettingsRequest struct {
	OpeningTime            *string `json:"opening_time"`
	ClosingTime            *string `json:"closing_time"`
	ReservationDurationMin *int    `json:"reservation_duration_min"`
	TablesCount            *int    `json:"tables_count"`
	SeatsCount             *int    `json:"seats_count"`
}

type OverrideRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Closed bool   `json:"closed"`

	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	MaxSeats  int    `json:"max_seats"`
	MaxTables int    `json:"max_tables"`

	Note string `json:"note"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingSettingsHandler) branchForRestaurant(c *gin.Context, branchID string) (*models.Branch, bool) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND restaurant_id = ?", branchID, restaurantID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return nil, false
	}

	return &branch, true
}

func isValidHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// ======================================================
// SETTINGS
// ======================================================

func (h *BookingSettingsHandler) GetSettings(c *gin.Context) {
	branch, ok := h.branchForRestaurant(c, c.Param("branchId"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, BookingSettingsResponse{
		BranchID:               branch.ID,
		OpeningTime:            branch.OpeningTime,
		ClosingTime:            branch.ClosingTime,
		ReservationDurationMin: branch.ReservationDurationMin,
		TablesCount:            branch.TablesCount,
		SeatsCount:             branch.SeatsCount,
	})
}

func (h *BookingSettingsHandler) UpdateSettings(c *gin.Context) {
	branch, ok := h.branchForRestaurant(c, c.Param("branchId"))
	if !ok {
		return
	}

	var req UpdateBookingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.OpeningTime != nil {
		if !isValidHM(*req.OpeningTime) {
			httperr.BadRequest(c, "invalid_opening_time", "Opening time must be HH:mm.")
			return
		}
		branch.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		if !isValidHM(*req.ClosingTime) {
			httperr.BadRequest(c, "invalid_closing_time", "Closing time must be HH:mm.")
			return
		}
		branch.ClosingTime = *req.ClosingTime
	}
	if req.ReservationDurationMin != nil {
		if *req.ReservationDurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Reservation duration must be positive.")
			return
		}
		branch.ReservationDurationMin = *req.ReservationDurationMin
	}
	if req.TablesCount != nil {
		if *req.TablesCount <= 0 {
			httperr.BadRequest(c, "invalid_tables_count", "Tables count must be positive.")
			return
		}
		branch.TablesCount = *req.TablesCount
	}
	if req.SeatsCount != nil {
		if *req.SeatsCount <= 0 {
			httperr.BadRequest(c, "invalid_seats_count", "Seats count must be positive.")
			return
		}
		branch.SeatsCount = *req.SeatsCount
	}

	if err := h.db.Save(branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Failed to save booking settings.")
		return
	}

	h.cache.InvalidateBranch(c.Request.Context(), branch.ID)

	h.audit.Dispatch(audit.Event{
		RestaurantID: branch.RestaurantID,
		Action:       "booking_settings_updated",
		Entity:       "branch",
		EntityID:     &branch.ID,
	})

	c.JSON(http.StatusOK, BookingSettingsResponse{
		BranchID:               branch.ID,
		OpeningTime:            branch.OpeningTime,
		ClosingTime:            branch.ClosingTime,
		ReservationDurationMin: branch.ReservationDurationMin,
		TablesCount:            branch.TablesCount,
		SeatsCount:             branch.SeatsCount,
	})
}

// ======================================================
// OVERRIDES
// ======================================================

func (h *BookingSettingsHandler) ListOverrides(c *gin.Context) {
	branch, ok := h.branchForRestaurant(c, c.Param("branchId"))
	if !ok {
		return
	}

	var overrides []models.BookingOverride
	if err := h.db.
		Where("branch_id = ?", branch.ID).
		Order("date ASC").
		Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Failed to list overrides.")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

func (h *BookingSettingsHandler) CreateOverride(c *gin.Context) {
	branch, ok := h.branchForRestaurant(c, c.Param("branchId"))
	if !ok {
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := parseDateInBranch(branch, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	if !req.Closed {
		if req.OpenTime != "" && !isValidHM(req.OpenTime) {
			httperr.BadRequest(c, "invalid_open_time", "Open time must be HH:mm.")
			return
		}
		if req.CloseTime != "" && !isValidHM(req.CloseTime) {
			httperr.BadRequest(c, "invalid_close_time", "Close time must be HH:mm.")
			return
		}
	}

	override := models.BookingOverride{
		BranchID:  branch.ID,
		Date:      date,
		Closed:    req.Closed,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		MaxSeats:  req.MaxSeats,
		MaxTables: req.MaxTables,
		Note:      req.Note,
	}

	if err := h.db.Create(&override).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "override_exists", "An override for this date already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_override", "Failed to create override.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), branch.ID, req.Date)

	h.audit.Dispatch(audit.Event{
		RestaurantID: branch.RestaurantID,
		Action:       "override_created",
		Entity:       "booking_override",
		EntityID:     &override.ID,
	})

	c.JSON(http.StatusCreated, override)
}

func (h *BookingSettingsHandler) UpdateOverride(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)
	id := c.Param("id")

	var override models.BookingOverride
	if err := h.db.
		Joins("JOIN branches ON branches.id = booking_overrides.branch_id").
		Where("booking_overrides.id = ? AND branches.restaurant_id = ?", id, restaurantID).
		First(&override).Error; err != nil {
		httperr.NotFound(c, "override_not_found", "Override not found.")
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, override.BranchID).Error; err != nil {
		httperr.Internal(c, "branch_not_found", "Branch not found.")
		return
	}

	date, err := parseDateInBranch(&branch, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	override.Date = date
	override.Closed = req.Closed
	override.OpenTime = req.OpenTime
	override.CloseTime = req.CloseTime
	override.MaxSeats = req.MaxSeats
	override.MaxTables = req.MaxTables
	override.Note = req.Note

	if err := h.db.Save(&override).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "override_exists", "An override for this date already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update_override", "Failed to update override.")
		return
	}

	h.cache.InvalidateBranch(c.Request.Context(), override.BranchID)

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "override_updated",
		Entity:       "booking_override",
		EntityID:     &override.ID,
	})

	c.JSON(http.StatusOK, override)
}

func (h *BookingSettingsHandler) DeleteOverride(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)
	id := c.Param("id")

	var override models.BookingOverride
	if err := h.db.
		Joins("JOIN branches ON branches.id = booking_overrides.branch_id").
		Where("booking_overrides.id = ? AND branches.restaurant_id = ?", id, restaurantID).
		First(&override).Error; err != nil {
		httperr.NotFound(c, "override_not_found", "Override not found.")
		return
	}

	if err := h.db.Delete(&override).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_override", "Failed to delete override.")
		return
	}

	h.cache.InvalidateBranch(c.Request.Context(), override.BranchID)

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "override_deleted",
		Entity:       "booking_override",
		EntityID:     &override.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
