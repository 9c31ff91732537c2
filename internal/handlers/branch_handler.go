package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/cache"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/httpresp"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
	"github.com/restobook/booking-api/internal/timezone"
	ucBooking "github.com/restobook/booking-api/internal/usecase/booking"
	ucBranch "github.com/restobook/booking-api/internal/usecase/branch"
)

// ======================================================
// HANDLER
// ======================================================

type BranchHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache

	availabilityUC *ucBooking.GetAvailability
	searchUC       *ucBranch.SearchBranches
}

func NewBranchHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
	availabilityUC *ucBooking.GetAvailability,
	searchUC *ucBranch.SearchBranches,
) *BranchHandler {
	return &BranchHandler{
		db:             db,
		audit:          auditDispatcher,
		cache:          availCache,
		availabilityUC: availabilityUC,
		searchUC:       searchUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	TablesCount int `json:"tables_count" binding:"required,min=1"`
	SeatsCount  int `json:"seats_count" binding:"required,min=1"`

	OpeningTime            string `json:"opening_time"`
	ClosingTime            string `json:"closing_time"`
	ReservationDurationMin int    `json:"reservation_duration_min"`

	Timezone string `json:"timezone"`
}

// ======================================================
// PUBLIC
// ======================================================

type branchListItem struct {
	models.Branch
	Profile models.RestaurantProfile `json:"profile"`
}

func (h *BranchHandler) ListAll(c *gin.Context) {
	var branches []models.Branch
	if err := h.db.Order("id ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Failed to list branches.")
		return
	}

	restaurantIDs := make([]uint, 0, len(branches))
	for _, b := range branches {
		restaurantIDs = append(restaurantIDs, b.RestaurantID)
	}

	profileByRestaurant := map[uint]models.RestaurantProfile{}
	if len(restaurantIDs) > 0 {
		var profiles []models.RestaurantProfile
		if err := h.db.Where("restaurant_id IN ?", restaurantIDs).Find(&profiles).Error; err != nil {
			httperr.Internal(c, "failed_to_list_branches", "Failed to list branches.")
			return
		}
		for _, p := range profiles {
			profileByRestaurant[p.RestaurantID] = p
		}
	}

	out := make([]branchListItem, 0, len(branches))
	for _, b := range branches {
		out = append(out, branchListItem{
			Branch:  b,
			Profile: profileByRestaurant[b.RestaurantID],
		})
	}

	httpresp.List(c, out)
}

func (h *BranchHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var branch models.Branch
	if err := h.db.First(&branch, id).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	var profile models.RestaurantProfile
	h.db.Where("restaurant_id = ?", branch.RestaurantID).First(&profile)

	c.JSON(http.StatusOK, branchListItem{Branch: branch, Profile: profile})
}

func (h *BranchHandler) Availability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid branch id.")
		return
	}

	dateStr := c.Param("date")

	slots, err := h.availabilityUC.Execute(c.Request.Context(), uint(id), dateStr)
	if err != nil {
		if code, ok := httperr.IsAnyBusiness(err); ok {
			if code == "branch_not_found" {
				httperr.NotFound(c, code, "Branch not found.")
				return
			}
			httperr.BadRequest(c, code, "Invalid availability request.")
			return
		}
		httperr.Internal(c, "availability_error", "Failed to compute availability.")
		return
	}

	httpresp.List(c, slots)
}

func (h *BranchHandler) Search(c *gin.Context) {
	in := ucBranch.SearchInput{
		Query:   c.Query("q"),
		City:    c.Query("city"),
		Cuisine: c.Query("cuisine"),
	}

	if latStr := c.Query("lat"); latStr != "" {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, "invalid_coordinates", "Invalid coordinates.")
			return
		}
		in.Latitude = &lat
		in.Longitude = &lng
	}

	if userIDVal, ok := c.Get(middleware.ContextUserID); ok {
		userID := userIDVal.(uint)
		in.UserID = &userID
	}

	out, err := h.searchUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Internal(c, "search_error", "Failed to search branches.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// OPERATOR
// ======================================================

func (h *BranchHandler) ListMine(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var branches []models.Branch
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Failed to list branches.")
		return
	}

	httpresp.List(c, branches)
}

func (h *BranchHandler) Create(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	branch := models.Branch{
		RestaurantID:           restaurantID,
		Name:                   req.Name,
		Address:                req.Address,
		City:                   req.City,
		Phone:                  req.Phone,
		Latitude:               req.Latitude,
		Longitude:              req.Longitude,
		TablesCount:            req.TablesCount,
		SeatsCount:             req.SeatsCount,
		Timezone:               tz,
		OpeningTime:            req.OpeningTime,
		ClosingTime:            req.ClosingTime,
		ReservationDurationMin: req.ReservationDurationMin,
	}

	if branch.OpeningTime == "" {
		branch.OpeningTime = "12:00"
	}
	if branch.ClosingTime == "" {
		branch.ClosingTime = "23:00"
	}
	if branch.ReservationDurationMin <= 0 {
		branch.ReservationDurationMin = 90
	}

	if err := h.db.Create(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_create_branch", "Failed to create branch.")
		return
	}

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "branch_created",
		Entity:       "branch",
		EntityID:     &branch.ID,
	})

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)
	id := c.Param("id")

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.City = req.City
	branch.Phone = req.Phone
	branch.Latitude = req.Latitude
	branch.Longitude = req.Longitude
	branch.TablesCount = req.TablesCount
	branch.SeatsCount = req.SeatsCount

	if req.OpeningTime != "" {
		branch.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != "" {
		branch.ClosingTime = req.ClosingTime
	}
	if req.ReservationDurationMin > 0 {
		branch.ReservationDurationMin = req.ReservationDurationMin
	}
	if timezone.IsValid(req.Timezone) {
		branch.Timezone = req.Timezone
	}

	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Failed to update branch.")
		return
	}

	// hours or capacity may have changed for any future day
	h.cache.InvalidateBranch(c.Request.Context(), branch.ID)

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "branch_updated",
		Entity:       "branch",
		EntityID:     &branch.ID,
	})

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Delete(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)
	id := c.Param("id")

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	// booking dates are stored at branch-local midnight, so today's
	// bookings only match when compared against the start of today
	now := timezone.NowIn(branch.Timezone)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var activeCount int64
	h.db.Model(&models.Booking{}).
		Where(
			"branch_id = ? AND status IN ? AND date >= ?",
			branch.ID, []string{"pending", "confirmed"}, startOfToday,
		).
		Count(&activeCount)
	if activeCount > 0 {
		httperr.BadRequest(c, "branch_has_active_bookings", "Cancel open bookings before deleting the branch.")
		return
	}

	if err := h.db.Delete(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_branch", "Failed to delete branch.")
		return
	}

	h.cache.InvalidateBranch(c.Request.Context(), branch.ID)

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "branch_deleted",
		Entity:       "branch",
		EntityID:     &branch.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
