package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/audit"
	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
	"github.com/restobook/booking-api/internal/storage"
)

const logoMaxUploadBytes = 5 << 20

// ======================================================
// HANDLER
// ======================================================

type ProfileHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	logos *storage.LogoStore
}

func NewProfileHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	logos *storage.LogoStore,
) *ProfileHandler {
	return &ProfileHandler{
		db:    db,
		audit: auditDispatcher,
		logos: logos,
	}
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Cuisine     *string `json:"cuisine"`
	PriceRange  *string `json:"price_range"`
	About       *string `json:"about"`
	Description *string `json:"description"`
}

func validPriceRange(v string) bool {
	switch v {
	case "$", "$$", "$$$", "$$$$":
		return true
	}
	return false
}

// ======================================================
// PROFILE
// ======================================================

func (h *ProfileHandler) Get(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var profile models.RestaurantProfile
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Restaurant profile not found.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var profile models.RestaurantProfile
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Restaurant profile not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Cuisine != nil {
		profile.Cuisine = *req.Cuisine
	}
	if req.PriceRange != nil {
		if !validPriceRange(*req.PriceRange) {
			httperr.BadRequest(c, "invalid_price_range", "Price range must be $ to $$$$.")
			return
		}
		profile.PriceRange = *req.PriceRange
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to save profile.")
		return
	}

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "profile_updated",
		Entity:       "restaurant_profile",
		EntityID:     &profile.ID,
	})

	c.JSON(http.StatusOK, profile)
}

// ======================================================
// LOGO UPLOAD
// ======================================================

func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)

	var profile models.RestaurantProfile
	if err := h.db.
		Where("restaurant_id = ?", restaurantID).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Restaurant profile not found.")
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo_file", "A logo file is required.")
		return
	}
	defer file.Close()

	if header.Size > logoMaxUploadBytes {
		httperr.BadRequest(c, "logo_too_large", "Logo must be 5MB or less.")
		return
	}

	url, err := h.logos.Upload(c.Request.Context(), restaurantID, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_logo", "Logo must be a valid PNG or JPEG image.")
		return
	}

	profile.LogoURL = url
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Failed to save profile.")
		return
	}

	h.audit.Dispatch(audit.Event{
		RestaurantID: restaurantID,
		Action:       "logo_uploaded",
		Entity:       "restaurant_profile",
		EntityID:     &profile.ID,
		Metadata:     map[string]any{"logo_url": url},
	})

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
