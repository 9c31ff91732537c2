package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Gender           *string `json:"gender"`
	Birthday         *string `json:"birthday"` // YYYY-MM-DD
	City             *string `json:"city"`
	FavoriteCuisines *string `json:"favorite_cuisines"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.FavoriteCuisines != nil {
		user.FavoriteCuisines = *req.FavoriteCuisines
	}
	if req.Birthday != nil {
		if *req.Birthday == "" {
			user.Birthday = nil
		} else if bd, err := time.Parse("2006-01-02", *req.Birthday); err == nil {
			user.Birthday = &bd
		} else {
			httperr.BadRequest(c, "invalid_birthday", "Invalid birthday.")
			return
		}
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Failed to save profile.")
		return
	}

	c.JSON(http.StatusOK, user)
}
