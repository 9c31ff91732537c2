package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restobook/booking-api/internal/httperr"
	"github.com/restobook/booking-api/internal/httpresp"
	"github.com/restobook/booking-api/internal/middleware"
	"github.com/restobook/booking-api/internal/models"
)

type SavedBranchHandler struct {
	db *gorm.DB
}

func NewSavedBranchHandler(db *gorm.DB) *SavedBranchHandler {
	return &SavedBranchHandler{db: db}
}

type SaveBranchRequest struct {
	BranchID uint `json:"branch_id" binding:"required"`
}

func (h *SavedBranchHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var saved []models.SavedBranch
	if err := h.db.
		Preload("Branch").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		httperr.Internal(c, "failed_to_list_saved", "Failed to list saved branches.")
		return
	}

	httpresp.List(c, saved)
}

// ListIDs feeds the client's saved-state lookups without branch
// payloads.
func (h *SavedBranchHandler) ListIDs(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var ids []uint
	if err := h.db.
		Model(&models.SavedBranch{}).
		Where("user_id = ?", userID).
		Pluck("branch_id", &ids).Error; err != nil {
		httperr.Internal(c, "failed_to_list_saved", "Failed to list saved branch ids.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch_ids": ids})
}

func (h *SavedBranchHandler) Save(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SaveBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, req.BranchID).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	saved := models.SavedBranch{
		UserID:   userID,
		BranchID: req.BranchID,
	}

	if err := h.db.Create(&saved).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			// already saved, idempotent success
			c.JSON(http.StatusOK, gin.H{"status": "already_saved"})
			return
		}
		httperr.Internal(c, "failed_to_save_branch", "Failed to save branch.")
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *SavedBranchHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	branchID := c.Param("id")

	res := h.db.
		Where("user_id = ? AND branch_id = ?", userID, branchID).
		Delete(&models.SavedBranch{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_unsave_branch", "Failed to remove saved branch.")
		return
	}

	if res.RowsAffected == 0 {
		httperr.NotFound(c, "saved_branch_not_found", "Saved branch not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
