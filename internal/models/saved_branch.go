package models

import "time"

type SavedBranch struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_saved_user_branch,priority:1;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BranchID uint   `gorm:"uniqueIndex:idx_saved_user_branch,priority:2;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"branch"`

	CreatedAt time.Time `json:"created_at"`
}
