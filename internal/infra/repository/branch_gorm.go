package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/restobook/booking-api/internal/domain/branch"
	"github.com/restobook/booking-api/internal/models"
)

type BranchGormRepository struct {
	db *gorm.DB
}

func NewBranchGormRepository(db *gorm.DB) *BranchGormRepository {
	return &BranchGormRepository{db: db}
}

func (r *BranchGormRepository) SearchBranches(
	ctx context.Context,
	f domain.SearchFilter,
) ([]domain.BranchWithProfile, error) {

	q := r.db.WithContext(ctx).Model(&models.Branch{})

	if city := strings.ToLower(strings.TrimSpace(f.City)); city != "" {
		q = q.Where("LOWER(branches.city) = ?", city)
	}

	var branches []models.Branch
	if err := q.Order("branches.id ASC").Find(&branches).Error; err != nil {
		return nil, err
	}

	if len(branches) == 0 {
		return []domain.BranchWithProfile{}, nil
	}

	restaurantIDs := make([]uint, 0, len(branches))
	for _, b := range branches {
		restaurantIDs = append(restaurantIDs, b.RestaurantID)
	}

	var profiles []models.RestaurantProfile
	if err := r.db.WithContext(ctx).
		Where("restaurant_id IN ?", restaurantIDs).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	profileByRestaurant := make(map[uint]models.RestaurantProfile, len(profiles))
	for _, p := range profiles {
		profileByRestaurant[p.RestaurantID] = p
	}

	cuisine := strings.ToLower(strings.TrimSpace(f.Cuisine))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.BranchWithProfile, 0, len(branches))
	for _, b := range branches {
		p := profileByRestaurant[b.RestaurantID]

		if cuisine != "" && strings.ToLower(p.Cuisine) != cuisine {
			continue
		}

		if query != "" {
			haystack := strings.ToLower(b.Name + " " + p.Name + " " + b.Address)
			if !strings.Contains(haystack, query) {
				continue
			}
		}

		out = append(out, domain.BranchWithProfile{Branch: b, Profile: p})
	}

	return out, nil
}

func (r *BranchGormRepository) ListSavedBranchIDs(
	ctx context.Context,
	userID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.SavedBranch{}).
		Where("user_id = ?", userID).
		Pluck("branch_id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*BranchGormRepository)(nil)
