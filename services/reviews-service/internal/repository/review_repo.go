package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(rv).Error
}

// ByID fetches a review. Soft-deleted rows behave as missing.
func (r *ReviewRepo) ByID(ctx context.Context, id string) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).
		First(&rv, "id = ? AND status <> ?", id, domain.StatusDeleted).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) Save(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ReviewRepo) ListByRoom(ctx context.Context, roomID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, domain.StatusActive).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
