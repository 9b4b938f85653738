package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

type ReviewRepo interface {
	WithTx(tx *gorm.DB) ReviewRepo
	Create(review *model.Review) error
	ExistsByUserAndEvent(userID, eventID uint) (bool, error)
	ListByEvent(eventID uint, limit int) ([]model.Review, error)
	ListByUser(userID uint) ([]model.Review, error)
	RatingSummary(eventID uint) (avg float64, count int64, err error)
}

type reviewRepoGorm struct {
	db *gorm.DB
}

var _ ReviewRepo = (*reviewRepoGorm)(nil)

func NewReviewRepoGorm(db *gorm.DB) *reviewRepoGorm {
	return &reviewRepoGorm{
		db: db,
	}
}

func (r *reviewRepoGorm) WithTx(tx *gorm.DB) ReviewRepo {
	return &reviewRepoGorm{
		db: tx,
	}
}

func (r *reviewRepoGorm) Create(review *model.Review) error {
	ctx := context.Background()
	if err := gorm.G[model.Review](r.db).Create(ctx, review); err != nil {
		return err
	}
	return nil
}

func (r *reviewRepoGorm) ExistsByUserAndEvent(userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepoGorm) ListByEvent(eventID uint, limit int) ([]model.Review, error) {
	ctx := context.Background()
	reviews, err := gorm.G[model.Review](r.db).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepoGorm) ListByUser(userID uint) ([]model.Review, error) {
	ctx := context.Background()
	reviews, err := gorm.G[model.Review](r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepoGorm) RatingSummary(eventID uint) (float64, int64, error) {
	var row struct {
		Avg   *float64
		Count int64
	}
	err := r.db.Model(&model.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, row.Count, nil
	}
	return *row.Avg, row.Count, nil
}
