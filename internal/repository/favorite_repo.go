package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

type FavoriteRepo interface {
	WithTx(tx *gorm.DB) FavoriteRepo
	Create(favorite *model.Favorite) error
	Delete(userID, eventID uint) (bool, error)
	Exists(userID, eventID uint) (bool, error)
	ListByUser(userID uint) ([]model.Favorite, error)
}

type favoriteRepoGorm struct {
	db *gorm.DB
}

var _ FavoriteRepo = (*favoriteRepoGorm)(nil)

func NewFavoriteRepoGorm(db *gorm.DB) *favoriteRepoGorm {
	return &favoriteRepoGorm{
		db: db,
	}
}

func (r *favoriteRepoGorm) WithTx(tx *gorm.DB) FavoriteRepo {
	return &favoriteRepoGorm{
		db: tx,
	}
}

func (r *favoriteRepoGorm) Create(favorite *model.Favorite) error {
	ctx := context.Background()
	if err := gorm.G[model.Favorite](r.db).Create(ctx, favorite); err != nil {
		return err
	}
	return nil
}

func (r *favoriteRepoGorm) Delete(userID, eventID uint) (bool, error) {
	ctx := context.Background()
	rows, err := gorm.G[model.Favorite](r.db).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(ctx)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *favoriteRepoGorm) Exists(userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepoGorm) ListByUser(userID uint) ([]model.Favorite, error) {
	ctx := context.Background()
	favorites, err := gorm.G[model.Favorite](r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}
