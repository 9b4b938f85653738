package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

// CityWithCount pairs a city with its count of active upcoming events.
type CityWithCount struct {
	model.City
	EventCount int64
}

type CityRepo interface {
	WithTx(tx *gorm.DB) CityRepo
	Create(city *model.City) error
	GetBySlug(slug string) (*model.City, error)
	ListWithActiveEvents() ([]model.City, error)
	ListFeatured(today time.Time, limit int) ([]CityWithCount, error)
	ActiveEventCount(id uint) (int64, error)
	NamesByPrefix(prefix string, limit int) ([]string, error)
}

type cityRepoGorm struct {
	db *gorm.DB
}

var _ CityRepo = (*cityRepoGorm)(nil)

func NewCityRepoGorm(db *gorm.DB) *cityRepoGorm {
	return &cityRepoGorm{
		db: db,
	}
}

func (r *cityRepoGorm) WithTx(tx *gorm.DB) CityRepo {
	return &cityRepoGorm{
		db: tx,
	}
}

func (r *cityRepoGorm) Create(city *model.City) error {
	ctx := context.Background()
	if err := gorm.G[model.City](r.db).Create(ctx, city); err != nil {
		return err
	}
	return nil
}

func (r *cityRepoGorm) GetBySlug(slug string) (*model.City, error) {
	ctx := context.Background()
	city, err := gorm.G[model.City](r.db).Where("slug = ?", slug).First(ctx)
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepoGorm) ListWithActiveEvents() ([]model.City, error) {
	var cities []model.City
	err := r.db.Model(&model.City{}).
		Select("cities.*").
		Joins("JOIN events ON events.city_id = cities.id").
		Where("events.is_active = ?", true).
		Group("cities.id").
		Order("cities.name ASC").
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepoGorm) ListFeatured(today time.Time, limit int) ([]CityWithCount, error) {
	var rows []CityWithCount
	err := r.db.Model(&model.City{}).
		Select("cities.*, COUNT(events.id) AS event_count").
		Joins("LEFT JOIN events ON events.city_id = cities.id AND events.is_active = ? AND events.start_date >= ?", true, today).
		Where("cities.is_featured = ?", true).
		Group("cities.id").
		Order("event_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cityRepoGorm) NamesByPrefix(prefix string, limit int) ([]string, error) {
	var names []string
	err := r.db.Model(&model.City{}).
		Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%").
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *cityRepoGorm) ActiveEventCount(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Event{}).
		Where("city_id = ? AND is_active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
