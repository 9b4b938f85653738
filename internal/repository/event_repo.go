package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

type EventRepo interface {
	WithTx(tx *gorm.DB) EventRepo
	Create(event *model.Event) error
	GetByID(id uint) (*model.Event, error)
	GetBySlug(slug string) (*model.Event, error)
	Save(event *model.Event) error
	SetActive(id uint, active bool) error
	DeactivateByHost(hostID uint) error
	ListByHost(hostID uint) ([]model.Event, error)
	ListSimilar(category model.EventCategory, excludeID uint, limit int) ([]model.Event, error)
	AddImage(image *model.EventImage) error
	ListImages(eventID uint) ([]model.EventImage, error)
	ReserveTickets(id uint, n int) error
	ReleaseTickets(id uint, n int) error
}

type eventRepoGorm struct {
	db *gorm.DB
}

var _ EventRepo = (*eventRepoGorm)(nil)

func NewEventRepoGorm(db *gorm.DB) *eventRepoGorm {
	return &eventRepoGorm{
		db: db,
	}
}

func (r *eventRepoGorm) WithTx(tx *gorm.DB) EventRepo {
	return &eventRepoGorm{
		db: tx,
	}
}

func (r *eventRepoGorm) Create(event *model.Event) error {
	ctx := context.Background()
	if err := gorm.G[model.Event](r.db).Create(ctx, event); err != nil {
		return err
	}
	return nil
}

func (r *eventRepoGorm) GetByID(id uint) (*model.Event, error) {
	ctx := context.Background()
	event, err := gorm.G[model.Event](r.db).Where(&model.Event{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepoGorm) GetBySlug(slug string) (*model.Event, error) {
	ctx := context.Background()
	event, err := gorm.G[model.Event](r.db).Where("slug = ?", slug).First(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepoGorm) Save(event *model.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepoGorm) SetActive(id uint, active bool) error {
	return r.db.Model(&model.Event{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active).Error
}

func (r *eventRepoGorm) DeactivateByHost(hostID uint) error {
	return r.db.Model(&model.Event{}).
		Where("host_id = ?", hostID).
		UpdateColumn("is_active", false).Error
}

func (r *eventRepoGorm) ListByHost(hostID uint) ([]model.Event, error) {
	ctx := context.Background()
	events, err := gorm.G[model.Event](r.db).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepoGorm) ListSimilar(category model.EventCategory, excludeID uint, limit int) ([]model.Event, error) {
	ctx := context.Background()
	events, err := gorm.G[model.Event](r.db).
		Where("category = ? AND is_active = ? AND id <> ?", category, true, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepoGorm) AddImage(image *model.EventImage) error {
	ctx := context.Background()
	if err := gorm.G[model.EventImage](r.db).Create(ctx, image); err != nil {
		return err
	}
	return nil
}

func (r *eventRepoGorm) ListImages(eventID uint) ([]model.EventImage, error) {
	ctx := context.Background()
	images, err := gorm.G[model.EventImage](r.db).
		Where("event_id = ?", eventID).
		Order("is_primary DESC, position ASC").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ReserveTickets decrements available_tickets by n only when enough tickets
// remain on the committed row. The check and the decrement are a single
// statement so concurrent reservations serialize at the database and can
// never drive the counter negative.
func (r *eventRepoGorm) ReserveTickets(id uint, n int) error {
	res := r.db.Model(&model.Event{}).
		Where("id = ? AND is_active = ? AND available_tickets >= ?", id, true, n).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsReserved
	}
	return nil
}

// ReleaseTickets returns n tickets to the event, clamped at capacity so a
// double release cannot push available_tickets above the ceiling.
func (r *eventRepoGorm) ReleaseTickets(id uint, n int) error {
	return r.db.Model(&model.Event{}).
		Where("id = ?", id).
		UpdateColumn("available_tickets", gorm.Expr(
			"CASE WHEN available_tickets + ? > capacity THEN capacity ELSE available_tickets + ? END", n, n)).
		Error
}
