package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
)

type BookingRepo interface {
	WithTx(tx *gorm.DB) BookingRepo
	Create(booking *model.Booking) error
	GetByID(id uint) (*model.Booking, error)
	ListByUser(userID uint) ([]model.Booking, error)
	ListUpcomingActiveByUser(userID uint, from time.Time) ([]model.Booking, error)
	MarkConfirmed(id uint, paymentRef string) (bool, error)
	MarkCancelled(id uint) (bool, error)
	MarkCompleted(id uint) (bool, error)
	FirstQualifying(userID, eventID uint) (*model.Booking, error)
	CountByEvent(eventID uint) (int64, error)
	ActiveTicketSum(eventID uint) (int64, error)
}

type bookingRepoGorm struct {
	db *gorm.DB
}

var _ BookingRepo = (*bookingRepoGorm)(nil)

func NewBookingRepoGorm(db *gorm.DB) *bookingRepoGorm {
	return &bookingRepoGorm{
		db: db,
	}
}

func (r *bookingRepoGorm) WithTx(tx *gorm.DB) BookingRepo {
	return &bookingRepoGorm{
		db: tx,
	}
}

func (r *bookingRepoGorm) Create(booking *model.Booking) error {
	ctx := context.Background()
	if err := gorm.G[model.Booking](r.db).Create(ctx, booking); err != nil {
		return err
	}
	return nil
}

func (r *bookingRepoGorm) GetByID(id uint) (*model.Booking, error) {
	ctx := context.Background()
	booking, err := gorm.G[model.Booking](r.db).Where(&model.Booking{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepoGorm) ListByUser(userID uint) ([]model.Booking, error) {
	ctx := context.Background()
	bookings, err := gorm.G[model.Booking](r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepoGorm) ListUpcomingActiveByUser(userID uint, from time.Time) ([]model.Booking, error) {
	ctx := context.Background()
	bookings, err := gorm.G[model.Booking](r.db).
		Where("user_id = ? AND event_date >= ? AND status IN ?", userID, from, model.ActiveBookingStatuses).
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkConfirmed flips a pending booking to confirmed and records the payment
// reference. The status guard lives in the WHERE clause so a concurrent
// confirm or cancel cannot both win; false means the booking was not pending.
func (r *bookingRepoGorm) MarkConfirmed(id uint, paymentRef string) (bool, error) {
	res := r.db.Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.BookingPending).
		Updates(map[string]any{
			"status":      model.BookingConfirmed,
			"is_paid":     true,
			"payment_ref": paymentRef,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkCancelled cancels a booking that still holds tickets. false means the
// booking was already cancelled or completed and nothing changed.
func (r *bookingRepoGorm) MarkCancelled(id uint) (bool, error) {
	res := r.db.Model(&model.Booking{}).
		Where("id = ? AND status IN ?", id, model.ActiveBookingStatuses).
		UpdateColumn("status", model.BookingCancelled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookingRepoGorm) MarkCompleted(id uint) (bool, error) {
	res := r.db.Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, model.BookingConfirmed).
		UpdateColumn("status", model.BookingCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FirstQualifying returns the user's earliest confirmed or completed booking
// for the event, the precondition for posting a review.
func (r *bookingRepoGorm) FirstQualifying(userID, eventID uint) (*model.Booking, error) {
	ctx := context.Background()
	booking, err := gorm.G[model.Booking](r.db).
		Where("user_id = ? AND event_id = ? AND status IN ?",
			userID, eventID, []model.BookingStatus{model.BookingConfirmed, model.BookingCompleted}).
		Order("created_at ASC").
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepoGorm) CountByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Booking{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveTicketSum totals the tickets held by non-cancelled bookings of an
// event; capacity minus this sum must equal available_tickets.
func (r *bookingRepoGorm) ActiveTicketSum(eventID uint) (int64, error) {
	var sum *int64
	err := r.db.Model(&model.Booking{}).
		Select("SUM(tickets)").
		Where("event_id = ? AND status <> ?", eventID, model.BookingCancelled).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
