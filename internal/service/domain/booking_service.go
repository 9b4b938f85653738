package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

const (
	// Cancellations must land at least this many whole calendar days before
	// the booked event date.
	cancellationWindowDays = 3
	// Cancelling at least this many days out refunds in full, otherwise half.
	fullRefundDays = 7
)

// Cancellation is the outcome of a successful cancel: the updated booking
// plus the advisory refund split for the payment processor.
type Cancellation struct {
	Booking       *model.Booking
	RefundPercent int
	RefundCents   int64
}

type BookingService struct {
	db        *gorm.DB
	bookings  repository.BookingRepo
	events    repository.EventRepo
	inventory *InventoryService
}

func NewBookingService(db *gorm.DB, bookings repository.BookingRepo, events repository.EventRepo, inventory *InventoryService) *BookingService {
	return &BookingService{
		db:        db,
		bookings:  bookings,
		events:    events,
		inventory: inventory,
	}
}

// Create reserves tickets and inserts the pending booking in one transaction,
// so a failed insert rolls the reservation back and a failed reservation
// never leaves a booking behind.
func (s *BookingService) Create(userID, eventID uint, tickets int, eventDate time.Time) (*model.Booking, error) {
	if tickets < 1 {
		return nil, service.Invalid("tickets", "must book at least one ticket")
	}
	event, err := s.events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if !event.IsActive {
		return nil, service.ErrEventInactive
	}
	day := dateOnly(eventDate)
	if day.Before(dateOnly(event.StartDate)) || day.After(dateOnly(event.EndDate)) {
		return nil, service.Invalid("event_date", "must fall within the event's running dates")
	}

	booking := &model.Booking{
		UserID:          userID,
		EventID:         eventID,
		Tickets:         tickets,
		EventDate:       day,
		TotalPriceCents: event.PriceCents * int64(tickets),
		Status:          model.BookingPending,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.inventory.WithTx(tx).Reserve(eventID, tickets); err != nil {
			return err
		}
		return s.bookings.WithTx(tx).Create(booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ConfirmPayment moves a pending booking to confirmed and stamps a payment
// reference. The pending guard sits in the repository's WHERE clause, so a
// double confirm loses the race cleanly instead of overwriting the reference.
func (s *BookingService) ConfirmPayment(userID, bookingID uint) (*model.Booking, error) {
	booking, err := s.getOwned(userID, bookingID)
	if err != nil {
		return nil, err
	}
	ref := uuid.NewString()
	ok, err := s.bookings.MarkConfirmed(booking.ID, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrNotPending
	}
	return s.bookings.GetByID(booking.ID)
}

// Cancel releases the booking's tickets back to the event. Allowed for
// pending and confirmed bookings up to three calendar days before the event
// date; cancelling seven or more days out refunds 100%, closer refunds 50%.
func (s *BookingService) Cancel(userID, bookingID uint, now time.Time) (*Cancellation, error) {
	booking, err := s.getOwned(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.BookingCancelled {
		return nil, service.ErrAlreadyCancelled
	}
	days := daysUntil(booking.EventDate, now)
	if days < cancellationWindowDays {
		return nil, service.ErrCancellationWindowClosed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookings.WithTx(tx).MarkCancelled(booking.ID)
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrAlreadyCancelled
		}
		return s.inventory.WithTx(tx).Release(booking.EventID, booking.Tickets)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.GetByID(booking.ID)
	if err != nil {
		return nil, err
	}
	percent := 50
	if days >= fullRefundDays {
		percent = 100
	}
	refund := int64(0)
	if updated.IsPaid {
		refund = updated.TotalPriceCents * int64(percent) / 100
	}
	return &Cancellation{
		Booking:       updated,
		RefundPercent: percent,
		RefundCents:   refund,
	}, nil
}

// Complete marks a confirmed booking as attended.
func (s *BookingService) Complete(bookingID uint) (*model.Booking, error) {
	ok, err := s.bookings.MarkCompleted(bookingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrNotConfirmed
	}
	return s.bookings.GetByID(bookingID)
}

// ExpirePending cancels a booking only if it is still pending, releasing its
// tickets. Used by the payment timeout consumer; a booking confirmed in the
// meantime is left alone and false is returned.
func (s *BookingService) ExpirePending(bookingID uint) (bool, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, service.ErrNotFound
		}
		return false, err
	}
	expired := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", booking.ID, model.BookingPending).
			UpdateColumn("status", model.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		expired = true
		return s.inventory.WithTx(tx).Release(booking.EventID, booking.Tickets)
	})
	if err != nil {
		return false, err
	}
	return expired, nil
}

// CompleteElapsed sweeps confirmed bookings whose event date has passed into
// completed, returning how many rows moved. Meant for a periodic job.
func (s *BookingService) CompleteElapsed(now time.Time) (int64, error) {
	res := s.db.Model(&model.Booking{}).
		Where("status = ? AND event_date < ?", model.BookingConfirmed, dateOnly(now)).
		UpdateColumn("status", model.BookingCompleted)
	return res.RowsAffected, res.Error
}

func (s *BookingService) ListByUser(userID uint) ([]model.Booking, error) {
	return s.bookings.ListByUser(userID)
}

func (s *BookingService) GetForUser(userID, bookingID uint) (*model.Booking, error) {
	return s.getOwned(userID, bookingID)
}

// getOwned hides other users' bookings behind not-found rather than naming
// the real owner.
func (s *BookingService) getOwned(userID, bookingID uint) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, service.ErrNotFound
	}
	return booking, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysUntil counts whole calendar days from now's date to the event date,
// so a cancel in the afternoon counts the same as one at midnight. Both
// ends are midnight-normalized; rounding absorbs DST-shifted days.
func daysUntil(eventDate, now time.Time) int {
	return int(math.Round(eventDate.Sub(dateOnly(now)).Hours() / 24))
}
