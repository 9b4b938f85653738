package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

// InventoryService owns the ticket ledger. Every decrement goes through
// Reserve and every increment through Release, both backed by single
// conditional UPDATE statements in the event repository.
type InventoryService struct {
	events   repository.EventRepo
	bookings repository.BookingRepo
}

func NewInventoryService(events repository.EventRepo, bookings repository.BookingRepo) *InventoryService {
	return &InventoryService{
		events:   events,
		bookings: bookings,
	}
}

func (s *InventoryService) WithTx(tx *gorm.DB) *InventoryService {
	return &InventoryService{
		events:   s.events.WithTx(tx),
		bookings: s.bookings.WithTx(tx),
	}
}

// Reserve takes n tickets from the event or reports why it could not. The
// conditional update cannot tell a missing event from an inactive one from a
// shortfall, so on a miss we re-read the row to name the cause.
func (s *InventoryService) Reserve(eventID uint, n int) error {
	if n < 1 {
		return service.Invalid("tickets", "must reserve at least one ticket")
	}
	err := s.events.ReserveTickets(eventID, n)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNoRowsReserved) {
		return err
	}
	event, getErr := s.events.GetByID(eventID)
	if getErr != nil {
		if errors.Is(getErr, gorm.ErrRecordNotFound) {
			return service.ErrNotFound
		}
		return getErr
	}
	if !event.IsActive {
		return service.ErrEventInactive
	}
	return service.ErrInsufficientInventory
}

// Release hands n tickets back. Safe to call for inactive events so that
// cancelling a booking against a withdrawn event still settles the ledger.
func (s *InventoryService) Release(eventID uint, n int) error {
	if n < 1 {
		return service.Invalid("tickets", "must release at least one ticket")
	}
	return s.events.ReleaseTickets(eventID, n)
}

// Drift compares the ledger against the bookings table. A healthy event
// satisfies capacity - sum(active tickets) == available_tickets; the returned
// value is how far available_tickets sits from that, zero when consistent.
func (s *InventoryService) Drift(eventID uint) (int64, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, service.ErrNotFound
		}
		return 0, err
	}
	held, err := s.bookings.ActiveTicketSum(eventID)
	if err != nil {
		return 0, err
	}
	expected := int64(event.Capacity) - held
	return int64(event.AvailableTickets) - expected, nil
}

// Availability reports the current counter without reserving anything.
func (s *InventoryService) Availability(eventID uint) (*model.Event, error) {
	event, err := s.events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}
