package handler

import (
	"time"

	"github.com/eventum-app/eventum/internal/model"
)

const dateLayout = "2006-01-02"

type EventResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category"`
	City             string `json:"city,omitempty"`
	Location         string `json:"location,omitempty"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PriceCents       int64  `json:"price_cents"`
	Capacity         int    `json:"capacity"`
	AvailableTickets int    `json:"available_tickets"`
	SoldOut          bool   `json:"sold_out"`
	IsFeatured       bool   `json:"is_featured"`
}

func toEventResponse(e *model.Event) EventResponse {
	resp := EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Slug:             e.Slug,
		Description:      e.Description,
		Category:         string(e.Category),
		Location:         e.Location,
		StartDate:        e.StartDate.Format(dateLayout),
		EndDate:          e.EndDate.Format(dateLayout),
		PriceCents:       e.PriceCents,
		Capacity:         e.Capacity,
		AvailableTickets: e.AvailableTickets,
		SoldOut:          e.IsSoldOut(),
		IsFeatured:       e.IsFeatured,
	}
	if e.City != nil {
		resp.City = e.City.Name
	}
	return resp
}

func toEventResponses(events []model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

type BookingResponse struct {
	ID              uint      `json:"id"`
	EventID         uint      `json:"event_id"`
	Tickets         int       `json:"tickets"`
	EventDate       string    `json:"event_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	PaymentRef      string    `json:"payment_ref,omitempty"`
	IsPaid          bool      `json:"is_paid"`
	CreatedAt       time.Time `json:"created_at"`
}

func toBookingResponse(b *model.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		EventID:         b.EventID,
		Tickets:         b.Tickets,
		EventDate:       b.EventDate.Format(dateLayout),
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		PaymentRef:      b.PaymentRef,
		IsPaid:          b.IsPaid,
		CreatedAt:       b.CreatedAt,
	}
}

func toBookingResponses(bookings []model.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	EventID   uint      `json:"event_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponses(reviews []model.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			EventID:   r.EventID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

type CityResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country"`
	Slug       string `json:"slug"`
	IsFeatured bool   `json:"is_featured"`
	EventCount int64  `json:"event_count,omitempty"`
}
