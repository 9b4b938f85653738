package domain

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/eventum-app/eventum/internal/model"
	"github.com/eventum-app/eventum/internal/repository"
	"github.com/eventum-app/eventum/internal/service"
)

// EventReviews is the review block of an event page.
type EventReviews struct {
	Reviews     []model.Review
	AvgRating   float64
	ReviewCount int64
}

type ReviewService struct {
	reviews  repository.ReviewRepo
	bookings repository.BookingRepo
	events   repository.EventRepo
}

func NewReviewService(reviews repository.ReviewRepo, bookings repository.BookingRepo, events repository.EventRepo) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		events:   events,
	}
}

// Add posts a review. Only a user holding a confirmed or completed booking
// for the event qualifies, and each user gets one review per event.
func (s *ReviewService) Add(userID, eventID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, service.Invalid("rating", "must be between 1 and 5")
	}
	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	qualifying, err := s.bookings.FirstQualifying(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotEligible
		}
		return nil, err
	}
	exists, err := s.reviews.ExistsByUserAndEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, service.ErrDuplicateReview
	}

	review := &model.Review{
		UserID:    userID,
		EventID:   eventID,
		BookingID: &qualifying.ID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ForEvent(eventID uint) (*EventReviews, error) {
	avg, count, err := s.reviews.RatingSummary(eventID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByEvent(eventID, 50)
	if err != nil {
		return nil, err
	}
	return &EventReviews{
		Reviews:     reviews,
		AvgRating:   avg,
		ReviewCount: count,
	}, nil
}

func (s *ReviewService) ByUser(userID uint) ([]model.Review, error) {
	return s.reviews.ListByUser(userID)
}
