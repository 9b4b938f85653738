package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
)

type UserHandler struct {
	app *app.App
}

func NewUserHandler(app *app.App) *UserHandler {
	return &UserHandler{
		app: app,
	}
}

func (h *UserHandler) HandleRegister(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	user, err := h.app.UserService.Register(req.Username, req.Email, req.IsHost)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"is_host":  user.IsHost,
	})
}

func (h *UserHandler) HandleGet(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := h.app.UserService.Get(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"is_host":   user.IsHost,
		"is_active": user.IsActive,
		"bio":       user.Bio,
	})
}

// HandleDeactivate closes the account and unwinds its bookings and hosted
// events in one shot.
func (h *UserHandler) HandleDeactivate(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.app.UserService.Deactivate(userID, time.Now()); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"message": "Account deactivated",
	})
}

func (h *UserHandler) HandleBookings(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	bookings, err := h.app.BookingService.ListByUser(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"bookings": toBookingResponses(bookings),
	})
}

func (h *UserHandler) HandleReviews(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	reviews, err := h.app.ReviewService.ByUser(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"reviews": toReviewResponses(reviews),
	})
}

func (h *UserHandler) HandleFavorites(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	favorites, err := h.app.FavoriteService.ListByUser(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	eventIDs := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		eventIDs = append(eventIDs, f.EventID)
	}
	ctx.JSON(200, gin.H{
		"event_ids": eventIDs,
	})
}

func (h *UserHandler) HandleHostedEvents(ctx *gin.Context) {
	hostID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	stats, err := h.app.EventService.HostDashboard(hostID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]gin.H, 0, len(stats))
	for i := range stats {
		out = append(out, gin.H{
			"event":         toEventResponse(&stats[i].Event),
			"booking_count": stats[i].BookingCount,
			"avg_rating":    stats[i].AvgRating,
			"review_count":  stats[i].ReviewCount,
		})
	}
	ctx.JSON(200, gin.H{
		"events": out,
	})
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsHost   bool   `json:"is_host"`
}
