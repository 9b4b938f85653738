package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
)

type BookingHandler struct {
	app *app.App
}

func NewBookingHandler(app *app.App) *BookingHandler {
	return &BookingHandler{
		app: app,
	}
}

func (h *BookingHandler) HandleCreate(ctx *gin.Context) {
	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}
	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": "event_date must be YYYY-MM-DD",
		})
		return
	}

	booking, err := h.app.BookingWorkflow.Create(req.UserID, req.EventID, req.Tickets, eventDate)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"booking": toBookingResponse(booking),
		"note":    "Please complete payment within 15 minutes",
	})
}

func (h *BookingHandler) HandleConfirm(ctx *gin.Context) {
	bookingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	booking, err := h.app.BookingWorkflow.ConfirmPayment(req.UserID, bookingID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"booking": toBookingResponse(booking),
	})
}

func (h *BookingHandler) HandleCancel(ctx *gin.Context) {
	bookingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	cancellation, err := h.app.BookingWorkflow.Cancel(req.UserID, bookingID, time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"booking":        toBookingResponse(cancellation.Booking),
		"refund_percent": cancellation.RefundPercent,
		"refund_cents":   cancellation.RefundCents,
	})
}

// HandleComplete is the administrative confirmed→completed trigger.
func (h *BookingHandler) HandleComplete(ctx *gin.Context) {
	bookingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	booking, err := h.app.BookingService.Complete(bookingID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"booking": toBookingResponse(booking),
	})
}

func (h *BookingHandler) HandleGet(ctx *gin.Context) {
	bookingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	booking, err := h.app.BookingService.GetForUser(userID, bookingID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, toBookingResponse(booking))
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": name + " must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func queryUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": "user_id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

type BookingRequest struct {
	UserID    uint   `json:"user_id"`
	EventID   uint   `json:"event_id"`
	Tickets   int    `json:"tickets"`
	EventDate string `json:"event_date"`
}

type UserRequest struct {
	UserID uint `json:"user_id"`
}
