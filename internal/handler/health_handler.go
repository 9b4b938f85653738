package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
	"github.com/eventum-app/eventum/internal/model"
)

type HealthHandler struct {
	app *app.App
}

func NewHealthHandler(app *app.App) *HealthHandler {
	return &HealthHandler{
		app: app,
	}
}

func (h *HealthHandler) HandleLive(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status": "ok",
	})
}

// HandleStats reports row counts for a quick operational glance.
func (h *HealthHandler) HandleStats(ctx *gin.Context) {
	counts := gin.H{}
	for name, m := range map[string]any{
		"users":    &model.User{},
		"events":   &model.Event{},
		"bookings": &model.Booking{},
		"reviews":  &model.Review{},
	} {
		var count int64
		if err := h.app.DB.Model(m).Count(&count).Error; err != nil {
			respondError(ctx, err)
			return
		}
		counts[name] = count
	}
	ctx.JSON(200, counts)
}

// HandleReady pings the database; readiness fails while the pool is down.
func (h *HealthHandler) HandleReady(ctx *gin.Context) {
	sqlDB, err := h.app.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		ctx.JSON(503, gin.H{
			"status": "unavailable",
		})
		return
	}
	ctx.JSON(200, gin.H{
		"status": "ready",
	})
}
