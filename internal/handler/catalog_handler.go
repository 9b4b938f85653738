package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app"
	"github.com/eventum-app/eventum/internal/model"
)

type CatalogHandler struct {
	app *app.App
}

func NewCatalogHandler(app *app.App) *CatalogHandler {
	return &CatalogHandler{
		app: app,
	}
}

func (h *CatalogHandler) HandleCreateCity(ctx *gin.Context) {
	var req CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{
			"error":  "Invalid request format",
			"detail": err.Error(),
		})
		return
	}

	city, err := h.app.CatalogService.CreateCity(req.Name, req.State, req.Country, req.IsFeatured)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(201, toCityResponse(city, 0))
}

func (h *CatalogHandler) HandleListCities(ctx *gin.Context) {
	cities, err := h.app.CatalogService.Cities()
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]CityResponse, 0, len(cities))
	for i := range cities {
		out = append(out, toCityResponse(&cities[i], 0))
	}
	ctx.JSON(200, gin.H{
		"cities": out,
	})
}

func (h *CatalogHandler) HandleFeaturedCities(ctx *gin.Context) {
	rows, err := h.app.CatalogService.FeaturedCities(time.Now(), 6)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]CityResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toCityResponse(&rows[i].City, rows[i].EventCount))
	}
	ctx.JSON(200, gin.H{
		"cities": out,
	})
}

func (h *CatalogHandler) HandleCityEvents(ctx *gin.Context) {
	page, err := h.app.CatalogService.CityEvents(ctx.Param("slug"), time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"city":   toCityResponse(page.City, int64(len(page.Events))),
		"events": toEventResponses(page.Events),
	})
}

func toCityResponse(c *model.City, eventCount int64) CityResponse {
	return CityResponse{
		ID:         c.ID,
		Name:       c.Name,
		State:      c.State,
		Country:    c.Country,
		Slug:       c.Slug,
		IsFeatured: c.IsFeatured,
		EventCount: eventCount,
	}
}

type CityRequest struct {
	Name       string `json:"name"`
	State      string `json:"state"`
	Country    string `json:"country"`
	IsFeatured bool   `json:"is_featured"`
}
