package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teksi-laju/service-booking/internal/application"
	"github.com/teksi-laju/service-booking/internal/domain/booking"
	"github.com/teksi-laju/service-booking/internal/response"
)

// BookingHandler handles HTTP requests for the booking flow.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	draft := r.Group("/api/v1/draft")
	{
		draft.PUT("/route", h.PlanTrip)
		draft.POST("/stops", h.AddStop)
		draft.POST("/waypoints", h.AddWaypoint)
		draft.DELETE("/waypoints/:index", h.RemoveWaypoint)
		draft.DELETE("/waypoints", h.ClearWaypoints)
		draft.PUT("/taxi", h.SelectTaxi)
		draft.GET("/summary", h.Summary)
		draft.GET("/route.geojson", h.DraftRoute)
		draft.POST("/confirm", h.Confirm)
		draft.DELETE("", h.CancelDraft)
	}

	bookings := r.Group("/api/v1/bookings")
	{
		bookings.GET("/history", h.History)
		bookings.PUT("/selected", h.Select)
		bookings.GET("/selected", h.Details)
		bookings.PUT("/selected/taxi", h.ChangeTaxi)
		bookings.DELETE("/selected", h.CancelBooking)
	}

	r.GET("/api/v1/taxis", h.Taxis)
}

// PlanTrip handles PUT /api/v1/draft/route.
func (h *BookingHandler) PlanTrip(c *gin.Context) {
	var req application.PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.PlanTrip(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddStop handles POST /api/v1/draft/stops.
func (h *BookingHandler) AddStop(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddStop(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddWaypoint handles POST /api/v1/draft/waypoints (map-click coordinates).
func (h *BookingHandler) AddWaypoint(c *gin.Context) {
	var req struct {
		Role string             `json:"role" binding:"required"`
		At   booking.Coordinate `json:"at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddWaypoint(c.Request.Context(), application.WaypointRole(req.Role), req.At)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RemoveWaypoint handles DELETE /api/v1/draft/waypoints/:index.
func (h *BookingHandler) RemoveWaypoint(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "invalid waypoint index")
		return
	}

	result, err := h.service.RemoveWaypoint(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ClearWaypoints handles DELETE /api/v1/draft/waypoints.
func (h *BookingHandler) ClearWaypoints(c *gin.Context) {
	result, err := h.service.ClearWaypoints(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SelectTaxi handles PUT /api/v1/draft/taxi.
func (h *BookingHandler) SelectTaxi(c *gin.Context) {
	var req struct {
		TaxiType string `json:"taxi_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SelectTaxi(c.Request.Context(), req.TaxiType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Summary handles GET /api/v1/draft/summary.
func (h *BookingHandler) Summary(c *gin.Context) {
	result, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DraftRoute handles GET /api/v1/draft/route.geojson.
func (h *BookingHandler) DraftRoute(c *gin.Context) {
	result, err := h.service.DraftRoute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, result)
}

// Confirm handles POST /api/v1/draft/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	result, err := h.service.Confirm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// CancelDraft handles DELETE /api/v1/draft.
func (h *BookingHandler) CancelDraft(c *gin.Context) {
	if err := h.service.CancelDraft(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// History handles GET /api/v1/bookings/history.
func (h *BookingHandler) History(c *gin.Context) {
	result, err := h.service.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Select handles PUT /api/v1/bookings/selected.
func (h *BookingHandler) Select(c *gin.Context) {
	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Select(c.Request.Context(), *req.Index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Details handles GET /api/v1/bookings/selected.
func (h *BookingHandler) Details(c *gin.Context) {
	result, err := h.service.Details(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ChangeTaxi handles PUT /api/v1/bookings/selected/taxi.
func (h *BookingHandler) ChangeTaxi(c *gin.Context) {
	var req struct {
		TaxiType string `json:"taxi_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ChangeTaxi(c.Request.Context(), req.TaxiType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles DELETE /api/v1/bookings/selected.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.service.CancelBooking(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Taxis handles GET /api/v1/taxis.
func (h *BookingHandler) Taxis(c *gin.Context) {
	response.Success(c, h.service.Taxis())
}
