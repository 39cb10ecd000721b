package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TollsAlongRoute handles GET /api/tolls/route.
func (h *Handler) TollsAlongRoute(c *gin.Context) {
	query, err := parseRouteQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tolls, err := h.corridor.Search(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tolls)
}

// EstimateRoute handles GET /api/tolls/route/estimate.
func (h *Handler) EstimateRoute(c *gin.Context) {
	query, err := parseRouteQuery(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	estimate, err := h.corridor.Estimate(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// CreateToll handles POST /api/tolls.
func (h *Handler) CreateToll(c *gin.Context) {
	var req service.CreateTollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	station, err := h.tolls.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, station)
}

// GetToll handles GET /api/tolls/:tollId.
func (h *Handler) GetToll(c *gin.Context) {
	id, ok := tollID(c)
	if !ok {
		return
	}

	station, err := h.tolls.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, station)
}

// UpdateToll handles PUT /api/tolls/:tollId.
func (h *Handler) UpdateToll(c *gin.Context) {
	id, ok := tollID(c)
	if !ok {
		return
	}

	var req service.UpdateTollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	station, err := h.tolls.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, station)
}

// DeleteToll handles DELETE /api/tolls/:tollId.
func (h *Handler) DeleteToll(c *gin.Context) {
	id, ok := tollID(c)
	if !ok {
		return
	}

	if err := h.tolls.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "toll deleted"})
}

func tollID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("tollId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid toll ID"})
		return uuid.Nil, false
	}

	return id, true
}

// parseRouteQuery reads startLat, startLng, endLat, endLng, radius and vehicleType from the query string.
func parseRouteQuery(c *gin.Context) (models.RouteQuery, error) {
	var query models.RouteQuery

	keys := [4]string{"startLat", "startLng", "endLat", "endLng"}
	var values [4]float64
	for _, key := range keys {
		if strings.TrimSpace(c.Query(key)) == "" {
			return query, fmt.Errorf("%w: start and end coordinates required", service.ErrInvalidArgument)
		}
	}
	for i, key := range keys {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(c.Query(key)), 64)
		if err != nil {
			return query, fmt.Errorf("%w: %s must be a number", service.ErrInvalidArgument, key)
		}
		values[i] = parsed
	}

	query.Start = &models.Coordinates{Longitude: values[1], Latitude: values[0]}
	query.End = &models.Coordinates{Longitude: values[3], Latitude: values[2]}
	query.VehicleType = strings.TrimSpace(c.Query("vehicleType"))

	if radius := strings.TrimSpace(c.Query("radius")); radius != "" {
		parsed, err := strconv.ParseFloat(radius, 64)
		if err != nil {
			return query, fmt.Errorf("%w: radius must be a number", service.ErrInvalidArgument)
		}
		query.RadiusKm = parsed
	}

	return query, nil
}
