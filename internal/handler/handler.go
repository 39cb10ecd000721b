package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/tollway/internal/directions"
	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorridorSearcher finds and prices tolls along a route.
type CorridorSearcher interface {
	Search(ctx context.Context, query models.RouteQuery) ([]models.RankedToll, error)
	Estimate(ctx context.Context, query models.RouteQuery) (*models.TollEstimate, error)
}

// TollManager performs the administrative operations on toll stations.
type TollManager interface {
	Create(ctx context.Context, req service.CreateTollRequest) (*models.TollStation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TollStation, error)
	Update(ctx context.Context, id uuid.UUID, req service.UpdateTollRequest) (*models.TollStation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler serves the toll API.
type Handler struct {
	log        *slog.Logger
	corridor   CorridorSearcher
	tolls      TollManager
	directions directions.Provider // optional, nil disables the directions endpoint
	timeout    time.Duration
}

// New creates a Handler. A nil directions provider leaves /api/directions unregistered.
func New(
	log *slog.Logger,
	corridor CorridorSearcher,
	tolls TollManager,
	dirs directions.Provider,
	timeout time.Duration,
) *Handler {
	return &Handler{
		log:        log,
		corridor:   corridor,
		tolls:      tolls,
		directions: dirs,
		timeout:    timeout,
	}
}

// RegisterRoutes registers every API route on r.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	api.Use(h.withTimeout())

	tolls := api.Group("/tolls")
	{
		tolls.GET("/route", h.TollsAlongRoute)
		tolls.GET("/route/estimate", h.EstimateRoute)
		tolls.POST("", h.CreateToll)
		tolls.GET("/:tollId", h.GetToll)
		tolls.PUT("/:tollId", h.UpdateToll)
		tolls.DELETE("/:tollId", h.DeleteToll)
	}

	if h.directions != nil {
		api.GET("/directions/route", h.Directions)
	}
}

func (h *Handler) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// respondError maps the service error taxonomy onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "toll not found"})
	default:
		h.log.ErrorContext(c.Request.Context(), "Request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
