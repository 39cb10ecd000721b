package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/tollway/internal/geo"
	"github.com/UnknownOlympus/tollway/internal/metrics"
	"github.com/UnknownOlympus/tollway/internal/models"
	"github.com/UnknownOlympus/tollway/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateTollRequest is the payload for registering a new toll station.
type CreateTollRequest struct {
	Name               string              `json:"name"               validate:"max=200"`
	Location           *models.Coordinates `json:"location"           validate:"required"`
	VehicleTypeCharges map[string]float64  `json:"vehicleTypeCharges" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	CongestionLevel    int                 `json:"congestionLevel"    validate:"gte=0"`
}

// UpdateTollRequest is a partial update. Nil fields are left untouched; a non-nil
// charge map replaces the stored one.
type UpdateTollRequest struct {
	Name               *string             `json:"name"               validate:"omitempty,max=200"`
	Location           *models.Coordinates `json:"location"`
	VehicleTypeCharges map[string]float64  `json:"vehicleTypeCharges" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	CongestionLevel    *int                `json:"congestionLevel"    validate:"omitempty,gte=0"`
}

// TollService implements the administrative operations on toll stations.
type TollService struct {
	log      *slog.Logger
	store    repository.Store
	metrics  *metrics.Metrics
	validate *validator.Validate
	now      func() time.Time
}

// NewTollService creates a new TollService.
func NewTollService(log *slog.Logger, store repository.Store, metrics *metrics.Metrics) *TollService {
	return &TollService{
		log:      log,
		store:    store,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the request and stores a new toll station with a fresh id.
func (ts *TollService) Create(ctx context.Context, req CreateTollRequest) (*models.TollStation, error) {
	if err := ts.validate.Struct(req); err != nil {
		ts.record("create", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := geo.Validate(*req.Location); err != nil {
		ts.record("create", ErrInvalidArgument)
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	now := ts.now()
	station := models.TollStation{
		ID:                 uuid.New(),
		Name:               req.Name,
		Location:           *req.Location,
		VehicleTypeCharges: req.VehicleTypeCharges,
		CongestionLevel:    req.CongestionLevel,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if station.VehicleTypeCharges == nil {
		station.VehicleTypeCharges = map[string]float64{}
	}

	if err := ts.store.Create(ctx, station); err != nil {
		err = ts.storeError(ctx, "create", err)
		ts.record("create", err)
		return nil, err
	}

	ts.record("create", nil)
	ts.log.InfoContext(ctx, "Toll station created", "id", station.ID)

	return &station, nil
}

// Get returns the toll station with the given id.
func (ts *TollService) Get(ctx context.Context, id uuid.UUID) (*models.TollStation, error) {
	station, err := ts.store.Get(ctx, id)
	if err != nil {
		return nil, ts.storeError(ctx, "get", err)
	}

	return station, nil
}

// Update applies a partial update to an existing toll station.
func (ts *TollService) Update(ctx context.Context, id uuid.UUID, req UpdateTollRequest) (*models.TollStation, error) {
	if err := ts.validate.Struct(req); err != nil {
		ts.record("update", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if req.Location != nil {
		if err := geo.Validate(*req.Location); err != nil {
			ts.record("update", ErrInvalidArgument)
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	station, err := ts.store.Get(ctx, id)
	if err != nil {
		err = ts.storeError(ctx, "update", err)
		ts.record("update", err)
		return nil, err
	}

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Location != nil {
		station.Location = *req.Location
	}
	if req.VehicleTypeCharges != nil {
		station.VehicleTypeCharges = req.VehicleTypeCharges
	}
	if req.CongestionLevel != nil {
		station.CongestionLevel = *req.CongestionLevel
	}
	station.UpdatedAt = ts.now()

	if err = ts.store.Update(ctx, *station); err != nil {
		err = ts.storeError(ctx, "update", err)
		ts.record("update", err)
		return nil, err
	}

	ts.record("update", nil)
	ts.log.InfoContext(ctx, "Toll station updated", "id", id)

	return station, nil
}

// Delete removes the toll station with the given id.
func (ts *TollService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ts.store.Delete(ctx, id); err != nil {
		err = ts.storeError(ctx, "delete", err)
		ts.record("delete", err)
		return err
	}

	ts.record("delete", nil)
	ts.log.InfoContext(ctx, "Toll station deleted", "id", id)

	return nil
}

// storeError maps a store error onto the service taxonomy.
func (ts *TollService) storeError(ctx context.Context, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	ts.metrics.StoreErrors.Inc()
	ts.log.ErrorContext(ctx, "Toll station store failed", "operation", op, "error", err)

	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

func (ts *TollService) record(op string, err error) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case errors.Is(err, ErrUpstreamUnavailable):
		status = "failure"
	default:
		status = "invalid"
	}
	ts.metrics.TollMutations.WithLabelValues(op, status).Inc()
}
