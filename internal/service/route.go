package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harborgrid/gridiq/internal/domain"
)

// ErrRouteNotFound is returned for operations on a missing route.
var ErrRouteNotFound = fmt.Errorf("route not found")

// CreateRoute stores a new planned route.
func (s *Service) CreateRoute(ctx context.Context, req domain.RouteUpsertRequest) (*domain.Route, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.VesselID == "" {
		return nil, fmt.Errorf("vessel_id is required")
	}

	now := time.Now()
	route := &domain.Route{
		RouteID:    "rt_" + uuid.New().String()[:8],
		Name:       req.Name,
		VesselID:   req.VesselID,
		Waypoints:  req.Waypoints,
		DistanceNm: req.DistanceNm,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

// GetRoute retrieves a route by ID.
func (s *Service) GetRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	route, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}
	return route, nil
}

// ListRoutes lists routes, optionally filtered by vessel.
func (s *Service) ListRoutes(ctx context.Context, vesselID string) ([]domain.Route, error) {
	return s.store.ListRoutes(ctx, vesselID)
}

// UpdateRoute applies an upsert request to an existing route.
func (s *Service) UpdateRoute(ctx context.Context, routeID string, req domain.RouteUpsertRequest) (*domain.Route, error) {
	route, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	if req.Name != "" {
		route.Name = req.Name
	}
	if req.VesselID != "" {
		route.VesselID = req.VesselID
	}
	if req.Waypoints != nil {
		route.Waypoints = req.Waypoints
	}
	if req.DistanceNm > 0 {
		route.DistanceNm = req.DistanceNm
	}
	route.UpdatedAt = time.Now()

	if err := s.store.UpdateRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	return route, nil
}

// DeleteRoute removes a route.
func (s *Service) DeleteRoute(ctx context.Context, routeID string) error {
	route, err := s.store.GetRoute(ctx, routeID)
	if err != nil {
		return err
	}
	if route == nil {
		return ErrRouteNotFound
	}
	return s.store.DeleteRoute(ctx, routeID)
}
