// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/harborgrid/gridiq/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Run operations
	CreateRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, runID string) (*domain.Run, error)
	ListRuns(ctx context.Context, vesselID string, limit int) ([]domain.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status domain.RunStatus) error
	UpdateRunEnded(ctx context.Context, runID string, status domain.RunStatus) error

	// Event operations
	CreateEvent(ctx context.Context, event *domain.Event) error
	GetEvents(ctx context.Context, runID string, afterTs int64, types []string, limit int) ([]domain.Event, error)

	// Route operations
	CreateRoute(ctx context.Context, route *domain.Route) error
	GetRoute(ctx context.Context, routeID string) (*domain.Route, error)
	ListRoutes(ctx context.Context, vesselID string) ([]domain.Route, error)
	UpdateRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, routeID string) error

	// Lifecycle
	Close() error
}
