package service

import (
	"time"

	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/internal/fleet"
)

// FleetPositions returns the current mock fleet telemetry snapshot.
func (s *Service) FleetPositions() []domain.VesselPosition {
	return fleet.Snapshot(time.Now())
}
