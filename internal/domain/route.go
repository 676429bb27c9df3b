package domain

import (
	"encoding/json"
	"time"
)

// Route is a persisted voyage route record.
type Route struct {
	RouteID    string          `json:"route_id"`
	Name       string          `json:"name"`
	VesselID   string          `json:"vessel_id,omitempty"`
	Waypoints  json.RawMessage `json:"waypoints,omitempty"` // [{lat, lon, name?}]
	DistanceNm float64         `json:"distance_nm,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RouteUpsertRequest is the create/update body for a route.
type RouteUpsertRequest struct {
	Name       string          `json:"name"`
	VesselID   string          `json:"vessel_id,omitempty"`
	Waypoints  json.RawMessage `json:"waypoints,omitempty"`
	DistanceNm float64         `json:"distance_nm,omitempty"`
}

// VesselPosition is one vessel telemetry snapshot entry.
type VesselPosition struct {
	VesselID   string    `json:"vessel_id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	SpeedKn    float64   `json:"speed_kn"`
	HeadingDeg float64   `json:"heading_deg"`
	FuelPct    float64   `json:"fuel_pct"`
	UpdatedAt  time.Time `json:"updated_at"`
}
