package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harborgrid/gridiq/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			vessel_id TEXT NOT NULL,
			scenario_id TEXT,
			status TEXT NOT NULL,
			started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_vessel ON runs(vessel_id, started_at)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			ts INTEGER NOT NULL,
			type TEXT NOT NULL,
			payload TEXT,
			FOREIGN KEY (run_id) REFERENCES runs(run_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, ts)`,
		`CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			vessel_id TEXT NOT NULL,
			waypoints TEXT,
			distance_nm REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_vessel ON routes(vessel_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRun creates a new run.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *domain.Run) error {
	var scenarioID sql.NullString
	if run.ScenarioID != "" {
		scenarioID = sql.NullString{String: run.ScenarioID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, vessel_id, scenario_id, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.VesselID, scenarioID, run.Status, run.StartedAt)
	return err
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*domain.Run, error) {
	var run domain.Run
	var scenarioID sql.NullString
	var endedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, vessel_id, scenario_id, status, started_at, ended_at FROM runs WHERE run_id = ?`,
		runID).Scan(&run.RunID, &run.VesselID, &scenarioID, &run.Status, &run.StartedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if scenarioID.Valid {
		run.ScenarioID = scenarioID.String
	}
	if endedAt.Valid {
		run.EndedAt = &endedAt.Time
	}
	return &run, nil
}

// ListRuns retrieves recent runs, optionally filtered by vessel.
func (s *SQLiteStore) ListRuns(ctx context.Context, vesselID string, limit int) ([]domain.Run, error) {
	query := `SELECT run_id, vessel_id, scenario_id, status, started_at, ended_at FROM runs`
	args := []interface{}{}

	if vesselID != "" {
		query += ` WHERE vessel_id = ?`
		args = append(args, vesselID)
	}

	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var run domain.Run
		var scenarioID sql.NullString
		var endedAt sql.NullTime
		if err := rows.Scan(&run.RunID, &run.VesselID, &scenarioID, &run.Status, &run.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if scenarioID.Valid {
			run.ScenarioID = scenarioID.String
		}
		if endedAt.Valid {
			run.EndedAt = &endedAt.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// UpdateRunStatus updates the status of a live run and clears any earlier
// terminal timestamp.
func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status domain.RunStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, ended_at = NULL WHERE run_id = ?`,
		status, runID)
	return err
}

// UpdateRunEnded updates a run to a terminal state.
func (s *SQLiteStore) UpdateRunEnded(ctx context.Context, runID string, status domain.RunStatus) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, ended_at = ? WHERE run_id = ?`,
		status, now, runID)
	return err
}

// CreateEvent creates a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *domain.Event) error {
	payload := ""
	if event.Payload != nil {
		payload = string(event.Payload)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, run_id, ts, type, payload) VALUES (?, ?, ?, ?, ?)`,
		event.EventID, event.RunID, event.Ts, event.Type, payload)
	return err
}

// GetEvents retrieves events for a run.
func (s *SQLiteStore) GetEvents(ctx context.Context, runID string, afterTs int64, types []string, limit int) ([]domain.Event, error) {
	query := `SELECT event_id, run_id, ts, type, payload FROM events WHERE run_id = ?`
	args := []interface{}{runID}

	if afterTs > 0 {
		query += ` AND ts > ?`
		args = append(args, afterTs)
	}

	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args = append(args, t)
		}
		query += fmt.Sprintf(" AND type IN (%s)", strings.Join(placeholders, ","))
	}

	query += ` ORDER BY ts ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		var payload sql.NullString
		if err := rows.Scan(&event.EventID, &event.RunID, &event.Ts, &event.Type, &payload); err != nil {
			return nil, err
		}
		if payload.Valid {
			event.Payload = json.RawMessage(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CreateRoute creates a new route.
func (s *SQLiteStore) CreateRoute(ctx context.Context, route *domain.Route) error {
	waypoints := ""
	if route.Waypoints != nil {
		waypoints = string(route.Waypoints)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO routes (route_id, name, vessel_id, waypoints, distance_nm, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		route.RouteID, route.Name, route.VesselID, waypoints, route.DistanceNm, route.CreatedAt, route.UpdatedAt)
	return err
}

// GetRoute retrieves a route by ID.
func (s *SQLiteStore) GetRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	var route domain.Route
	var waypoints sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT route_id, name, vessel_id, waypoints, distance_nm, created_at, updated_at FROM routes WHERE route_id = ?`,
		routeID).Scan(&route.RouteID, &route.Name, &route.VesselID, &waypoints, &route.DistanceNm, &route.CreatedAt, &route.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if waypoints.Valid && waypoints.String != "" {
		route.Waypoints = json.RawMessage(waypoints.String)
	}
	return &route, nil
}

// ListRoutes retrieves routes, optionally filtered by vessel.
func (s *SQLiteStore) ListRoutes(ctx context.Context, vesselID string) ([]domain.Route, error) {
	query := `SELECT route_id, name, vessel_id, waypoints, distance_nm, created_at, updated_at FROM routes`
	args := []interface{}{}

	if vesselID != "" {
		query += ` WHERE vessel_id = ?`
		args = append(args, vesselID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var route domain.Route
		var waypoints sql.NullString
		if err := rows.Scan(&route.RouteID, &route.Name, &route.VesselID, &waypoints, &route.DistanceNm, &route.CreatedAt, &route.UpdatedAt); err != nil {
			return nil, err
		}
		if waypoints.Valid && waypoints.String != "" {
			route.Waypoints = json.RawMessage(waypoints.String)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// UpdateRoute updates an existing route.
func (s *SQLiteStore) UpdateRoute(ctx context.Context, route *domain.Route) error {
	waypoints := ""
	if route.Waypoints != nil {
		waypoints = string(route.Waypoints)
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE routes SET name = ?, vessel_id = ?, waypoints = ?, distance_nm = ?, updated_at = ? WHERE route_id = ?`,
		route.Name, route.VesselID, waypoints, route.DistanceNm, route.UpdatedAt, route.RouteID)
	return err
}

// DeleteRoute removes a route.
func (s *SQLiteStore) DeleteRoute(ctx context.Context, routeID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM routes WHERE route_id = ?`,
		routeID)
	return err
}
