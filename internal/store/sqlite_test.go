package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/tests/helpers"
)

func TestRunLifecycle(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	run := &domain.Run{
		RunID:     "run_abc123",
		VesselID:  "mv-aurora",
		Status:    domain.RunStatusCreated,
		StartedAt: time.Now(),
	}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("create run: %v", err)
	}

	got, err := s.GetRun(ctx, "run_abc123")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}
	if got.VesselID != "mv-aurora" {
		t.Fatalf("unexpected vessel: %s", got.VesselID)
	}
	if got.ScenarioID != "" {
		t.Fatalf("expected empty scenario, got %q", got.ScenarioID)
	}
	if got.EndedAt != nil {
		t.Fatal("expected nil ended_at for fresh run")
	}

	if err := s.UpdateRunStatus(ctx, "run_abc123", domain.RunStatusRunning); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := s.UpdateRunEnded(ctx, "run_abc123", domain.RunStatusDone); err != nil {
		t.Fatalf("update ended: %v", err)
	}

	got, err = s.GetRun(ctx, "run_abc123")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Status != domain.RunStatusDone {
		t.Fatalf("expected DONE, got %s", got.Status)
	}
	if got.EndedAt == nil {
		t.Fatal("expected ended_at to be set")
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)

	got, err := s.GetRun(context.Background(), "run_missing")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing run, got %+v", got)
	}
}

func TestListRunsFiltersByVessel(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	for i, vessel := range []string{"mv-aurora", "mv-aurora", "mv-boreas"} {
		run := &domain.Run{
			RunID:     "run_" + string(rune('a'+i)),
			VesselID:  vessel,
			Status:    domain.RunStatusRunning,
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := s.CreateRun(ctx, run); err != nil {
			t.Fatalf("create run: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, "mv-aurora", 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	runs, err = s.ListRuns(ctx, "", 1)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected limit 1, got %d", len(runs))
	}
}

func TestEventQueryCursor(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()

	run := &domain.Run{RunID: "run_evt", VesselID: "mv-aurora", Status: domain.RunStatusRunning, StartedAt: time.Now()}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("create run: %v", err)
	}

	events := []domain.Event{
		{EventID: "evt_1", RunID: "run_evt", Ts: 100, Type: domain.EventTypeRunStarted},
		{EventID: "evt_2", RunID: "run_evt", Ts: 200, Type: domain.EventTypeAgentStatus, Payload: json.RawMessage(`{"agent_id":"agent-load"}`)},
		{EventID: "evt_3", RunID: "run_evt", Ts: 300, Type: domain.EventTypeFindingRevealed},
		{EventID: "evt_4", RunID: "run_evt", Ts: 400, Type: domain.EventTypeAgentStatus},
	}
	for i := range events {
		if err := s.CreateEvent(ctx, &events[i]); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	// Cursor: everything after ts 100.
	got, err := s.GetEvents(ctx, "run_evt", 100, nil, 0)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events after ts 100, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Ts < got[i-1].Ts {
			t.Fatal("events not ordered by ts")
		}
	}

	// Type filter.
	got, err = s.GetEvents(ctx, "run_evt", 0, []string{string(domain.EventTypeAgentStatus)}, 0)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 agent_status events, got %d", len(got))
	}
	if got[0].Payload == nil {
		t.Fatal("expected payload preserved")
	}

	// Limit.
	got, err = s.GetEvents(ctx, "run_evt", 0, nil, 2)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
}

func TestRouteCRUD(t *testing.T) {
	s := helpers.NewTestSQLiteStore(t)
	ctx := context.Background()
	now := time.Now()

	route := &domain.Route{
		RouteID:    "rt_0001",
		Name:       "Rotterdam - Bilbao",
		VesselID:   "mv-aurora",
		Waypoints:  json.RawMessage(`[{"lat":51.9,"lon":4.1},{"lat":43.3,"lon":-3.0}]`),
		DistanceNm: 702.5,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.CreateRoute(ctx, route); err != nil {
		t.Fatalf("create route: %v", err)
	}

	got, err := s.GetRoute(ctx, "rt_0001")
	if err != nil {
		t.Fatalf("get route: %v", err)
	}
	if got == nil {
		t.Fatal("expected route, got nil")
	}
	if got.Name != "Rotterdam - Bilbao" || got.DistanceNm != 702.5 {
		t.Fatalf("unexpected route: %+v", got)
	}
	if len(got.Waypoints) == 0 {
		t.Fatal("expected waypoints preserved")
	}

	got.Name = "Rotterdam - Bilbao (storm diversion)"
	got.UpdatedAt = now.Add(time.Minute)
	if err := s.UpdateRoute(ctx, got); err != nil {
		t.Fatalf("update route: %v", err)
	}

	updated, err := s.GetRoute(ctx, "rt_0001")
	if err != nil {
		t.Fatalf("get route: %v", err)
	}
	if updated.Name != "Rotterdam - Bilbao (storm diversion)" {
		t.Fatalf("update not applied: %s", updated.Name)
	}

	routes, err := s.ListRoutes(ctx, "mv-aurora")
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	if err := s.DeleteRoute(ctx, "rt_0001"); err != nil {
		t.Fatalf("delete route: %v", err)
	}
	gone, err := s.GetRoute(ctx, "rt_0001")
	if err != nil {
		t.Fatalf("get route: %v", err)
	}
	if gone != nil {
		t.Fatal("expected route deleted")
	}
}
