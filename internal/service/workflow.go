package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/harborgrid/gridiq/internal/catalog"
	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/internal/workflow"
)

// Typed errors the transport layer maps to status codes.
var (
	ErrRunNotFound     = fmt.Errorf("run not found")
	ErrAckRequired     = fmt.Errorf("dispatch requires operator acknowledgement")
	ErrDispatchBlocked = fmt.Errorf("dispatch blocked by policy")
	ErrUnknownAction   = fmt.Errorf("unknown transition action")
)

// CreateRun starts a new workflow run. A valid scenario_id deep-links the
// run into the decision phase; an unknown one falls back to the start.
func (s *Service) CreateRun(ctx context.Context, req domain.CreateRunRequest) (*domain.RunSnapshot, error) {
	if req.VesselID == "" {
		req.VesselID = "mv-aurora"
	}

	runID := "run_" + uuid.New().String()[:8]
	now := time.Now()

	scenarioID := req.ScenarioID
	if _, ok := catalog.ScenarioByID(scenarioID); !ok {
		scenarioID = ""
	}

	run := &domain.Run{
		RunID:      runID,
		VesselID:   req.VesselID,
		ScenarioID: scenarioID,
		Status:     domain.RunStatusCreated,
		StartedAt:  now,
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	s.mu.Lock()
	scale := s.timeScale
	s.mu.Unlock()

	sess := workflow.NewSession(runID, workflow.Options{
		ScenarioID: req.ScenarioID,
		TimeScale:  scale,
		Emit:       s.recordEvent(runID),
	})

	s.mu.Lock()
	s.sessions[runID] = sess
	s.mu.Unlock()

	if err := sess.Start(); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}
	if err := s.store.UpdateRunStatus(ctx, runID, domain.RunStatusRunning); err != nil {
		log.Printf("ERROR: failed to update run status: %v", err)
	}

	snap := sess.Snapshot()
	return &snap, nil
}

// GetSnapshot returns the live state of a run.
func (s *Service) GetSnapshot(ctx context.Context, runID string) (*domain.RunSnapshot, error) {
	sess, ok := s.session(runID)
	if !ok {
		// The run may predate this process; surface the stored record.
		run, err := s.store.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, ErrRunNotFound
		}
		return &domain.RunSnapshot{RunID: run.RunID, Status: run.Status}, nil
	}
	snap := sess.Snapshot()
	return &snap, nil
}

// ListRuns returns recent runs, optionally filtered by vessel.
func (s *Service) ListRuns(ctx context.Context, vesselID string, limit int) ([]domain.Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListRuns(ctx, vesselID, limit)
}

// Transition applies a phase transition to a live run. Approvals pass
// through the dispatch policy gate first.
func (s *Service) Transition(ctx context.Context, runID string, req domain.TransitionRequest) (*domain.RunSnapshot, error) {
	sess, ok := s.session(runID)
	if !ok {
		return nil, ErrRunNotFound
	}

	var err error
	switch req.Action {
	case domain.ActionAdvance:
		err = sess.Advance()
	case domain.ActionSelect:
		err = sess.Select(req.ScenarioID)
	case domain.ActionDefer:
		err = sess.Defer()
	case domain.ActionApprove:
		if err = s.gateDispatch(ctx, sess.ScenarioID(), req); err == nil {
			err = sess.Approve(req.OptionID)
		}
	case domain.ActionReset:
		err = sess.Reset()
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	return &snap, nil
}

// gateDispatch evaluates the dispatch policy for the selected scenario and
// option. A require_ack decision without acknowledgement fails the approve.
func (s *Service) gateDispatch(ctx context.Context, scenarioID string, req domain.TransitionRequest) error {
	if s.policyEngine == nil {
		return nil
	}
	scn, ok := catalog.ScenarioByID(scenarioID)
	if !ok {
		// Nothing selected yet; let the session return its transition error.
		return nil
	}

	input := map[string]interface{}{
		"scenario_id": scn.ID,
		"option_id":   req.OptionID,
		"severity":    scn.Severity,
		"impact_usd":  scn.ImpactUSD,
	}
	decision, err := s.policyEngine.Evaluate(ctx, input)
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}

	switch decision {
	case "allow":
		return nil
	case "require_ack":
		if req.Acknowledged {
			return nil
		}
		return ErrAckRequired
	case "block":
		return ErrDispatchBlocked
	default:
		return fmt.Errorf("unexpected policy decision %q", decision)
	}
}

// CloseRun tears down a live run session.
func (s *Service) CloseRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[runID]
	delete(s.sessions, runID)
	s.mu.Unlock()
	if !ok {
		return ErrRunNotFound
	}

	sess.Close()
	if err := s.store.UpdateRunEnded(ctx, runID, domain.RunStatusClosed); err != nil {
		log.Printf("ERROR: failed to mark run closed: %v", err)
	}
	return nil
}

// GetEvents returns a run's recorded events after the given cursor.
func (s *Service) GetEvents(ctx context.Context, runID string, afterTs int64, types []string, limit int) ([]domain.Event, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	return s.store.GetEvents(ctx, runID, afterTs, types, limit)
}

// Scenarios returns the scenario catalog.
func (s *Service) Scenarios() []catalog.Scenario {
	return catalog.Scenarios()
}

// recordEvent builds the session emitter that persists and broadcasts each
// event. Storage failures are logged, not propagated; the run keeps going.
func (s *Service) recordEvent(runID string) workflow.Emitter {
	return func(evType domain.EventType, payload map[string]interface{}) {
		var raw json.RawMessage
		if payload != nil {
			b, err := json.Marshal(payload)
			if err != nil {
				log.Printf("ERROR: failed to marshal event payload: %v", err)
			} else {
				raw = b
			}
		}

		event := domain.Event{
			EventID: "evt_" + uuid.New().String()[:8],
			RunID:   runID,
			Ts:      time.Now().UnixMilli(),
			Type:    evType,
			Payload: raw,
		}
		if err := s.store.CreateEvent(context.Background(), &event); err != nil {
			log.Printf("ERROR: failed to save event: %v", err)
		}

		// The dispatch checklist finishes on a timer, after the approve
		// transition has already returned; the terminal status has to be
		// persisted here, where the completion actually fires.
		switch evType {
		case domain.EventTypeDispatchComplete:
			if err := s.store.UpdateRunEnded(context.Background(), runID, domain.RunStatusDone); err != nil {
				log.Printf("ERROR: failed to mark run ended: %v", err)
			}
		case domain.EventTypeRunReset:
			// A reset revives a possibly-finished run.
			if err := s.store.UpdateRunStatus(context.Background(), runID, domain.RunStatusRunning); err != nil {
				log.Printf("ERROR: failed to mark run running: %v", err)
			}
		}

		if s.notifier != nil {
			s.notifier.Broadcast(runID, event)
		}
	}
}
