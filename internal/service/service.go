// Package service implements the workflow, assist, route, and fleet use
// cases on top of the store, the session coordinator, and the policy engine.
package service

import (
	"sync"

	"github.com/harborgrid/gridiq/internal/adapter/assist"
	"github.com/harborgrid/gridiq/internal/config"
	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/internal/store"
	"github.com/harborgrid/gridiq/internal/workflow"
	"github.com/harborgrid/gridiq/policy"
)

// Notifier pushes persisted run events to live observers. Implementations
// must not block.
type Notifier interface {
	Broadcast(runID string, event domain.Event)
}

type Service struct {
	store        store.Store
	assistClient *assist.Client
	config       *config.Config
	policyEngine *policy.Engine
	notifier     Notifier

	mu       sync.Mutex
	sessions map[string]*workflow.Session

	// timeScale compresses session timelines; tests override it.
	timeScale float64
}

func New(st store.Store, assistClient *assist.Client, cfg *config.Config, policyEngine *policy.Engine, notifier Notifier) *Service {
	return &Service{
		store:        st,
		assistClient: assistClient,
		config:       cfg,
		policyEngine: policyEngine,
		notifier:     notifier,
		sessions:     make(map[string]*workflow.Session),
		timeScale:    1.0,
	}
}

// SetTimeScale overrides the stage timeline multiplier for new sessions.
func (s *Service) SetTimeScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale > 0 {
		s.timeScale = scale
	}
}

func (s *Service) session(runID string) (*workflow.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[runID]
	return sess, ok
}

// Shutdown closes all live sessions.
func (s *Service) Shutdown() {
	s.mu.Lock()
	sessions := make([]*workflow.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessions = make(map[string]*workflow.Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
