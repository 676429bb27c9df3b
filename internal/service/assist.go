package service

import (
	"context"
	"fmt"
	"log"

	"github.com/harborgrid/gridiq/internal/domain"
	"github.com/harborgrid/gridiq/internal/render"
)

// AssistResult is the rendered outcome of an assist request.
type AssistResult struct {
	HTML      string          `json:"html"`
	Sources   []domain.Source `json:"sources,omitempty"`
	LatencyMs int64           `json:"latency_ms,omitempty"`
}

// Assist forwards a chat request to the assist backend and renders the
// response to HTML. Backend failures come back as a rendered error bubble,
// not a transport error; the chat panel always has something to show.
func (s *Service) Assist(ctx context.Context, req domain.AssistRequest) (*AssistResult, error) {
	if err := validateAssistRequest(req); err != nil {
		return nil, err
	}

	resp, err := s.assistClient.Query(ctx, &req)
	if err != nil {
		log.Printf("WARN: assist backend unavailable: %v", err)
		resp = &domain.QueryResponse{
			Success: false,
			Error:   "The assistant is unreachable right now. Please try again.",
		}
	}

	return &AssistResult{
		HTML:      render.Render(resp),
		Sources:   resp.Sources,
		LatencyMs: resp.LatencyMs,
	}, nil
}

func validateAssistRequest(req domain.AssistRequest) error {
	switch req.Action {
	case domain.AssistActionQuery:
		if req.Query == "" {
			return fmt.Errorf("query is required")
		}
	case domain.AssistActionAnalyzeImage:
		if req.ImageData == "" {
			return fmt.Errorf("image_data is required")
		}
	case domain.AssistActionListKnowledgeBases:
		// No payload beyond the action.
	default:
		return fmt.Errorf("unknown action %q", req.Action)
	}
	return nil
}
