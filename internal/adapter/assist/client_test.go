package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harborgrid/gridiq/internal/domain"
)

func TestQueryDecodesBackendResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req domain.AssistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Action != domain.AssistActionQuery {
			t.Errorf("unexpected action: %s", req.Action)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"answer":  "Shore power is available at berth 12.",
			"sources": []map[string]interface{}{
				{"title": "Port electrical handbook", "page": 4},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.Query(context.Background(), &domain.AssistRequest{
		Action: domain.AssistActionQuery,
		Query:  "Is shore power available?",
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.Answer == "" {
		t.Fatal("expected answer")
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(resp.Sources))
	}
}

func TestQueryNonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Query(context.Background(), &domain.AssistRequest{Action: domain.AssistActionQuery})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestQueryUnreachableBackend(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Query(context.Background(), &domain.AssistRequest{Action: domain.AssistActionQuery})
	if err == nil {
		t.Fatal("expected transport error")
	}
}
